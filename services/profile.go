package services

import (
	"context"
	"strings"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
)

// ProfileUpdate carries the fields a user may change. Nil fields are left alone.
type ProfileUpdate struct {
	Name       *string
	LastName   *string
	Settlement *string
	Password   *string
}

type Profile struct {
	store *store.Store
}

func NewProfile(s *store.Store) *Profile {
	return &Profile{store: s}
}

func (p *Profile) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := p.store.UserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "User not found")
	}
	return user, nil
}

func (p *Profile) Update(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := p.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if user.Name = strings.TrimSpace(*upd.Name); user.Name == "" {
			return nil, apperr.New(apperr.Validation, "name must not be empty")
		}
	}
	if upd.LastName != nil {
		if user.LastName = strings.TrimSpace(*upd.LastName); user.LastName == "" {
			return nil, apperr.New(apperr.Validation, "last_name must not be empty")
		}
	}
	if upd.Settlement != nil {
		user.Settlement = strings.TrimSpace(*upd.Settlement)
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, apperr.New(apperr.Validation, "password must not be empty")
		}
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := p.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *Profile) List(ctx context.Context) ([]models.User, error) {
	return p.store.ListUsers(ctx)
}
