// Package services holds the business operations behind the HTTP handlers.
// Every error returned here is either an *apperr.Error or an unexpected
// internal failure.
package services

import (
	"errors"
	"fmt"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/auth"
	"github.com/XTHN9RF/Foodify-API/store"
)

// lookupErr turns a store miss into a NotFound with msg and passes other errors through.
func lookupErr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, msg, err)
	}
	return err
}

// hashPassword rejects passwords bcrypt cannot hash before hashing.
func hashPassword(password string) (string, error) {
	if len(password) > auth.MaxPasswordBytes {
		return "", apperr.New(apperr.Validation, fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return auth.HashPassword(password)
}
