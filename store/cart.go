package store

import (
	"context"
	"time"

	"github.com/XTHN9RF/Foodify-API/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddOrIncrementCartItem inserts a cart line or, when the user already has
// one for the product, adds qty to it. The merge is a single upsert on the
// (user_id, product_id) unique index, so concurrent adds cannot produce two
// rows or lose an increment. A merge past models.MaxCartQuantity is rolled
// back with ErrQuantityLimit.
func (s *Store) AddOrIncrementCartItem(ctx context.Context, userID, productID uint, qty int) (*models.CartItem, error) {
	if qty > models.MaxCartQuantity {
		return nil, ErrQuantityLimit
	}
	var merged models.CartItem
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		item := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: incrementQuantity(tx)},
				{Column: clause.Column{Name: "updated_at"}, Value: time.Now()},
			},
		}).Create(&item).Error
		if err != nil {
			return translate(err)
		}
		err = tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&merged).Error
		if err != nil {
			return translate(err)
		}
		if merged.Quantity > models.MaxCartQuantity {
			return ErrQuantityLimit
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

func incrementQuantity(db *gorm.DB) clause.Expr {
	if db.Dialector.Name() == "mysql" {
		return gorm.Expr("quantity + VALUES(quantity)")
	}
	return gorm.Expr("cart_items.quantity + excluded.quantity")
}

// CartItems returns the user's cart lines with their current product rows.
func (s *Store) CartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.cartItems(s.conn(ctx), userID)
}

// CartItemsForUpdate is CartItems with the rows locked until the surrounding
// transaction ends. It is only meaningful inside Transaction.
func (s *Store) CartItemsForUpdate(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.cartItems(forUpdate(s.conn(ctx)), userID)
}

func (s *Store) cartItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *Store) DeleteCartItem(ctx context.Context, userID, productID uint) error {
	result := s.conn(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCart deletes every cart line of the user and returns how many were removed.
func (s *Store) ClearCart(ctx context.Context, userID uint) (int64, error) {
	result := s.conn(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return result.RowsAffected, translate(result.Error)
}
