package store

import (
	"context"

	"github.com/XTHN9RF/Foodify-API/models"
)

// CreateOrder inserts the order together with its items.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return translate(s.conn(ctx).Omit("Items.Product").Create(order).Error)
}

// OrdersByUser lists the user's orders, newest first.
func (s *Store) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.conn(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// OrderForUser returns the order only when it belongs to userID.
func (s *Store) OrderForUser(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.conn(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) OrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.conn(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error) {
	// mysql reports zero affected rows when the status is unchanged, so
	// existence is checked separately.
	if _, err := s.OrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	err := s.conn(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.OrderByID(ctx, orderID)
}
