package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
)

var msgQuantityLimit = fmt.Sprintf("quantity must not exceed %d", models.MaxCartQuantity)

// CartLine is a cart item priced with the product's current catalog price.
type CartLine struct {
	ID           uint         `json:"id"`
	ProductSlug  string       `json:"product_slug"`
	ProductName  string       `json:"product_name"`
	ProductPrice models.Money `json:"product_price"`
	ProductImage string       `json:"product_image"`
	Quantity     int          `json:"quantity"`
	LineTotal    models.Money `json:"line_total"`
}

func newCartLine(item models.CartItem) CartLine {
	return CartLine{
		ID:           item.ID,
		ProductSlug:  item.Product.Slug,
		ProductName:  item.Product.Name,
		ProductPrice: item.Product.Price,
		ProductImage: item.Product.Image,
		Quantity:     item.Quantity,
		LineTotal:    item.Product.Price.Times(item.Quantity),
	}
}

type Cart struct {
	store *store.Store
}

func NewCart(s *store.Store) *Cart {
	return &Cart{store: s}
}

// Add puts qty of the product in the user's cart, merging with an existing line.
func (c *Cart) Add(ctx context.Context, userID uint, productSlug string, qty int) (*CartLine, error) {
	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		return nil, apperr.New(apperr.Validation, "product_slug is required")
	}
	if qty < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	if qty > models.MaxCartQuantity {
		return nil, apperr.New(apperr.Validation, msgQuantityLimit)
	}

	product, err := c.store.ProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, lookupErr(err, "Product not found")
	}
	item, err := c.store.AddOrIncrementCartItem(ctx, userID, product.ID, qty)
	if errors.Is(err, store.ErrQuantityLimit) {
		return nil, apperr.Wrap(apperr.Validation, msgQuantityLimit, err)
	}
	if err != nil {
		return nil, err
	}
	line := newCartLine(*item)
	return &line, nil
}

func (c *Cart) List(ctx context.Context, userID uint) ([]CartLine, error) {
	items, err := c.store.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, newCartLine(item))
	}
	return lines, nil
}

func (c *Cart) Remove(ctx context.Context, userID uint, productSlug string) error {
	product, err := c.store.ProductBySlug(ctx, productSlug)
	if err != nil {
		return lookupErr(err, "Product not found")
	}
	if err := c.store.DeleteCartItem(ctx, userID, product.ID); err != nil {
		return lookupErr(err, "Cart item not found")
	}
	return nil
}

func (c *Cart) Clear(ctx context.Context, userID uint) error {
	_, err := c.store.ClearCart(ctx, userID)
	return err
}
