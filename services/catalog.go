package services

import (
	"context"
	"errors"
	"strings"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/cache"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
	"github.com/gosimple/slug"
)

type CategoryInput struct {
	Name  string
	Image string
}

type ProductInput struct {
	Name         string
	Description  string
	Price        string
	CategorySlug string
	Image        string
}

type Catalog struct {
	store *store.Store
	cache cache.Catalog
}

func NewCatalog(s *store.Store, c cache.Catalog) *Catalog {
	return &Catalog{store: s, cache: c}
}

func (c *Catalog) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	s := slug.Make(name)
	if s == "" {
		return nil, apperr.New(apperr.Validation, "name must contain letters or digits")
	}

	exists, err := c.store.CategoryExists(ctx, name, s)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Validation, "Category with this name already exists")
	}

	category := &models.Category{Name: name, Slug: s, Image: in.Image}
	if err := c.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Validation, "Category with this name already exists", err)
		}
		return nil, err
	}
	c.cache.Invalidate(ctx)
	return category, nil
}

// Categories serves the unfiltered list from cache when possible.
func (c *Catalog) Categories(ctx context.Context, search string) ([]models.Category, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		if cached, ok := c.cache.Categories(ctx); ok {
			return cached, nil
		}
	}
	categories, err := c.store.Categories(ctx, search)
	if err != nil {
		return nil, err
	}
	if search == "" {
		c.cache.SetCategories(ctx, categories)
	}
	return categories, nil
}

// DeleteCategory removes the category with its products and returns the
// deleted rows so their images can be cleaned up.
func (c *Catalog) DeleteCategory(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := c.store.DeleteCategory(ctx, categorySlug)
	if err != nil {
		return nil, lookupErr(err, "Category not found")
	}
	c.cache.Invalidate(ctx)
	return category, nil
}

func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	s := slug.Make(name)
	if s == "" {
		return nil, apperr.New(apperr.Validation, "name must contain letters or digits")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	category, err := c.store.CategoryBySlug(ctx, strings.TrimSpace(in.CategorySlug))
	if err != nil {
		return nil, lookupErr(err, "Category not found")
	}

	exists, err := c.store.ProductExists(ctx, name, s)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Validation, "Product with this name already exists")
	}

	product := &models.Product{
		Name:        name,
		Slug:        s,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Image:       in.Image,
		CategoryID:  category.ID,
	}
	if err := c.store.CreateProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Wrap(apperr.Validation, "Product with this name already exists", err)
		case errors.Is(err, models.ErrNegativePrice):
			return nil, apperr.Wrap(apperr.Validation, "price must not be negative", err)
		}
		return nil, err
	}
	product.Category = category
	c.cache.Invalidate(ctx)
	return product, nil
}

// DeleteProduct removes the product and returns it so its image can be cleaned up.
func (c *Catalog) DeleteProduct(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := c.store.DeleteProduct(ctx, productSlug)
	if err != nil {
		return nil, lookupErr(err, "Product not found")
	}
	c.cache.Invalidate(ctx)
	return product, nil
}

func (c *Catalog) Products(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CategorySlug = strings.TrimSpace(filter.CategorySlug)
	return c.store.Products(ctx, filter)
}

func (c *Catalog) Product(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := c.store.ProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, lookupErr(err, "Product not found")
	}
	return product, nil
}

func parsePrice(s string) (models.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Money{}, apperr.New(apperr.Validation, "price is required")
	}
	price, err := models.ParseMoney(s)
	if err != nil {
		return models.Money{}, apperr.Wrap(apperr.Validation, "Invalid price", err)
	}
	if price.IsNegative() {
		return models.Money{}, apperr.New(apperr.Validation, "price must not be negative")
	}
	if !price.FitsColumn() {
		return models.Money{}, apperr.New(apperr.Validation, "price must not exceed "+models.MaxAmount.String())
	}
	return price, nil
}
