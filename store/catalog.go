package store

import (
	"context"

	"github.com/XTHN9RF/Foodify-API/models"
	"gorm.io/gorm"
)

type ProductFilter struct {
	Search       string // case-insensitive substring of name or description
	CategorySlug string
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Create(category).Error)
}

// Categories lists categories whose name contains search, or all of them
// when search is empty.
func (s *Store) Categories(ctx context.Context, search string) ([]models.Category, error) {
	q := s.conn(ctx).Order("name")
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// CategoryExists reports whether a category with the given name or slug exists.
func (s *Store) CategoryExists(ctx context.Context, name, slug string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Category{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&n).Error
	return n > 0, translate(err)
}

// DeleteCategory removes the category and, through the foreign key cascade,
// its products and everything that references them. The deleted category is
// returned with its products so their images can be cleaned up.
func (s *Store) DeleteCategory(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Products").Where("slug = ?", slug).First(&category).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Delete(&category).Error)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return translate(s.conn(ctx).Omit("Category").Create(product).Error)
}

// SaveProduct inserts product when it has no ID and updates every column otherwise.
func (s *Store) SaveProduct(ctx context.Context, product *models.Product) error {
	return translate(s.conn(ctx).Omit("Category").Save(product).Error)
}

// ProductExists reports whether a product with the given name or slug exists.
func (s *Store) ProductExists(ctx context.Context, name, slug string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Product{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&n).Error
	return n > 0, translate(err)
}

func (s *Store) Products(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := s.conn(ctx).Preload("Category").Order("products.name")
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}
	if filter.CategorySlug != "" {
		sub := s.conn(ctx).Model(&models.Category{}).Select("id").Where("slug = ?", filter.CategorySlug)
		q = q.Where("products.category_id IN (?)", sub)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *Store) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := s.conn(ctx).Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// DeleteProduct removes the product and returns the deleted row.
func (s *Store) DeleteProduct(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&product).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Delete(&product).Error)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
