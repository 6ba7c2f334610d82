// Package cache holds the unfiltered category list, the catalog's hottest read.
package cache

import (
	"context"
	"time"

	"github.com/XTHN9RF/Foodify-API/models"
)

const CategoriesTTL = 5 * time.Minute

// Catalog caches the full category list. Implementations treat every backend
// failure as a miss; the database stays the source of truth.
type Catalog interface {
	Categories(ctx context.Context) ([]models.Category, bool)
	SetCategories(ctx context.Context, categories []models.Category)
	Invalidate(ctx context.Context)
}
