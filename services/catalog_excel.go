package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
	"github.com/gosimple/slug"
	"github.com/tealeg/xlsx"
)

var productSheetHeaders = []string{"Slug", "Name", "Description", "Price", "Image", "Category", "UpdatedAt"}

const (
	colSlug = iota
	colName
	colDescription
	colPrice
	colImage
	colCategory
)

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ExportProducts writes every product as one row of an xlsx sheet.
func (c *Catalog) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := c.store.Products(ctx, store.ProductFilter{})
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range productSheetHeaders {
		header.AddCell().SetString(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.String())
		row.AddCell().SetString(p.Image)
		category := ""
		if p.Category != nil {
			category = p.Category.Slug
		}
		row.AddCell().SetString(category)
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file.Write(w)
}

// ImportProducts upserts products keyed by slug from the first sheet of an
// xlsx file. The first row is the header. Rows with a missing name, an
// unparsable, negative or oversized price, or an unknown category are skipped.
func (c *Catalog) ImportProducts(ctx context.Context, r io.ReaderAt, size int64) (*ImportResult, error) {
	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Failed to parse Excel file", err)
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return nil, apperr.New(apperr.Validation, "Excel file is empty or missing header row")
	}

	sheet := xlFile.Sheets[0]
	categories := make(map[string]*models.Category)
	result := &ImportResult{}

	for i := 1; i < sheet.MaxRow && i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if row != nil && index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		name := get(colName)
		price, perr := models.ParseMoney(get(colPrice))
		if name == "" || perr != nil || price.IsNegative() || !price.FitsColumn() {
			result.Skipped++
			continue
		}

		categorySlug := get(colCategory)
		category, ok := categories[categorySlug]
		if !ok {
			category, err = c.store.CategoryBySlug(ctx, categorySlug)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			categories[categorySlug] = category
		}
		if category == nil {
			result.Skipped++
			continue
		}

		productSlug := get(colSlug)
		if productSlug == "" {
			productSlug = slug.Make(name)
		}

		product, err := c.store.ProductBySlug(ctx, productSlug)
		created := false
		switch {
		case errors.Is(err, store.ErrNotFound):
			product = &models.Product{Slug: productSlug}
			created = true
		case err != nil:
			return nil, err
		}
		product.Name = name
		product.Description = get(colDescription)
		product.Price = price
		product.Image = get(colImage)
		product.CategoryID = category.ID
		product.Category = nil

		if err := c.store.SaveProduct(ctx, product); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if result.Created+result.Updated > 0 {
		c.cache.Invalidate(ctx)
	}
	return result, nil
}
