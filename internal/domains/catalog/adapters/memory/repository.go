package memory

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

var sampleNames = []string{
	"Pencil Set", "Color Box", "Ball Pen Pack", "Sharpener", "Eraser", "Drawing Book",
	"Notebook", "Sketch Colors", "Marker Set", "Geometry Box", "Sticky Notes",
	"Highlighter Pack", "Planner", "Diary", "Tape Roll", "File Folder", "Glue Stick",
	"Stapler", "Punch Machine", "Whiteboard Marker",
}

var samplePrices = []int64{50, 250, 120, 30, 20, 180, 90, 300, 200, 350, 60, 180, 450, 300, 40, 70, 50, 220, 350, 90}

// SampleProducts returns the stationery catalog the storefront ships with.
func SampleProducts() []domain.Product {
	products := make([]domain.Product, 0, len(sampleNames))
	for i, name := range sampleNames {
		id := int64(i + 1)
		products = append(products, domain.Product{
			ID:    id,
			Name:  name,
			Price: samplePrices[i],
			Img:   fmt.Sprintf("https://picsum.photos/600/400?random=%d", id),
		})
	}
	return products
}

// Repository serves a fixed product list. It is immutable after construction.
type Repository struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

// NewRepository builds a catalog from products, or the sample catalog when none are given.
func NewRepository(products ...domain.Product) *Repository {
	if len(products) == 0 {
		products = SampleProducts()
	}
	r := &Repository{
		products: append([]domain.Product(nil), products...),
		byID:     make(map[int64]domain.Product, len(products)),
	}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *Repository) List(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	return p, nil
}
