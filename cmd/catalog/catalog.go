package main

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rpckit/handler"
)

// Product is a catalog item.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Tags      []string  `json:"tags,omitempty"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name  string   `json:"name" validate:"required,min=2,max=120"`
	Price int64    `json:"price" validate:"gte=0"`
	Tags  []string `json:"tags" validate:"max=10,dive,min=1,max=32"`
}

// ListQuery filters and orders the product list.
type ListQuery struct {
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Tag   string `query:"tag"`
	Sort  string `query:"sort" validate:"omitempty,oneof=name price created_at"`
}

// ProductParams addresses a single product.
type ProductParams struct {
	ID string `path:"id" validate:"required,uuid4"`
}

var errProductNotFound = handler.NewHTTPError(http.StatusNotFound, "product_not_found")

// catalog is the in-memory product store behind the example service.
type catalog struct {
	mu       sync.RWMutex
	products map[string]Product
	now      func() time.Time
}

func newCatalog() *catalog {
	return &catalog{
		products: make(map[string]Product),
		now:      time.Now,
	}
}

func (c *catalog) list(_ context.Context, q ListQuery) []Product {
	c.mu.RLock()
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if q.Tag != "" && !slices.Contains(p.Tags, q.Tag) {
			continue
		}
		out = append(out, p)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Product) int {
		switch q.Sort {
		case "name":
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		case "price":
			return cmp.Or(cmp.Compare(a.Price, b.Price), cmp.Compare(a.ID, b.ID))
		default:
			return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
		}
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (c *catalog) get(_ context.Context, id string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return Product{}, errProductNotFound
	}
	return p, nil
}

func (c *catalog) create(_ context.Context, in ProductInput, ownerID string) Product {
	p := Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Price:     in.Price,
		Tags:      in.Tags,
		OwnerID:   ownerID,
		CreatedAt: c.now().UTC(),
	}

	c.mu.Lock()
	c.products[p.ID] = p
	c.mu.Unlock()
	return p
}

func (c *catalog) update(_ context.Context, id string, in ProductInput, ownerID string) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return Product{}, errProductNotFound
	}
	if p.OwnerID != ownerID {
		return Product{}, handler.ErrForbidden
	}
	p.Name, p.Price, p.Tags = in.Name, in.Price, in.Tags
	c.products[id] = p
	return p, nil
}

func (c *catalog) delete(_ context.Context, id, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return errProductNotFound
	}
	if p.OwnerID != ownerID {
		return handler.ErrForbidden
	}
	delete(c.products, id)
	return nil
}
