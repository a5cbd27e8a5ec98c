// Package catalog loads the product and location snapshot that assistant
// requests are resolved against.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-assistant-service/internal/location"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/product"
	"golang.org/x/sync/errgroup"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Snapshot holds every product and location of a workspace, inactive ones included.
type Snapshot struct {
	Products  []model.Product
	Locations []model.Location
}

func (s *Snapshot) ProductByID(id string) *model.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

func (s *Snapshot) LocationByID(id string) *model.Location {
	for i := range s.Locations {
		if s.Locations[i].ID == id {
			return &s.Locations[i]
		}
	}
	return nil
}

type Fetcher interface {
	Fetch(ctx context.Context, workspaceID string) (*Snapshot, error)
}

type fetcher struct {
	products  product.UseCase
	locations location.UseCase
}

func NewFetcher(products product.UseCase, locations location.UseCase) Fetcher {
	return &fetcher{products: products, locations: locations}
}

// Fetch loads products and locations concurrently. Any failure discards the
// whole snapshot.
func (f *fetcher) Fetch(ctx context.Context, workspaceID string) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := f.products.ListProducts(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		locations, err := f.locations.ListLocations(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		snap.Locations = locations
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return &snap, nil
}
