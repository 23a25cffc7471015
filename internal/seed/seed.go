package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"vibe-commerce/internal/model"
	"vibe-commerce/internal/repository"

	"github.com/rs/zerolog"
)

//go:embed products.json
var defaultProducts []byte

// Seeder replaces the catalogue with a known product set at startup, so the
// demo always serves the same storefront regardless of prior runs.
type Seeder struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(productRepo repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		productRepo: productRepo,
		logger:      logger.With().Str("component", "seeder").Logger(),
	}
}

// Run wipes the catalogue and inserts the products from filePath, or the
// embedded default set when filePath is empty.
func (s *Seeder) Run(ctx context.Context, filePath string) error {
	products, err := loadProducts(filePath)
	if err != nil {
		return err
	}

	if err := s.productRepo.ReplaceAll(ctx, products); err != nil {
		s.logger.Error().Err(err).Msg("failed to seed catalogue")
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	s.logger.Info().
		Int("count", len(products)).
		Msg("catalogue seeded")

	return nil
}

// loadProducts reads and validates the seed product list.
func loadProducts(filePath string) ([]model.Product, error) {
	data := defaultProducts
	if filePath != "" {
		var err error
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", filePath, err)
		}
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse seed products: %w", err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("seed product list is empty")
	}

	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("seed product %q has invalid id %d", p.Name, p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("seed product %q has negative stock", p.Name)
		}
	}

	return products, nil
}
