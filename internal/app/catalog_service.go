package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasim-ferdous/garment-pilot-server/internal/clock"
	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	ListProducts(ctx context.Context, createdBy string) ([]domain.Product, error)
	ListHomeProducts(ctx context.Context, limit int) ([]domain.Product, error)
}

// CatalogService manages the product catalog the order workflow draws
// inventory from.
type CatalogService struct {
	repo  ProductRepository
	clock clock.Clock
}

func NewCatalogService(repo ProductRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{repo: repo, clock: clk}
}

type CreateProductInput struct {
	Name           string
	Quantity       int
	Price          float64
	Image          string
	PaymentOptions []string
	ShowOnHomePage bool
	CreatedBy      string
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	product := domain.Product{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Quantity:       in.Quantity,
		Price:          in.Price,
		Image:          in.Image,
		PaymentOptions: in.PaymentOptions,
		ShowOnHomePage: in.ShowOnHomePage,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) Product(ctx context.Context, productID string) (domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

// Products lists the catalog, newest first, optionally filtered by creator.
func (s *CatalogService) Products(ctx context.Context, createdBy string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, createdBy)
}

const homeProductLimit = 6

// HomeProducts returns the products highlighted on the storefront.
func (s *CatalogService) HomeProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListHomeProducts(ctx, homeProductLimit)
}
