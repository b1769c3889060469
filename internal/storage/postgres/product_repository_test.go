package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
	"github.com/nasim-ferdous/garment-pilot-server/internal/testutil"
)

func TestProductRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewProductRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("CreateProduct then GetProduct round-trips", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		product := domain.Product{
			ID:             uuid.NewString(),
			Name:           "Panjabi",
			Quantity:       10,
			Price:          19.25,
			Image:          "https://cdn.example.com/panjabi.jpg",
			PaymentOptions: []string{"card", "cash_on_delivery"},
			ShowOnHomePage: true,
			CreatedBy:      "seller@example.com",
			CreatedAt:      time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		}
		if err := repo.CreateProduct(ctx, product); err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := repo.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != product.Name || got.Quantity != product.Quantity || got.Price != product.Price {
			t.Fatalf("unexpected product: %+v", got)
		}
		if len(got.PaymentOptions) != 2 {
			t.Fatalf("expected 2 payment options, got %v", got.PaymentOptions)
		}
	})

	t.Run("GetProduct maps absence and malformed ids to ErrProductNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.GetProduct(ctx, "00000000-0000-0000-0000-000000000001")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}

		_, err = repo.GetProduct(ctx, "not-a-uuid")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound for malformed id, got %v", err)
		}
	})

	t.Run("ListProducts filters by creator", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		seed := func(name, createdBy string, createdAt time.Time) {
			err := repo.CreateProduct(ctx, domain.Product{
				ID:             uuid.NewString(),
				Name:           name,
				Quantity:       1,
				PaymentOptions: []string{"card"},
				CreatedBy:      createdBy,
				CreatedAt:      createdAt,
			})
			if err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
		}
		seed("Panjabi", "a@example.com", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		seed("Sharee", "a@example.com", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
		seed("Lungi", "b@example.com", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))

		all, err := repo.ListProducts(ctx, "")
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 products, got %d", len(all))
		}
		if all[0].Name != "Lungi" {
			t.Fatalf("expected newest first, got %s", all[0].Name)
		}

		mine, err := repo.ListProducts(ctx, "a@example.com")
		if err != nil {
			t.Fatalf("list filtered: %v", err)
		}
		if len(mine) != 2 {
			t.Fatalf("expected 2 products for a@example.com, got %d", len(mine))
		}
	})

	t.Run("ListHomeProducts honors the flag and limit", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for i := 0; i < 8; i++ {
			err := repo.CreateProduct(ctx, domain.Product{
				ID:             uuid.NewString(),
				Name:           "Item",
				Quantity:       1,
				PaymentOptions: []string{"card"},
				ShowOnHomePage: i < 7,
				CreatedAt:      time.Date(2025, 1, 1, i, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Fatalf("seed %d: %v", i, err)
			}
		}

		home, err := repo.ListHomeProducts(ctx, 6)
		if err != nil {
			t.Fatalf("list home: %v", err)
		}
		if len(home) != 6 {
			t.Fatalf("expected 6 homepage products, got %d", len(home))
		}
		for _, p := range home {
			if !p.ShowOnHomePage {
				t.Fatalf("expected only flagged products, got %+v", p)
			}
		}
	})
}
