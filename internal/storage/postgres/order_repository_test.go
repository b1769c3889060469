package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
	"github.com/nasim-ferdous/garment-pilot-server/internal/testutil"
)

func TestOrderRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewOrderRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("GetProductForUpdate returns product or ErrProductNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			product, err := repo.GetProductForUpdate(txCtx, productID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if product.ID != productID || product.Quantity != 10 {
				t.Fatalf("unexpected product: %+v", product)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		_, err = repo.GetProductForUpdate(ctx, "00000000-0000-0000-0000-000000000001")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}

		_, err = repo.GetProductForUpdate(ctx, "not-a-uuid")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound for malformed id, got %v", err)
		}
	})

	t.Run("DecrementProductQuantity subtracts exactly once", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)

		affected, err := repo.DecrementProductQuantity(ctx, productID, 3)
		if err != nil {
			t.Fatalf("decrement: %v", err)
		}
		if affected != 1 {
			t.Fatalf("expected 1 affected row, got %d", affected)
		}

		var quantity int
		if err := pool.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, productID).Scan(&quantity); err != nil {
			t.Fatalf("query quantity: %v", err)
		}
		if quantity != 7 {
			t.Fatalf("expected quantity 7, got %d", quantity)
		}
	})

	t.Run("DecrementProductQuantity refuses to oversell", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 2)

		_, err := repo.DecrementProductQuantity(ctx, productID, 3)
		if !errors.Is(err, domain.ErrInsufficientInventory) {
			t.Fatalf("expected ErrInsufficientInventory, got %v", err)
		}

		var quantity int
		if err := pool.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, productID).Scan(&quantity); err != nil {
			t.Fatalf("query quantity: %v", err)
		}
		if quantity != 2 {
			t.Fatalf("expected quantity untouched at 2, got %d", quantity)
		}
	})

	t.Run("concurrent decrements never drive quantity negative", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 5)

		const workers = 10
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.DecrementProductQuantity(ctx, productID, 1); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if succeeded != 5 {
			t.Fatalf("expected exactly 5 successful decrements, got %d", succeeded)
		}

		var quantity int
		if err := pool.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, productID).Scan(&quantity); err != nil {
			t.Fatalf("query quantity: %v", err)
		}
		if quantity != 0 {
			t.Fatalf("expected quantity 0, got %d", quantity)
		}
	})

	t.Run("CreateOrder enforces one order per transaction", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)

		order := domain.Order{
			ID:            uuid.NewString(),
			ProductID:     productID,
			ProductName:   "Panjabi",
			Status:        domain.OrderStatusPending,
			OrderedAt:     time.Now().UTC(),
			Quantity:      1,
			Buyer:         "buyer@example.com",
			PaymentOption: domain.PaymentOptionCard,
			PaymentStatus: domain.PaymentStatusPaid,
			TransactionID: "pi_dup",
			TrackingID:    "PRCL-20250102-AAAAAA",
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatalf("first insert: %v", err)
		}

		second := order
		second.ID = uuid.NewString()
		second.TrackingID = "PRCL-20250102-BBBBBB"
		if err := repo.CreateOrder(ctx, second); !errors.Is(err, domain.ErrDuplicateTransaction) {
			t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
		}

		winner, err := repo.GetOrderByTransactionID(ctx, "pi_dup")
		if err != nil {
			t.Fatalf("get by transaction id: %v", err)
		}
		if winner == nil || winner.ID != order.ID {
			t.Fatalf("expected the first order to win, got %+v", winner)
		}
	})

	t.Run("CreateOrder allows many orders without transaction ids", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)

		for i, trackingID := range []string{"PRCL-20250102-CCCCCC", "PRCL-20250102-DDDDDD"} {
			order := domain.Order{
				ID:            uuid.NewString(),
				ProductID:     productID,
				ProductName:   "Panjabi",
				Status:        domain.OrderStatusPending,
				OrderedAt:     time.Now().UTC(),
				Quantity:      1,
				Buyer:         "buyer@example.com",
				PaymentOption: domain.PaymentOptionCashOnDelivery,
				PaymentStatus: domain.PaymentStatusCashOnDelivery,
				TrackingID:    trackingID,
			}
			if err := repo.CreateOrder(ctx, order); err != nil {
				t.Fatalf("insert %d: %v", i, err)
			}
		}
	})

	t.Run("DeleteOrder returns the removed row and nil when absent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)
		orderID := testutil.InsertOrder(t, ctx, pool, domain.Order{
			ProductID:     productID,
			ProductName:   "Panjabi",
			Status:        domain.OrderStatusPending,
			Quantity:      2,
			Buyer:         "buyer@example.com",
			PaymentOption: domain.PaymentOptionCashOnDelivery,
			PaymentStatus: domain.PaymentStatusCashOnDelivery,
			TrackingID:    "PRCL-20250102-EEEEEE",
		})

		deleted, err := repo.DeleteOrder(ctx, orderID)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if deleted == nil || deleted.ID != orderID || deleted.Quantity != 2 {
			t.Fatalf("unexpected deleted order: %+v", deleted)
		}

		again, err := repo.DeleteOrder(ctx, orderID)
		if err != nil {
			t.Fatalf("second delete: %v", err)
		}
		if again != nil {
			t.Fatalf("expected nil on second delete, got %+v", again)
		}
	})

	t.Run("ListOrdersByBuyer returns newest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Panjabi", 10)

		base := domain.Order{
			ProductID:     productID,
			ProductName:   "Panjabi",
			Status:        domain.OrderStatusPending,
			Quantity:      1,
			Buyer:         "buyer@example.com",
			PaymentOption: domain.PaymentOptionCashOnDelivery,
			PaymentStatus: domain.PaymentStatusCashOnDelivery,
		}
		first := base
		first.TrackingID = "PRCL-20250101-AAAAAA"
		first.OrderedAt = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		testutil.InsertOrder(t, ctx, pool, first)

		second := base
		second.TrackingID = "PRCL-20250102-BBBBBB"
		second.OrderedAt = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
		secondID := testutil.InsertOrder(t, ctx, pool, second)

		other := base
		other.Buyer = "other@example.com"
		other.TrackingID = "PRCL-20250102-CCCCCC"
		testutil.InsertOrder(t, ctx, pool, other)

		orders, err := repo.ListOrdersByBuyer(ctx, "buyer@example.com")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		if orders[0].ID != secondID {
			t.Fatalf("expected newest order first, got %+v", orders[0])
		}
	})
}
