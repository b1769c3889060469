package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/nasim-ferdous/garment-pilot-server/internal/auth"
)

func newTestRouter() http.Handler {
	return NewRouter(RouterDeps{
		Logger:      zap.NewNop(),
		Verifier:    &stubVerifier{identity: auth.Identity{Email: "buyer@example.com"}},
		Orders:      &stubOrderPlacer{},
		Canceller:   &stubOrderCanceller{},
		OrderLister: &stubOrderLister{},
		Reconciler:  &stubReconciler{},
		Checkout:    &stubCheckoutStarter{url: "https://checkout.stripe.com/pay/cs_1"},
		Catalog:     &stubCatalog{},
		CORSOrigins: []string{"*"},
		Registry:    prometheus.NewRegistry(),
	})
}

func TestRouterNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"not found"`) {
		t.Fatalf("expected JSON not-found body, got %q", rec.Body.String())
	}
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("expected ok body, got %q", rec.Body.String())
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	// Drive one request through so a sample exists.
	warm := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "garment_pilot_http_requests_total") {
		t.Fatalf("expected request counter in metrics output, got %q", rec.Body.String())
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/my-orders"},
		{http.MethodPost, "/products"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		newTestRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", target.method, target.path, rec.Code)
		}
	}
}
