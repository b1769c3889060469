package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nasim-ferdous/garment-pilot-server/internal/auth"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Logger      *zap.Logger
	Verifier    auth.Verifier
	Orders      OrderPlacer
	Canceller   OrderCanceller
	OrderLister BuyerOrderLister
	Reconciler  PaymentReconciler
	Checkout    CheckoutStarter
	Catalog     Catalog
	CORSOrigins []string
	Registry    *prometheus.Registry
}

// NewRouter assembles the service routes with logging, CORS and metrics
// applied to every request.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(deps.Logger))
	r.Use(CORS(deps.CORSOrigins))
	if deps.Registry != nil {
		metrics := NewMetrics(deps.Registry)
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/health", HealthHandler)

	r.Get("/products", HandleListProducts(deps.Catalog))
	r.Get("/our-products", HandleHomeProducts(deps.Catalog))
	r.Get("/products/{id}", HandleGetProduct(deps.Catalog))

	r.Post("/create-checkout-session", HandleCreateCheckoutSession(deps.Checkout))
	r.Post("/orders", HandleCreateOrder(deps.Orders))
	r.Patch("/success-payment", HandleSuccessPayment(deps.Reconciler))
	r.Delete("/cancel-order/{id}", HandleCancelOrder(deps.Canceller))

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Verifier))
		r.Post("/products", HandleCreateProduct(deps.Catalog))
		r.Get("/my-orders", HandleMyOrders(deps.OrderLister))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
	})

	return r
}
