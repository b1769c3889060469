package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nasim-ferdous/garment-pilot-server/internal/app"
	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

// Catalog is the product read/write surface used by the handlers.
type Catalog interface {
	CreateProduct(ctx context.Context, in app.CreateProductInput) (domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Products(ctx context.Context, createdBy string) ([]domain.Product, error)
	HomeProducts(ctx context.Context) ([]domain.Product, error)
}

type productResponse struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Price          float64   `json:"price"`
	Image          string    `json:"image,omitempty"`
	PaymentOptions []string  `json:"paymentOptions,omitempty"`
	ShowOnHomePage bool      `json:"showOnHomePage"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Quantity:       p.Quantity,
		Price:          p.Price,
		Image:          p.Image,
		PaymentOptions: p.PaymentOptions,
		ShowOnHomePage: p.ShowOnHomePage,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// HandleListProducts serves GET /products. An optional email query narrows
// the list to products created by that account.
func HandleListProducts(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.Products(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponses(products))
	}
}

// HandleHomeProducts serves GET /our-products with the homepage selection.
func HandleHomeProducts(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.HomeProducts(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponses(products))
	}
}

// HandleGetProduct serves GET /products/{id}.
func HandleGetProduct(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.Product(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(product))
	}
}

type createProductRequest struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Image          string   `json:"image"`
	PaymentOptions []string `json:"paymentOptions"`
	ShowOnHomePage bool     `json:"showOnHomePage"`
}

// HandleCreateProduct serves POST /products. Requires a verified identity;
// the product is attributed to the caller's email.
func HandleCreateProduct(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorizedAccess)
			return
		}

		var req createProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		product, err := svc.CreateProduct(r.Context(), app.CreateProductInput{
			Name:           req.Name,
			Quantity:       req.Quantity,
			Price:          req.Price,
			Image:          req.Image,
			PaymentOptions: req.PaymentOptions,
			ShowOnHomePage: req.ShowOnHomePage,
			CreatedBy:      identity.Email,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toProductResponse(product))
	}
}
