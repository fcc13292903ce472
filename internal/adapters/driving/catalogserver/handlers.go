package catalogserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/partfinder-cli/internal/catalogapi"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// ErrMissingCatalog is returned when the server is created without a catalog.
var ErrMissingCatalog = errors.New("catalogserver: catalog is required")

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	values, err := s.catalog.Categories(r.Context())
	s.respondStrings(w, values, err)
}

func (s *Server) handleMakes(w http.ResponseWriter, r *http.Request) {
	values, err := s.catalog.Makes(r.Context(), r.URL.Query().Get(catalogapi.ParamTerm))
	s.respondStrings(w, values, err)
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mk := q.Get(catalogapi.ParamMake)
	if mk == "" {
		writeError(w, http.StatusBadRequest, "make is required")
		return
	}
	values, err := s.catalog.Models(r.Context(), mk, q.Get(catalogapi.ParamYear))
	s.respondStrings(w, values, err)
}

func (s *Server) handleYearsRange(w http.ResponseWriter, r *http.Request) {
	yr, err := s.catalog.YearRange(r.Context(), r.URL.Query().Get(catalogapi.ParamMake))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogapi.YearRangeFromDomain(yr))
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	values, err := s.catalog.Suggestions(r.Context(), r.URL.Query().Get(catalogapi.ParamTerm))
	s.respondStrings(w, values, err)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.Products(r.Context(), domain.QueryFromValues(r.URL.Query()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogapi.ProductsFromDomain(products))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := s.catalog.Product(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogapi.ProductFromDomain(*product))
}

func (s *Server) respondStrings(w http.ResponseWriter, values []string, err error) {
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, values)
}

// statusFor maps a catalog error onto the status the real API would send.
func statusFor(err error) int {
	var se *domain.ServiceError
	switch {
	case errors.As(err, &se):
		return se.Status
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Warn("Fixture catalog error: %v", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
