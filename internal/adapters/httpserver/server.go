package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/catalog"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	catalogUC *usecase.CatalogUC
	products  *usecase.ProductUC
	customers domain.CustomerRepo
	oauthCfg  *oauth2.Config
	validate  *validator.Validate

	adminAllowed map[string]struct{}
	adminSecret  []byte
}

type Options struct {
	AdminEmails []string
	AdminSecret string
}

func New(cat *usecase.CatalogUC, prod *usecase.ProductUC, customers domain.CustomerRepo, oauthCfg *oauth2.Config, opts Options) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		catalogUC: cat,
		products:  prod,
		customers: customers,
		oauthCfg:  oauthCfg,
		validate:  validator.New(),
	}

	allowed := map[string]struct{}{}
	for _, e := range opts.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allowed[e] = struct{}{}
		}
	}
	s.adminAllowed = allowed
	sec := opts.AdminSecret
	if sec == "" {
		sec = "dev-admin-secret"
	}
	s.adminSecret = []byte(sec)

	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/catalog", s.handleCatalog)
	s.mux.HandleFunc("/api/catalog/filters", s.handleCatalogFilters)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByPath)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)
	s.mux.HandleFunc("/admin/import/xlsx", s.handleAdminImportXLSX)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/logout", s.handleLogout)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- catalog ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	page, err := s.catalogUC.List(r.Context(), parseFilterCriteria(r))
	if err != nil {
		http.Error(w, "catalog query", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCatalogFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	m, err := s.catalogUC.Filters(r.Context())
	if err != nil {
		http.Error(w, "filters", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// parseFilterCriteria binds query parameters to a FilterCriteria. Contract
// parameter names take precedence; short aliases are accepted.
func parseFilterCriteria(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()
	pick := func(names ...string) string {
		for _, n := range names {
			if v := strings.TrimSpace(q.Get(n)); v != "" {
				return v
			}
		}
		return ""
	}
	f := domain.FilterCriteria{
		Gender:   pick("genderSlug", "gender"),
		Category: pick("categorySlug", "category"),
		Search:   pick("search", "q"),
		Colors:   splitMulti(q["colors"]),
		Sizes:    splitMulti(q["sizes"]),
		Sort:     domain.ParseSortKey(pick("sort")),
	}
	if v, err := strconv.ParseFloat(pick("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(pick("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	f.Page, _ = strconv.Atoi(pick("page"))
	f.Limit, _ = strconv.Atoi(pick("limit"))
	return f.Normalized()
}

func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// --- product detail, selection, reviews, admin CRUD ---

// apiProductByPath dispatches /api/products/{slug}[/selection|/reviews|/variants[/{id}]].
func (s *Server) apiProductByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	parts := strings.SplitN(rest, "/", 3)
	slug := parts[0]
	if len(parts) == 1 {
		s.handleProductDetail(w, r, slug)
		return
	}
	switch parts[1] {
	case "selection":
		s.handleSelection(w, r, slug)
	case "reviews":
		s.handleReviews(w, r, slug)
	case "variants":
		id := ""
		if len(parts) == 3 {
			id = parts[2]
		}
		s.apiProductVariants(w, r, slug, id)
	default:
		http.NotFound(w, r)
	}
}

type productDetailResponse struct {
	*domain.Product
	Rating    float64                  `json:"rating"`
	Reviews   []domain.Review          `json:"reviews"`
	Summary   catalog.ReviewSummary    `json:"reviewSummary"`
	Selection *usecase.SelectionResult `json:"selection"`
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request, slug string) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.GetBySlug(r.Context(), slug)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productDetailResponse{
			Product:   p,
			Rating:    catalog.AverageRating(p.Reviews),
			Reviews:   p.Reviews,
			Summary:   catalog.Summarize(p.Reviews),
			Selection: usecase.SelectionFor(p, usecase.SelectionInput{}),
		})
	case http.MethodPut:
		s.apiProductUpdate(w, r, slug)
	case http.MethodDelete:
		s.apiProductDelete(w, r, slug)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

type selectionRequest struct {
	ColorID string `json:"colorId"`
	SizeID  string `json:"sizeId"`
	Change  string `json:"change" validate:"omitempty,oneof=color size"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		http.Error(w, "change must be color or size", http.StatusBadRequest)
		return
	}
	in := usecase.SelectionInput{Change: usecase.SelectionChange(req.Change)}
	if id, err := uuid.Parse(req.ColorID); err == nil {
		in.ColorID = id
	}
	if id, err := uuid.Parse(req.SizeID); err == nil {
		in.SizeID = id
	}
	res, err := s.products.ResolveSelection(r.Context(), slug, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type reviewRequest struct {
	Author string `json:"author" validate:"required,max=140"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body"`
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request, slug string) {
	p, err := s.products.GetBySlug(r.Context(), slug)
	if err != nil {
		s.writeError(w, err)
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"reviews": p.Reviews,
			"summary": catalog.Summarize(p.Reviews),
		})
	case http.MethodPost:
		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			http.Error(w, "invalid review", http.StatusBadRequest)
			return
		}
		rev := &domain.Review{ProductID: p.ID, Author: req.Author, Rating: req.Rating, Body: req.Body}
		if err := s.products.AddReview(r.Context(), rev); err != nil {
			http.Error(w, "save review", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, rev)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
