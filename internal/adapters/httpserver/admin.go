package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

type optionPayload struct {
	Slug string `json:"slug" validate:"required,max=60"`
	Name string `json:"name" validate:"required,max=100"`
}

type productPayload struct {
	Name        string          `json:"name" validate:"required,max=180"`
	Description string          `json:"description"`
	BasePrice   float64         `json:"basePrice" validate:"gte=0"`
	GenderID    string          `json:"genderId" validate:"required,uuid"`
	CategoryID  string          `json:"categoryId" validate:"required,uuid"`
	Active      *bool           `json:"active"`
	Colors      []optionPayload `json:"colors" validate:"dive"`
	Sizes       []optionPayload `json:"sizes" validate:"dive"`
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		page, err := s.catalogUC.List(r.Context(), parseFilterCriteria(r))
		if err != nil {
			http.Error(w, "list", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, page)
	case http.MethodPost:
		var req productPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			http.Error(w, "invalid product", http.StatusBadRequest)
			return
		}
		p := &domain.Product{
			Name:        req.Name,
			Description: req.Description,
			BasePrice:   req.BasePrice,
			GenderID:    uuid.MustParse(req.GenderID),
			CategoryID:  uuid.MustParse(req.CategoryID),
			Active:      true,
		}
		if req.Active != nil {
			p.Active = *req.Active
		}
		for i, c := range req.Colors {
			p.Colors = append(p.Colors, domain.ColorOption{ID: uuid.New(), Slug: c.Slug, Name: c.Name, Position: i})
		}
		for i, z := range req.Sizes {
			p.Sizes = append(p.Sizes, domain.SizeOption{ID: uuid.New(), Slug: z.Slug, Name: z.Name, Position: i})
		}
		if err := s.products.Create(r.Context(), p); err != nil {
			log.Error().Err(err).Msg("create product")
			http.Error(w, "create", http.StatusInternalServerError)
			return
		}
		s.catalogUC.InvalidateFilters(r.Context())
		writeJSON(w, http.StatusCreated, p)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiProductUpdate(w http.ResponseWriter, r *http.Request, slug string) {
	if !s.requireAdmin(w, r) {
		return
	}
	p, err := s.products.GetBySlug(r.Context(), slug)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		http.Error(w, "invalid product", http.StatusBadRequest)
		return
	}
	p.Name = req.Name
	p.Description = req.Description
	p.BasePrice = req.BasePrice
	p.GenderID = uuid.MustParse(req.GenderID)
	p.CategoryID = uuid.MustParse(req.CategoryID)
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.products.Update(r.Context(), p); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("update product")
		http.Error(w, "update", http.StatusInternalServerError)
		return
	}
	s.catalogUC.InvalidateFilters(r.Context())
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiProductDelete(w http.ResponseWriter, r *http.Request, slug string) {
	if !s.requireAdmin(w, r) {
		return
	}
	if err := s.products.DeleteBySlug(r.Context(), slug); err != nil {
		s.writeError(w, err)
		return
	}
	s.catalogUC.InvalidateFilters(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type variantPayload struct {
	ColorID string   `json:"colorId" validate:"omitempty,uuid"`
	SizeID  string   `json:"sizeId" validate:"omitempty,uuid"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0"`
	InStock bool     `json:"inStock"`
}

// apiProductVariants handles POST (create), PUT /{id} (update) and
// DELETE /{id} under /api/products/{slug}/variants.
func (s *Server) apiProductVariants(w http.ResponseWriter, r *http.Request, slug, id string) {
	if !s.requireAdmin(w, r) {
		return
	}
	p, err := s.products.GetBySlug(r.Context(), slug)
	if err != nil {
		s.writeError(w, err)
		return
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut:
		var req variantPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			http.Error(w, "invalid variant", http.StatusBadRequest)
			return
		}
		v := &domain.Variant{ProductID: p.ID, Price: req.Price, InStock: req.InStock}
		if r.Method == http.MethodPut {
			vid, err := uuid.Parse(id)
			if err != nil {
				http.Error(w, "variant id", http.StatusBadRequest)
				return
			}
			v.ID = vid
		}
		if cid, err := uuid.Parse(req.ColorID); err == nil {
			v.ColorID = &cid
		}
		if sid, err := uuid.Parse(req.SizeID); err == nil {
			v.SizeID = &sid
		}
		if err := s.products.SaveVariant(r.Context(), v); err != nil {
			log.Error().Err(err).Str("slug", slug).Msg("save variant")
			http.Error(w, "save variant", http.StatusInternalServerError)
			return
		}
		code := http.StatusCreated
		if r.Method == http.MethodPut {
			code = http.StatusOK
		}
		writeJSON(w, code, v)
	case http.MethodDelete:
		vid, err := uuid.Parse(id)
		if err != nil {
			http.Error(w, "variant id", http.StatusBadRequest)
			return
		}
		if err := s.products.DeleteVariant(r.Context(), vid); err != nil {
			http.Error(w, "delete variant", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}
