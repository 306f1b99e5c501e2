package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

const catalogSheet = "Catalog"

var xlsxHeader = []any{"slug", "name", "gender", "category", "base_price", "color", "size", "variant_price", "in_stock"}

// handleAdminExportXLSX streams the whole catalog as a workbook, one row per
// variant and a bare row for products without variants. It pages through the
// store so exports larger than one page are complete.
func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(catalogSheet); err != nil {
		http.Error(w, "sheet", http.StatusInternalServerError)
		return
	}
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(catalogSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	_ = f.SetSheetRow(catalogSheet, "A1", &xlsxHeader)

	row := 2
	criteria := domain.FilterCriteria{Limit: domain.MaxPageSize}
	for page := 1; ; page++ {
		criteria.Page = page
		res, err := s.catalogUC.List(r.Context(), criteria)
		if err != nil {
			http.Error(w, "list", http.StatusInternalServerError)
			return
		}
		for _, item := range res.Items {
			row = writeCatalogRows(f, row, item)
		}
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export")
	}
}

func writeCatalogRows(f *excelize.File, row int, item domain.CatalogItem) int {
	if len(item.Variants) == 0 {
		_ = f.SetSheetRow(catalogSheet, fmt.Sprintf("A%d", row), &[]any{
			item.Slug, item.Name, item.Gender.Slug, item.Category.Slug, item.BasePrice, "", "", "", "",
		})
		return row + 1
	}
	colors := map[string]string{}
	for _, c := range item.Colors {
		colors[c.ID.String()] = c.Slug
	}
	sizes := map[string]string{}
	for _, z := range item.Sizes {
		sizes[z.ID.String()] = z.Slug
	}
	for _, v := range item.Variants {
		cSlug, zSlug := "", ""
		if v.ColorID != nil {
			cSlug = colors[v.ColorID.String()]
		}
		if v.SizeID != nil {
			zSlug = sizes[v.SizeID.String()]
		}
		price := any("")
		if v.Price != nil {
			price = *v.Price
		}
		_ = f.SetSheetRow(catalogSheet, fmt.Sprintf("A%d", row), &[]any{
			item.Slug, item.Name, item.Gender.Slug, item.Category.Slug, item.BasePrice,
			cSlug, zSlug, price, v.InStock,
		})
		row++
	}
	return row
}

// handleAdminImportXLSX upserts products and their variants from an uploaded
// workbook, the same shape the export emits: base columns 0-4 per product,
// variant columns 5-8 per row. Gender and category are slugs resolved through
// the facet metadata; rows with unknown slugs are skipped and reported.
func (s *Server) handleAdminImportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "workbook", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := catalogSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "no rows", http.StatusBadRequest)
		return
	}

	meta, err := s.catalogUC.Filters(r.Context())
	if err != nil {
		http.Error(w, "filters", http.StatusInternalServerError)
		return
	}
	genders := map[string]domain.Gender{}
	for _, g := range meta.Genders {
		genders[g.Slug] = g
	}
	categories := map[string]domain.Category{}
	for _, c := range meta.Categories {
		categories[c.Slug] = c
	}

	// Rows for the same slug accumulate onto one product, so options and
	// variants collected across rows stay deduplicated.
	bySlug := map[string]*domain.Product{}
	imported, variants, skipped := 0, 0, 0
	for i, cells := range rows[1:] {
		if len(cells) < 5 {
			skipped++
			continue
		}
		slug := strings.TrimSpace(cells[0])
		name := strings.TrimSpace(cells[1])
		g, gok := genders[strings.TrimSpace(cells[2])]
		c, cok := categories[strings.TrimSpace(cells[3])]
		price, perr := strconv.ParseFloat(strings.TrimSpace(cells[4]), 64)
		if name == "" || !gok || !cok || perr != nil {
			log.Warn().Int("row", i+2).Msg("import row skipped")
			skipped++
			continue
		}
		p, ok := bySlug[slug]
		if !ok {
			if existing, err := s.products.GetBySlug(r.Context(), slug); err == nil {
				p = existing
			} else {
				p = &domain.Product{Slug: slug, Active: true}
			}
			p.Name = name
			p.BasePrice = price
			p.GenderID = g.ID
			p.CategoryID = c.ID
			if p.ID == uuid.Nil {
				err = s.products.Create(r.Context(), p)
			} else {
				err = s.products.Update(r.Context(), p)
			}
			if err != nil {
				skipped++
				continue
			}
			bySlug[slug] = p
			imported++
		}
		upserted, err := s.importVariantRow(r.Context(), p, cells)
		if err != nil {
			skipped++
			continue
		}
		if upserted {
			variants++
		}
	}
	s.catalogUC.InvalidateFilters(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported, "variants": variants, "skipped": skipped})
}

// importVariantRow upserts the variant described by columns 5-8, declaring
// any color or size option the product does not have yet. Rows without
// variant columns are product-only and report false.
func (s *Server) importVariantRow(ctx context.Context, p *domain.Product, cells []string) (bool, error) {
	colorSlug, sizeSlug := cellAt(cells, 5), cellAt(cells, 6)
	if colorSlug == "" && sizeSlug == "" {
		return false, nil
	}
	colorID, sizeID, added := ensureOptions(p, colorSlug, sizeSlug)
	if added {
		if err := s.products.Update(ctx, p); err != nil {
			return false, err
		}
	}
	v := findVariant(p, colorID, sizeID)
	if v == nil {
		p.Variants = append(p.Variants, domain.Variant{ProductID: p.ID, ColorID: colorID, SizeID: sizeID})
		v = &p.Variants[len(p.Variants)-1]
	}
	if raw := cellAt(cells, 7); raw != "" {
		if override, err := strconv.ParseFloat(raw, 64); err == nil {
			v.Price = &override
		}
	}
	if raw := cellAt(cells, 8); raw != "" {
		if inStock, err := strconv.ParseBool(strings.ToLower(raw)); err == nil {
			v.InStock = inStock
		}
	}
	return true, s.products.SaveVariant(ctx, v)
}

// ensureOptions resolves both axis slugs to option ids, appending missing
// options at the end of the declared order. Empty slugs leave the axis nil.
func ensureOptions(p *domain.Product, colorSlug, sizeSlug string) (colorID, sizeID *uuid.UUID, added bool) {
	if colorSlug != "" {
		for _, c := range p.Colors {
			if c.Slug == colorSlug {
				id := c.ID
				colorID = &id
				break
			}
		}
		if colorID == nil {
			id := uuid.New()
			p.Colors = append(p.Colors, domain.ColorOption{
				ID: id, ProductID: p.ID, Slug: colorSlug, Name: colorSlug, Position: len(p.Colors),
			})
			colorID = &id
			added = true
		}
	}
	if sizeSlug != "" {
		for _, z := range p.Sizes {
			if z.Slug == sizeSlug {
				id := z.ID
				sizeID = &id
				break
			}
		}
		if sizeID == nil {
			id := uuid.New()
			p.Sizes = append(p.Sizes, domain.SizeOption{
				ID: id, ProductID: p.ID, Slug: sizeSlug, Name: sizeSlug, Position: len(p.Sizes),
			})
			sizeID = &id
			added = true
		}
	}
	return colorID, sizeID, added
}

func findVariant(p *domain.Product, colorID, sizeID *uuid.UUID) *domain.Variant {
	for i := range p.Variants {
		v := &p.Variants[i]
		if uuidEqual(v.ColorID, colorID) && uuidEqual(v.SizeID, sizeID) {
			return v
		}
	}
	return nil
}

func uuidEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
