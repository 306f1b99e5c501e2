package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// xlsxRepo is a paginated in-memory store for the export/import tests. List
// slices by offset and limit the way the real store does.
type xlsxRepo struct {
	products   []*domain.Product
	variants   []*domain.Variant
	genders    []domain.Gender
	categories []domain.Category
}

func (x *xlsxRepo) List(_ context.Context, c domain.FilterCriteria) ([]domain.Product, int64, error) {
	c = c.Normalized()
	total := int64(len(x.products))
	start := c.Offset()
	if start > len(x.products) {
		return nil, total, nil
	}
	end := start + c.Limit
	if end > len(x.products) {
		end = len(x.products)
	}
	out := make([]domain.Product, 0, end-start)
	for _, p := range x.products[start:end] {
		out = append(out, *p)
	}
	return out, total, nil
}

func (x *xlsxRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range x.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (x *xlsxRepo) Save(_ context.Context, p *domain.Product) error {
	for _, existing := range x.products {
		if existing.ID == p.ID {
			return nil
		}
	}
	x.products = append(x.products, p)
	return nil
}

func (x *xlsxRepo) DeleteBySlug(_ context.Context, _ string) error { return nil }

func (x *xlsxRepo) SaveVariant(_ context.Context, v *domain.Variant) error {
	x.variants = append(x.variants, v)
	return nil
}

func (x *xlsxRepo) DeleteVariant(_ context.Context, _ uuid.UUID) error { return nil }

func (x *xlsxRepo) AddReview(_ context.Context, _ *domain.Review) error { return nil }

func (x *xlsxRepo) FacetMetadata(_ context.Context) (*domain.FacetMetadata, error) {
	return &domain.FacetMetadata{Genders: x.genders, Categories: x.categories}, nil
}

func adminBearer(t *testing.T) string {
	t.Helper()
	signer := &Server{adminSecret: []byte("test-secret")}
	return "Bearer " + signer.signAdminToken("owner@example.com", time.Now().Add(time.Hour))
}

func TestAdminExportXLSX_PagesThroughWholeCatalog(t *testing.T) {
	gender := domain.Gender{ID: uuid.New(), Slug: "women"}
	category := domain.Category{ID: uuid.New(), Slug: "hoodies"}
	repo := &xlsxRepo{genders: []domain.Gender{gender}, categories: []domain.Category{category}}
	for i := 0; i < 150; i++ {
		repo.products = append(repo.products, &domain.Product{
			ID:        uuid.New(),
			Slug:      fmt.Sprintf("tee-%03d", i),
			Name:      fmt.Sprintf("Tee %d", i),
			BasePrice: 20,
			Gender:    gender,
			Category:  category,
			Active:    true,
		})
	}
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/export/xlsx", nil)
	req.Header.Set("Authorization", adminBearer(t))
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(catalogSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 151, "header plus one row per product, across pages")

	idx, err := f.GetSheetIndex("Sheet1")
	require.NoError(t, err)
	assert.Less(t, idx, 0, "workbook holds only the catalog sheet")
}

func TestAdminImportXLSX_RoundTripKeepsVariants(t *testing.T) {
	gender := domain.Gender{ID: uuid.New(), Slug: "women"}
	category := domain.Category{ID: uuid.New(), Slug: "hoodies"}
	source := hoodieFixture()

	exportRepo := &xlsxRepo{
		products:   []*domain.Product{source},
		genders:    []domain.Gender{gender},
		categories: []domain.Category{category},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/export/xlsx", nil)
	req.Header.Set("Authorization", adminBearer(t))
	newTestHandler(exportRepo).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "catalog.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(rec.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	importRepo := &xlsxRepo{genders: []domain.Gender{gender}, categories: []domain.Category{category}}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/import/xlsx", &form)
	req.Header.Set("Authorization", adminBearer(t))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestHandler(importRepo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report["imported"])
	assert.Equal(t, 5, report["variants"])
	assert.Equal(t, 0, report["skipped"])

	created, err := importRepo.FindBySlug(context.Background(), "aurora-hoodie")
	require.NoError(t, err)
	assert.Equal(t, source.BasePrice, created.BasePrice)
	assert.Equal(t, gender.ID, created.GenderID)
	assert.Equal(t, category.ID, created.CategoryID)

	require.Len(t, created.Colors, 2, "declared colors survive the round trip")
	require.Len(t, created.Sizes, 3, "declared sizes survive the round trip")
	assert.Equal(t, "black", created.Colors[0].Slug)
	assert.Equal(t, 0, created.Colors[0].Position)
	assert.Equal(t, "gray", created.Colors[1].Slug)
	assert.Equal(t, []string{"s", "m", "l"}, []string{
		created.Sizes[0].Slug, created.Sizes[1].Slug, created.Sizes[2].Slug,
	})

	require.Len(t, importRepo.variants, 5)
	for _, v := range importRepo.variants {
		require.NotNil(t, v.ColorID)
		require.NotNil(t, v.SizeID)
		assert.True(t, v.InStock)
		assert.Equal(t, created.ID, v.ProductID)
	}
}

func TestAdminImportXLSX_SkipsUnknownSlugsAndBadRows(t *testing.T) {
	gender := domain.Gender{ID: uuid.New(), Slug: "women"}
	category := domain.Category{ID: uuid.New(), Slug: "hoodies"}

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet(catalogSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(catalogSheet, "A1", &xlsxHeader))
	require.NoError(t, f.SetSheetRow(catalogSheet, "A2", &[]any{
		"good-tee", "Good Tee", "women", "hoodies", 25.0, "", "", "", "",
	}))
	require.NoError(t, f.SetSheetRow(catalogSheet, "A3", &[]any{
		"bad-tee", "Bad Tee", "kids", "hoodies", 25.0, "", "", "", "",
	}))
	require.NoError(t, f.SetSheetRow(catalogSheet, "A4", &[]any{
		"worse-tee", "Worse Tee", "women", "hoodies", "not-a-price", "", "", "", "",
	}))
	var workbook bytes.Buffer
	require.NoError(t, f.Write(&workbook))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "catalog.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	repo := &xlsxRepo{genders: []domain.Gender{gender}, categories: []domain.Category{category}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/import/xlsx", &form)
	req.Header.Set("Authorization", adminBearer(t))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestHandler(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report["imported"])
	assert.Equal(t, 2, report["skipped"])
	require.Len(t, repo.products, 1)
	assert.Equal(t, "good-tee", repo.products[0].Slug)
}
