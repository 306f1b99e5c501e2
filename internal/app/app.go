package app

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/adapters/httpserver"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/adapters/repo/postgres"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/config"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/usecase"
)

type App struct {
	DB          *gorm.DB
	Cache       domain.KVCache
	CatalogUC   *usecase.CatalogUC
	ProductUC   *usecase.ProductUC
	Customers   domain.CustomerRepo
	OAuthConfig *oauth2.Config

	cfg *config.Config
}

func NewApp(db *gorm.DB, kv domain.KVCache, cfg *config.Config) *App {
	prodRepo := postgres.NewProductRepo(db)
	custRepo := postgres.NewCustomerRepo(db)

	var oauthCfg *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return &App{
		DB:          db,
		Cache:       kv,
		CatalogUC:   &usecase.CatalogUC{Products: prodRepo, Cache: kv},
		ProductUC:   &usecase.ProductUC{Products: prodRepo},
		Customers:   custRepo,
		OAuthConfig: oauthCfg,
		cfg:         cfg,
	}
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CatalogUC, a.ProductUC, a.Customers, a.OAuthConfig, httpserver.Options{
		AdminEmails: a.cfg.AdminAllowedEmails,
		AdminSecret: a.cfg.AdminSecret,
	})
}

// MigrateAndSeed creates the schema and the reference rows every deployment
// needs: the three gender markers, unisex included.
func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Gender{}, &domain.Category{}, &domain.Product{},
		&domain.ColorOption{}, &domain.SizeOption{}, &domain.Variant{},
		&domain.Review{}, &domain.Customer{},
	); err != nil {
		return err
	}
	return seedGenders(a.DB)
}

func seedGenders(db *gorm.DB) error {
	for slug, name := range map[string]string{
		"men":               "Men",
		"women":             "Women",
		domain.GenderUnisex: "Unisex",
	} {
		var g domain.Gender
		err := db.Where(domain.Gender{Slug: slug}).
			Attrs(domain.Gender{ID: uuid.New(), Name: name}).
			FirstOrCreate(&g).Error
		if err != nil {
			return err
		}
	}
	return nil
}
