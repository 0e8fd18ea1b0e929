// Package storefront wires the configured record source, the local catalog,
// the admin launcher and billing into one App consumed by commands and the TUI.
package storefront

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gtondello/ShopifyProductSearchApp/internal/billing"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/config"
	"github.com/gtondello/ShopifyProductSearchApp/internal/data/db"
	"github.com/gtondello/ShopifyProductSearchApp/internal/data/stores"
	"github.com/gtondello/ShopifyProductSearchApp/internal/shopify"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/executil"
)

// BuildInfo holds build-time metadata.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all shopsearch operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Build  BuildInfo

	Source      catalog.Source
	Collections catalog.CollectionSource

	DB      *db.DB
	Catalog *stores.ProductStore
	Shopify *shopify.Client
	Admin   *shopify.Admin
	Billing *billing.Service
}

// Deps are the collaborators New can't build from config alone.
type Deps struct {
	Exec  executil.Executor
	Build BuildInfo
}

// New builds the App. The local catalog is always opened so `seed` works
// regardless of the configured source.
func New(cfg *config.Config, deps Deps) (*App, error) {
	if deps.Exec == nil {
		deps.Exec = &executil.RealExecutor{}
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	client := shopify.New(shopify.Config{
		Shop:              cfg.Shop.Domain,
		APIVersion:        cfg.Shop.APIVersion,
		AccessToken:       cfg.Shop.AccessToken,
		RequestsPerSecond: cfg.Shop.RequestsPerSecond,
		Timeout:           cfg.Shop.Timeout,
	})

	admin := &shopify.Admin{
		Shop:        cfg.Shop.Domain,
		OpenCommand: cfg.TUI.OpenCommand,
		Exec:        deps.Exec,
	}

	app := &App{
		Config:  cfg,
		Build:   deps.Build,
		DB:      database,
		Catalog: stores.NewProductStore(database),
		Shopify: client,
		Admin:   admin,
		Billing: billing.NewService(client, admin, cfg.Shop.Domain, cfg.Shop.APIKey),
	}

	switch cfg.Source {
	case config.SourceLocal:
		app.Source = app.Catalog
		app.Collections = app.Catalog
	default:
		app.Source = client
		app.Collections = client
	}

	log.Debug().
		Str("source", string(cfg.Source)).
		Str("shop", cfg.Shop.Domain).
		Msg("app ready")

	return app, nil
}

// Plan returns the configured billing plan.
func (a *App) Plan() billing.Plan {
	b := a.Config.Billing
	return billing.Plan{
		Name:            b.PlanName,
		Test:            b.Test,
		Currency:        b.Currency,
		RecurringAmount: b.RecurringAmount,
		CappedAmount:    b.CappedAmount,
		UsageTerms:      b.UsageTerms,
	}
}

// RequireRemote fails when the configured source needs shop credentials that
// are missing.
func (a *App) RequireRemote() error {
	if a.Config.Source == config.SourceLocal {
		return nil
	}
	return a.Config.RequireShop()
}

// Close releases the database.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// openDatabase opens the local catalog, moving a corrupted file aside and
// retrying once.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	dir := cfg.DatabaseDir()
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(dir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Warn().Err(err).Str("dir", dir).Msg("catalog database is corrupted, starting fresh")
	if rerr := stores.RecoverFromCorruption(dir); rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}

	database, err = db.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
