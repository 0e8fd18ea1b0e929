package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/data/stores"
	"github.com/gtondello/ShopifyProductSearchApp/internal/printer"
	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/iojson"
)

type SeedCmd struct {
	flags *Flags
	app   *storefront.App

	// flags
	fromShop bool
	input    iojson.FileReader[stores.Fixture]
}

// NewSeedCmd creates a new seed command
func NewSeedCmd(flags *Flags, app *storefront.App) *SeedCmd {
	return &SeedCmd{flags: flags, app: app}
}

// Register adds the seed command to the application
func (cmd *SeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "seed",
		Usage:     "Load products into the local catalog",
		UsageText: "shopsearch seed [--file catalog.yaml | --from-shop]",
		Description: `Fills the local catalog used by 'source: local'. Input is a YAML document
with products and collections lists, read from --file or piped stdin.
Without input the bundled demo catalog is loaded.

--from-shop copies the first page of products and all collections from the
configured shop instead.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "from-shop",
				Usage:       "import from the configured shop",
				Destination: &cmd.fromShop,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SeedCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	fixture, origin, err := cmd.fixture(ctx)
	if err != nil {
		return err
	}

	if err := cmd.app.Catalog.Seed(ctx, fixture); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	total, err := cmd.app.Catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}

	p.Success(
		fmt.Sprintf("Loaded %d products and %d collections from %s", len(fixture.Products), len(fixture.Collections), origin),
		fmt.Sprintf("%d products in %s", total, cmd.app.DB.Path()),
	)
	return nil
}

func (cmd *SeedCmd) fixture(ctx context.Context) (stores.Fixture, string, error) {
	switch {
	case cmd.fromShop:
		if err := cmd.app.Config.RequireShop(); err != nil {
			return stores.Fixture{}, "", err
		}
		products, err := cmd.app.Shopify.Products(ctx, catalog.Query{SortKey: catalog.SortTitle, First: catalog.PageSize})
		if err != nil {
			return stores.Fixture{}, "", fmt.Errorf("fetch products: %w", err)
		}
		collections, err := cmd.app.Shopify.Collections(ctx)
		if err != nil {
			return stores.Fixture{}, "", fmt.Errorf("fetch collections: %w", err)
		}
		return stores.Fixture{Products: products, Collections: collections}, cmd.app.Config.Shop.Domain, nil

	case cmd.input.Provided():
		data, err := cmd.input.ReadRaw()
		if err != nil {
			return stores.Fixture{}, "", err
		}
		f, err := stores.ParseFixture(data)
		if err != nil {
			return stores.Fixture{}, "", err
		}
		return f, "input", nil

	default:
		f, err := stores.DemoFixture()
		if err != nil {
			return stores.Fixture{}, "", err
		}
		return f, "demo catalog", nil
	}
}
