package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/urfave/cli/v3"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/iojson"
)

// sortFlagValues maps --sort values to server sort keys.
var sortFlagValues = map[string]catalog.SortKey{
	"title":     catalog.SortTitle,
	"inventory": catalog.SortInventoryTotal,
	"type":      catalog.SortProductType,
	"vendor":    catalog.SortVendor,
}

type ProductsCmd struct {
	flags *Flags
	app   *storefront.App

	// flags
	query      string
	sort       string
	reverse    bool
	jsonOutput bool
}

// NewProductsCmd creates a new products command
func NewProductsCmd(flags *Flags, app *storefront.App) *ProductsCmd {
	return &ProductsCmd{flags: flags, app: app}
}

// Register adds the products command to the application
func (cmd *ProductsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "products",
		Usage:     "List products matching a query",
		UsageText: "shopsearch products [--query text] [--sort key] [--reverse] [--json]",
		Description: `Runs a single product query against the configured source and prints the
first page (50 products) in server order.

With the local source, query terms may be scoped with field globs such as
vendor:acme* or tag:summer.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "filter text",
				Destination: &cmd.query,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort key (title, inventory, type, vendor)",
				Value:       "title",
				Destination: &cmd.sort,
			},
			&cli.BoolFlag{
				Name:        "reverse",
				Aliases:     []string{"r"},
				Usage:       "sort descending",
				Destination: &cmd.reverse,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ProductsCmd) run(ctx context.Context, c *cli.Command) error {
	key, ok := sortFlagValues[strings.ToLower(cmd.sort)]
	if !ok {
		return fmt.Errorf("unknown sort key %q (want title, inventory, type or vendor)", cmd.sort)
	}

	if err := cmd.app.RequireRemote(); err != nil {
		return err
	}

	q := catalog.Query{
		SortKey: key,
		Reverse: cmd.reverse,
		First:   catalog.PageSize,
	}
	if cmd.query != "" {
		q.Text = catalog.StringPtr(cmd.query)
	}

	records, err := cmd.app.Source.Products(ctx, q)
	if err != nil {
		return fmt.Errorf("query products: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range records {
			if err := iojson.WriteLine(out, r); err != nil {
				return err
			}
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "No products found\n")
		return nil
	}

	_, err = fmt.Fprintln(out, productTable(records))
	return err
}

// productTable renders records with the review table's columns.
func productTable(records []catalog.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Title,
			components.InventoryText(r),
			r.ProductType,
			r.Vendor,
			r.TagList(),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TextMutedStyle).
		Headers("PRODUCT", "INVENTORY", "TYPE", "VENDOR", "TAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(styles.TableHeaderStyle)
			case col == 1 && records[row].TotalInventory <= 0:
				return s.Inherit(styles.TextErrorStyle)
			default:
				return s
			}
		}).
		String()
}
