package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
)

// NewRoot builds the shopsearch command tree with its global flags. The
// wizard is the default action. Before/After hooks and the version are left
// to the caller since documentation generation needs neither.
func NewRoot(flags *Flags, app *storefront.App) *cli.Command {
	root := &cli.Command{
		Name:      "shopsearch",
		Usage:     "Search, select and review Shopify products",
		UsageText: "shopsearch [global options] command [command options]",
		Description: `shopsearch is a terminal wizard for picking products from a Shopify store.

Type to filter (queries are sent once you stop typing), sort by clicking through
columns, select products and continue to a review table that can be re-sorted
locally. Going back restores the selection table exactly as it was left.

Run 'shopsearch' with no arguments to open the wizard.
Run 'shopsearch seed' and pass --source local to try it against the demo catalog.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SHOPSEARCH_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/shopsearch.log, - for stderr)",
				Sources:     cli.EnvVars("SHOPSEARCH_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SHOPSEARCH_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SHOPSEARCH_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "shop",
				Usage:       "shop domain, e.g. my-store.myshopify.com",
				Sources:     cli.EnvVars("SHOPSEARCH_SHOP", "SHOP"),
				Destination: &flags.Shop,
			},
			&cli.StringFlag{
				Name:        "access-token",
				Usage:       "Admin API access token",
				Sources:     cli.EnvVars("SHOPSEARCH_ACCESS_TOKEN"),
				Destination: &flags.AccessToken,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Usage:       "app API key, used for the billing return URL",
				Sources:     cli.EnvVars("SHOPSEARCH_API_KEY", "SHOPIFY_API_KEY"),
				Destination: &flags.APIKey,
			},
			&cli.StringFlag{
				Name:        "source",
				Usage:       "product source (shopify, local)",
				Sources:     cli.EnvVars("SHOPSEARCH_SOURCE"),
				Destination: &flags.Source,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = NewProductsCmd(flags, app).Register(root)
	root = NewCollectionsCmd(flags, app).Register(root)
	root = NewSubscribeCmd(flags, app).Register(root)
	root = NewSeedCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'shopsearch --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
