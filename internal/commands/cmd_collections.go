package commands

import (
	"context"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/urfave/cli/v3"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/iojson"
)

type CollectionsCmd struct {
	flags *Flags
	app   *storefront.App

	// flags
	filter     string
	jsonOutput bool
}

// NewCollectionsCmd creates a new collections command
func NewCollectionsCmd(flags *Flags, app *storefront.App) *CollectionsCmd {
	return &CollectionsCmd{flags: flags, app: app}
}

// Register adds the collections command to the application
func (cmd *CollectionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "collections",
		Usage:       "List shop collections",
		UsageText:   "shopsearch collections [--filter text] [--json]",
		Description: "Lists up to 100 collections sorted by title, optionally narrowed by a case-insensitive title filter.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "only show collections whose title contains this text",
				Destination: &cmd.filter,
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

func (cmd *CollectionsCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.RequireRemote(); err != nil {
		return err
	}

	all, err := cmd.app.Collections.Collections(ctx)
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	collections := catalog.FilterCollections(all, cmd.filter)

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, col := range collections {
			if err := iojson.WriteLine(out, col); err != nil {
				return err
			}
		}
		return nil
	}

	if len(collections) == 0 {
		fmt.Fprintf(os.Stderr, "No collections found\n")
		return nil
	}

	rows := make([][]string, 0, len(collections))
	for _, col := range collections {
		rows = append(rows, []string{col.Title, catalog.LegacyID(col.ID)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TextMutedStyle).
		Headers("TITLE", "ID").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(styles.TableHeaderStyle)
			}
			return s
		})

	_, err = fmt.Fprintln(out, t.String())
	return err
}
