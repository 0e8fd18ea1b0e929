package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/wizard"
	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/iojson"
)

type TuiCmd struct {
	flags *Flags
	app   *storefront.App

	// flags
	printSelection bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *storefront.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "print",
			Usage:       "print the reviewed products as JSON lines on exit",
			Sources:     cli.EnvVars("SHOPSEARCH_PRINT"),
			Destination: &cmd.printSelection,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the product wizard needs a terminal; use 'shopsearch products' for scripted output")
	}

	if err := cmd.app.RequireRemote(); err != nil {
		return err
	}

	m := tui.New(tui.Options{
		Source:    cmd.app.Source,
		Navigator: cmd.app.Admin,
		Shop:      cmd.app.Config.Shop.Domain,
		Build: tui.BuildInfo{
			Version: cmd.app.Build.Version,
			Commit:  cmd.app.Build.Commit,
			Date:    cmd.app.Build.Date,
		},
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	model, ok := finalModel.(tui.Model)
	if !ok {
		return nil
	}

	records := reviewedRecords(model.Coordinator())
	log.Info().
		Int("selected", len(records)).
		Msg("wizard closed")

	if !cmd.printSelection {
		return nil
	}

	for _, r := range records {
		if err := iojson.WriteLine(c.Root().Writer, r); err != nil {
			return err
		}
	}
	return nil
}

// reviewedRecords returns the confirmed records when the wizard was left on
// the review step, or nothing when it was left while selecting.
func reviewedRecords(coord *wizard.Coordinator) []catalog.Record {
	if coord.Step() != wizard.Reviewing {
		return nil
	}
	return coord.SelectedRecords()
}
