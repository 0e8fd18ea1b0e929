package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/gtondello/ShopifyProductSearchApp/internal/billing"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/printer"
	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
)

type SubscribeCmd struct {
	flags *Flags
	app   *storefront.App

	// flags
	yes    bool
	noOpen bool

	// confirm asks the user before creating the charge; replaced in tests.
	confirm func(plan billing.Plan) (bool, error)
}

// NewSubscribeCmd creates a new subscribe command
func NewSubscribeCmd(flags *Flags, app *storefront.App) *SubscribeCmd {
	cmd := &SubscribeCmd{flags: flags, app: app}
	cmd.confirm = cmd.confirmForm
	return cmd
}

// Register adds the subscribe command to the application
func (cmd *SubscribeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "subscribe",
		Usage:     "Subscribe the shop to the configured billing plan",
		UsageText: "shopsearch subscribe [--yes] [--no-open]",
		Description: `Creates an app subscription with a recurring charge and a capped usage charge,
then opens the confirmation page in the browser so the merchant can approve it.

The plan is read from the billing section of the config file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "no-open",
				Usage:       "print the confirmation URL instead of opening it",
				Destination: &cmd.noOpen,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SubscribeCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if err := cmd.app.Config.RequireShop(); err != nil {
		return err
	}

	plan := cmd.app.Plan()

	if !cmd.yes {
		ok, err := cmd.confirm(plan)
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Subscription cancelled")
			return nil
		}
	}

	if cmd.noOpen {
		url, err := cmd.app.Billing.SubscriptionURL(ctx, plan)
		if err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}
		_, err = fmt.Fprintln(c.Root().Writer, url)
		return err
	}

	url, err := cmd.app.Billing.Subscribe(ctx, plan)
	if err != nil {
		if url != "" {
			p.Warnf("Could not open the browser: %v", err)
			p.Printf("Approve the charge at %s", url)
			return nil
		}
		return fmt.Errorf("create subscription: %w", err)
	}

	p.Success("Subscription created", url)
	return nil
}

func (cmd *SubscribeCmd) confirmForm(plan billing.Plan) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to subscribe without confirmation")
	}

	ok := false
	desc := fmt.Sprintf("%.2f %s every 30 days, plus usage up to %.2f %s (%s)",
		plan.RecurringAmount, plan.Currency, plan.CappedAmount, plan.Currency, plan.UsageTerms)
	if plan.Test {
		desc += "\nTest charge: the shop will not be billed."
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Subscribe %s to %s?", cmd.app.Config.Shop.Domain, plan.Name)).
				Description(desc).
				Affirmative("Subscribe").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm subscription: %w", err)
	}

	return ok, nil
}
