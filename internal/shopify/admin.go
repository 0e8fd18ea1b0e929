package shopify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/executil"
	"github.com/rs/zerolog/log"
)

// ErrNoShop is returned when an admin redirect is requested without a shop
// domain.
var ErrNoShop = errors.New("no shop domain configured")

// AdminProductURL returns the admin page of a product.
func AdminProductURL(shop, id string) string {
	return fmt.Sprintf("https://%s/admin/products/%s", shop, catalog.LegacyID(id))
}

// Admin opens pages of the shop admin with an external launcher.
type Admin struct {
	Shop        string
	OpenCommand string
	Exec        executil.Executor
}

// NavigateToRecordDetail opens the product's admin page.
func (a *Admin) NavigateToRecordDetail(ctx context.Context, id string) error {
	if a.Shop == "" {
		return ErrNoShop
	}
	return a.OpenURL(ctx, AdminProductURL(a.Shop, id))
}

// OpenURL opens url with the configured launcher.
func (a *Admin) OpenURL(ctx context.Context, url string) error {
	log.Debug().Str("component", "admin").Str("url", url).Msg("opening")
	if err := executil.Open(ctx, a.Exec, a.OpenCommand, url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
