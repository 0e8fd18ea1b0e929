// Package billing creates recurring app subscriptions and sends the merchant
// to the confirmation page.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gtondello/ShopifyProductSearchApp/internal/shopify"
	"github.com/rs/zerolog/log"
)

// ErrNoConfirmationURL is returned when the API accepts the mutation but sends
// no confirmation URL back.
var ErrNoConfirmationURL = errors.New("subscription created without a confirmation url")

// Plan is the subscription offered to the merchant.
type Plan struct {
	Name            string
	Test            bool
	Currency        string
	RecurringAmount float64
	CappedAmount    float64
	UsageTerms      string
}

// UserErrors are validation errors reported by the subscription mutation.
type UserErrors []shopify.UserError

func (e UserErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ue := range e {
		if len(ue.Field) > 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message))
			continue
		}
		msgs = append(msgs, ue.Message)
	}
	return "subscription rejected: " + strings.Join(msgs, "; ")
}

// Creator runs the subscription mutation.
type Creator interface {
	CreateAppSubscription(ctx context.Context, req shopify.SubscriptionRequest) (shopify.SubscriptionResult, error)
}

// Opener sends the merchant to a URL.
type Opener interface {
	OpenURL(ctx context.Context, url string) error
}

// Service creates subscriptions for one shop.
type Service struct {
	creator Creator
	opener  Opener
	shop    string
	apiKey  string
}

// NewService creates a billing service. apiKey identifies the app in the
// return URL.
func NewService(creator Creator, opener Opener, shop, apiKey string) *Service {
	return &Service{creator: creator, opener: opener, shop: shop, apiKey: apiKey}
}

// ReturnURL is where Shopify sends the merchant after confirming.
func (s *Service) ReturnURL() string {
	return fmt.Sprintf("https://%s/admin/apps/%s/", s.shop, s.apiKey)
}

// SubscriptionURL creates the subscription and returns its confirmation URL.
// There is no retry; user errors are returned as UserErrors.
func (s *Service) SubscriptionURL(ctx context.Context, plan Plan) (string, error) {
	res, err := s.creator.CreateAppSubscription(ctx, shopify.SubscriptionRequest{
		Name:            plan.Name,
		ReturnURL:       s.ReturnURL(),
		Test:            plan.Test,
		Currency:        plan.Currency,
		CappedAmount:    plan.CappedAmount,
		UsageTerms:      plan.UsageTerms,
		RecurringAmount: plan.RecurringAmount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create subscription: %w", err)
	}
	if len(res.UserErrors) > 0 {
		return "", UserErrors(res.UserErrors)
	}
	if res.ConfirmationURL == "" {
		return "", ErrNoConfirmationURL
	}

	log.Info().
		Str("plan", plan.Name).
		Str("subscription", res.ID).
		Bool("test", plan.Test).
		Msg("subscription created")

	return res.ConfirmationURL, nil
}

// Subscribe creates the subscription and opens its confirmation page.
func (s *Service) Subscribe(ctx context.Context, plan Plan) (string, error) {
	url, err := s.SubscriptionURL(ctx, plan)
	if err != nil {
		return "", err
	}
	if err := s.opener.OpenURL(ctx, url); err != nil {
		return url, err
	}
	return url, nil
}
