package shopify

import (
	"context"
	"fmt"
)

const subscriptionMutation = `mutation appSubscriptionCreate($name: String!, $returnUrl: URL!, $test: Boolean, $lineItems: [AppSubscriptionLineItemInput!]!) {
  appSubscriptionCreate(name: $name, returnUrl: $returnUrl, test: $test, lineItems: $lineItems) {
    userErrors {
      field
      message
    }
    confirmationUrl
    appSubscription {
      id
    }
  }
}`

// SubscriptionRequest describes an app subscription with one usage line item
// and one recurring line item.
type SubscriptionRequest struct {
	Name            string
	ReturnURL       string
	Test            bool
	Currency        string
	CappedAmount    float64
	UsageTerms      string
	RecurringAmount float64
}

// UserError is a validation error reported by a mutation.
type UserError struct {
	Field   []string
	Message string
}

// SubscriptionResult is the outcome of appSubscriptionCreate.
type SubscriptionResult struct {
	ID              string
	ConfirmationURL string
	UserErrors      []UserError
}

// CreateAppSubscription runs the appSubscriptionCreate mutation. User errors
// are returned in the result, not as an error.
func (c *Client) CreateAppSubscription(ctx context.Context, req SubscriptionRequest) (SubscriptionResult, error) {
	money := func(amount float64) map[string]any {
		return map[string]any{"amount": amount, "currencyCode": req.Currency}
	}

	vars := map[string]any{
		"name":      req.Name,
		"returnUrl": req.ReturnURL,
		"test":      req.Test,
		"lineItems": []map[string]any{
			{"plan": map[string]any{
				"appUsagePricingDetails": map[string]any{
					"cappedAmount": money(req.CappedAmount),
					"terms":        req.UsageTerms,
				},
			}},
			{"plan": map[string]any{
				"appRecurringPricingDetails": map[string]any{
					"price": money(req.RecurringAmount),
				},
			}},
		},
	}

	data, err := c.Do(ctx, subscriptionMutation, vars)
	if err != nil {
		return SubscriptionResult{}, err
	}

	payload := data.Get("appSubscriptionCreate")
	if !payload.Exists() {
		return SubscriptionResult{}, fmt.Errorf("shopify: response has no appSubscriptionCreate payload")
	}

	result := SubscriptionResult{
		ID:              payload.Get("appSubscription.id").String(),
		ConfirmationURL: payload.Get("confirmationUrl").String(),
	}
	for _, ue := range payload.Get("userErrors").Array() {
		e := UserError{Message: ue.Get("message").String()}
		for _, f := range ue.Get("field").Array() {
			e.Field = append(e.Field, f.String())
		}
		result.UserErrors = append(result.UserErrors, e)
	}
	return result, nil
}
