package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// registerLedgerSteps registers domain setup steps that create ledger
// entities through the API and remember their ids for later steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a currency "([^"]*)" exists$`, aCurrencyExists)
	ctx.Step(`^a shared currency "([^"]*)" exists$`, aSharedCurrencyExists)
	ctx.Step(`^an exchange rate of "([^"]*)" between "([^"]*)" and "([^"]*)" exists$`, anExchangeRateExists)
	ctx.Step(`^a category "([^"]*)" of type "([^"]*)" exists$`, aCategoryExists)
	ctx.Step(`^a category "([^"]*)" of type "([^"]*)" under "([^"]*)" exists$`, aChildCategoryExists)
	ctx.Step(`^I create a transfer on "([^"]*)" in "([^"]*)" with items:$`, iCreateATransferWithItems)
}

// createAndRemember posts the payload, requires a 201, and stores the
// returned id under the given alias.
func (tc *TestContext) createAndRemember(endpoint, alias string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := tc.doRequest(http.MethodPost, endpoint, body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("setup request to %s failed with status %d: %s", endpoint, tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("id")
	if err != nil {
		return err
	}
	tc.ids[alias] = fmt.Sprintf("%v", id)
	return nil
}

func createCurrency(ctx context.Context, code string, shared bool) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.createAndRemember("/api/v1/currencies", code, map[string]any{
		"code":   code,
		"symbol": code,
		"name":   code,
		"shared": shared,
	})
}

func aCurrencyExists(ctx context.Context, code string) error {
	return createCurrency(ctx, code, false)
}

func aSharedCurrencyExists(ctx context.Context, code string) error {
	return createCurrency(ctx, code, true)
}

func anExchangeRateExists(ctx context.Context, rate, codeA, codeB string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	currencyAID, ok := tc.ids[codeA]
	if !ok {
		return fmt.Errorf("currency %q was not created", codeA)
	}
	currencyBID, ok := tc.ids[codeB]
	if !ok {
		return fmt.Errorf("currency %q was not created", codeB)
	}

	alias := fmt.Sprintf("rate_%s_%s", codeA, codeB)
	return tc.createAndRemember("/api/v1/exchange-rates", alias, map[string]any{
		"currency_a_id": currencyAID,
		"currency_b_id": currencyBID,
		"rate":          rate,
	})
}

func createCategory(ctx context.Context, name, categoryType string, parent *string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	payload := map[string]any{
		"name": name,
		"type": categoryType,
	}
	if parent != nil {
		parentID, ok := tc.ids[*parent]
		if !ok {
			return fmt.Errorf("category %q was not created", *parent)
		}
		payload["parent_id"] = parentID
	}

	return tc.createAndRemember("/api/v1/categories", name, payload)
}

func aCategoryExists(ctx context.Context, name, categoryType string) error {
	return createCategory(ctx, name, categoryType, nil)
}

func aChildCategoryExists(ctx context.Context, name, categoryType, parent string) error {
	return createCategory(ctx, name, categoryType, &parent)
}

func iCreateATransferWithItems(ctx context.Context, day, referenceCurrency string, items *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	referenceCurrencyID, ok := tc.ids[referenceCurrency]
	if !ok {
		return fmt.Errorf("currency %q was not created", referenceCurrency)
	}

	if len(items.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one item row")
	}

	itemPayloads := make([]map[string]any, 0, len(items.Rows)-1)
	for _, row := range items.Rows[1:] {
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected item rows of category | currency | value")
		}

		categoryID, ok := tc.ids[row.Cells[0].Value]
		if !ok {
			return fmt.Errorf("category %q was not created", row.Cells[0].Value)
		}
		currencyID, ok := tc.ids[row.Cells[1].Value]
		if !ok {
			return fmt.Errorf("currency %q was not created", row.Cells[1].Value)
		}

		itemPayloads = append(itemPayloads, map[string]any{
			"category_id": categoryID,
			"currency_id": currencyID,
			"value":       row.Cells[2].Value,
		})
	}

	payload := map[string]any{
		"day":                   day,
		"reference_currency_id": referenceCurrencyID,
		"items":                 itemPayloads,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := tc.doRequest(http.MethodPost, "/api/v1/transfers", body); err != nil {
		return err
	}

	if tc.response.StatusCode == http.StatusCreated {
		if id, err := tc.responseField("id"); err == nil {
			tc.ids["last_transfer"] = fmt.Sprintf("%v", id)
		}
	}
	return nil
}
