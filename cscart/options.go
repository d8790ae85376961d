package cscart

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deploymenttheory/go-api-sdk-cscart/response"
)

// ListProductOptions lists the options attached to a product.
func (s *ProductsService) ListProductOptions(ctx context.Context, productID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodGet, s.url(id(productID), "options"), nil, nil)
}

// GetOption fetches one product option.
func (s *ProductsService) GetOption(ctx context.Context, optionID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodGet, s.url("options", id(optionID)), nil, nil)
}

// CreateOption creates a product option from form data.
func (s *ProductsService) CreateOption(ctx context.Context, data map[string]any) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPost, s.url("options"), nil, formBody(data))
}

// UpdateOption updates a product option from form data.
func (s *ProductsService) UpdateOption(ctx context.Context, optionID int, data map[string]any) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPut, s.url("options", id(optionID)), nil, formBody(data))
}

// DeleteOption deletes a product option.
func (s *ProductsService) DeleteOption(ctx context.Context, optionID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodDelete, s.url("options", id(optionID)), nil, nil)
}

func productQuery(productID int) url.Values {
	return url.Values{"product_id": {id(productID)}}
}

// ListCombinations returns the option combinations of productID. Zero
// itemsPerPage or page leave the server defaults.
func (s *ProductsService) ListCombinations(ctx context.Context, productID, itemsPerPage, page int) (*response.Outcome, error) {
	query := productQuery(productID)
	if itemsPerPage > 0 {
		query.Set("items_per_page", strconv.Itoa(itemsPerPage))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	return s.combinations.do(ctx, http.MethodGet, s.combinations.url(), query, nil)
}

// GetCombination looks a combination up by its hash.
func (s *ProductsService) GetCombination(ctx context.Context, hash string) (*response.Outcome, error) {
	return s.combinations.do(ctx, http.MethodGet, s.combinations.url(hash), nil, nil)
}

// CreateCombination maps option ids to variant ids, e.g. {"12": 34}. Zero amount
// or position are not sent.
func (s *ProductsService) CreateCombination(ctx context.Context, productID int, combination map[string]any, amount, position int) (*response.Outcome, error) {
	data := map[string]any{
		"product_id":  productID,
		"combination": combination,
	}
	if amount != 0 {
		data["amount"] = amount
	}
	if position != 0 {
		data["position"] = position
	}
	return s.combinations.do(ctx, http.MethodPost, s.combinations.url(), nil, formBody(data))
}

// UpdateCombination sends only the non-zero fields.
func (s *ProductsService) UpdateCombination(ctx context.Context, hash, productCode string, amount, position int) (*response.Outcome, error) {
	data := map[string]any{}
	if productCode != "" {
		data["product_code"] = productCode
	}
	if amount != 0 {
		data["amount"] = amount
	}
	if position != 0 {
		data["position"] = position
	}
	return s.combinations.do(ctx, http.MethodPut, s.combinations.url(hash), nil, formBody(data))
}

// DeleteCombination deletes an option combination of a product.
func (s *ProductsService) DeleteCombination(ctx context.Context, hash string, productID int) (*response.Outcome, error) {
	return s.combinations.do(ctx, http.MethodDelete, s.combinations.url(hash), productQuery(productID), nil)
}

// ListExceptions returns the forbidden option combinations of productID.
func (s *ProductsService) ListExceptions(ctx context.Context, productID int) (*response.Outcome, error) {
	return s.exceptions.do(ctx, http.MethodGet, s.exceptions.url(), productQuery(productID), nil)
}

// GetException fetches one option exception.
func (s *ProductsService) GetException(ctx context.Context, exceptionID string) (*response.Outcome, error) {
	return s.exceptions.do(ctx, http.MethodGet, s.exceptions.url(exceptionID), nil, nil)
}

// CreateException forbids an option combination for a product.
func (s *ProductsService) CreateException(ctx context.Context, productID int, combination map[string]any) (*response.Outcome, error) {
	return s.exceptions.do(ctx, http.MethodPost, s.exceptions.url(), nil, formBody(map[string]any{
		"product_id":  productID,
		"combination": combination,
	}))
}

// UpdateException replaces the combination of an option exception.
func (s *ProductsService) UpdateException(ctx context.Context, exceptionID string, combination map[string]any) (*response.Outcome, error) {
	return s.exceptions.do(ctx, http.MethodPut, s.exceptions.url(exceptionID), nil, formBody(map[string]any{
		"combination": combination,
	}))
}

// DeleteException removes an option exception from a product.
func (s *ProductsService) DeleteException(ctx context.Context, exceptionID string, productID int) (*response.Outcome, error) {
	return s.exceptions.do(ctx, http.MethodDelete, s.exceptions.url(exceptionID), productQuery(productID), nil)
}
