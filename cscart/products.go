package cscart

import (
	"context"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
)

// ProductsService covers api/products together with the catalogue collections
// that hang off it: features, variations and variation groups, options, option
// combinations and option exceptions.
//
// Product and feature bodies are JSON. Variation, option, combination and
// exception bodies are forms.
type ProductsService struct {
	crud
	features     crud
	groups       service
	combinations service
	exceptions   service
}

// NewProductsService builds the products facade on its own.
func NewProductsService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *ProductsService {
	return &ProductsService{
		crud:         crud{newService(exec, root, creds, "api", "products")},
		features:     crud{newService(exec, root, creds, "api", "features")},
		groups:       newService(exec, root, creds, "api", "product_variations_groups"),
		combinations: newService(exec, root, creds, "api", "combinations"),
		exceptions:   newService(exec, root, creds, "api", "exceptions"),
	}
}

// GetFeatures returns the feature values of one product.
func (s *ProductsService) GetFeatures(ctx context.Context, productID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodGet, s.url(id(productID), "features"), nil, nil)
}

// UpdateFeatures writes feature values through the product itself, e.g.
// {"product_features": {"23": {"variant_id": "5"}}}.
func (s *ProductsService) UpdateFeatures(ctx context.Context, productID int, body any) (*response.Outcome, error) {
	return s.Update(ctx, productID, body)
}

// ListFeatures lists the store's product features.
func (s *ProductsService) ListFeatures(ctx context.Context, params *ListParams) (*response.Outcome, error) {
	return s.features.List(ctx, params)
}

// GetFeature fetches one product feature.
func (s *ProductsService) GetFeature(ctx context.Context, featureID int) (*response.Outcome, error) {
	return s.features.Get(ctx, featureID)
}

// CreateFeature creates a product feature.
func (s *ProductsService) CreateFeature(ctx context.Context, body any) (*response.Outcome, error) {
	return s.features.Create(ctx, body)
}

// UpdateFeature updates a product feature.
func (s *ProductsService) UpdateFeature(ctx context.Context, featureID int, body any) (*response.Outcome, error) {
	return s.features.Update(ctx, featureID, body)
}

// DeleteFeature deletes a product feature.
func (s *ProductsService) DeleteFeature(ctx context.Context, featureID int) (*response.Outcome, error) {
	return s.features.Delete(ctx, featureID)
}

// ListVariations returns the products of a variation group.
func (s *ProductsService) ListVariations(ctx context.Context, groupID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodGet, s.url(), url.Values{"variation_group_id": {id(groupID)}}, nil)
}

// AddToVariationGroup updates productID with data as a form, typically
// {"variation_group_id": ...}.
func (s *ProductsService) AddToVariationGroup(ctx context.Context, productID int, data map[string]any) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPut, s.url(id(productID)), nil, formBody(data))
}

// DetachVariation removes a product from its variation group.
func (s *ProductsService) DetachVariation(ctx context.Context, productID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPost, s.url(id(productID), "detach_product_variation"), nil, nil)
}

// SetDefaultVariation makes a product the default variation of its group.
func (s *ProductsService) SetDefaultVariation(ctx context.Context, productID int) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPost, s.url(id(productID), "set_default_product_variation"), nil, nil)
}

// GenerateVariations creates variations of productID from combinations, which is
// sent as the form field "combinations".
func (s *ProductsService) GenerateVariations(ctx context.Context, productID int, combinations any) (*response.Outcome, error) {
	return s.do(ctx, http.MethodPost, s.url(id(productID), "generate_product_variations"), nil,
		formBody(map[string]any{"combinations": combinations}))
}

// CreateVariationGroup creates a variation group from form data.
func (s *ProductsService) CreateVariationGroup(ctx context.Context, data map[string]any) (*response.Outcome, error) {
	return s.groups.do(ctx, http.MethodPost, s.groups.url(), nil, formBody(data))
}

// ListVariationGroups lists all variation groups.
func (s *ProductsService) ListVariationGroups(ctx context.Context) (*response.Outcome, error) {
	return s.groups.do(ctx, http.MethodGet, s.groups.url(), nil, nil)
}

// GetVariationGroup accepts either the numeric id or the group code.
func (s *ProductsService) GetVariationGroup(ctx context.Context, idOrCode string) (*response.Outcome, error) {
	return s.groups.do(ctx, http.MethodGet, s.groups.url(idOrCode), nil, nil)
}

// UpdateVariationGroup updates the group with the given id or code.
func (s *ProductsService) UpdateVariationGroup(ctx context.Context, idOrCode string, data map[string]any) (*response.Outcome, error) {
	return s.groups.do(ctx, http.MethodPut, s.groups.url(idOrCode), nil, formBody(data))
}

// DeleteVariationGroup deletes the group with the given id or code.
func (s *ProductsService) DeleteVariationGroup(ctx context.Context, idOrCode string) (*response.Outcome, error) {
	return s.groups.do(ctx, http.MethodDelete, s.groups.url(idOrCode), nil, nil)
}
