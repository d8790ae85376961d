package cscart

import (
	"context"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
)

// StoresService covers api/stores and the shipping methods under api/shippings.
type StoresService struct {
	crud
	shippings crud
}

// NewStoresService builds the stores facade on its own.
func NewStoresService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *StoresService {
	return &StoresService{
		crud:      crud{newService(exec, root, creds, "api", "stores")},
		shippings: crud{newService(exec, root, creds, "api", "shippings")},
	}
}

// ListShippingMethods lists shipping methods.
func (s *StoresService) ListShippingMethods(ctx context.Context, params *ListParams) (*response.Outcome, error) {
	return s.shippings.List(ctx, params)
}

// GetShippingMethod fetches one shipping method.
func (s *StoresService) GetShippingMethod(ctx context.Context, shippingID int) (*response.Outcome, error) {
	return s.shippings.Get(ctx, shippingID)
}

// CreateShippingMethod creates a shipping method.
func (s *StoresService) CreateShippingMethod(ctx context.Context, body any) (*response.Outcome, error) {
	return s.shippings.Create(ctx, body)
}

// UpdateShippingMethod updates a shipping method.
func (s *StoresService) UpdateShippingMethod(ctx context.Context, shippingID int, body any) (*response.Outcome, error) {
	return s.shippings.Update(ctx, shippingID, body)
}

// DeleteShippingMethod deletes a shipping method.
func (s *StoresService) DeleteShippingMethod(ctx context.Context, shippingID int) (*response.Outcome, error) {
	return s.shippings.Delete(ctx, shippingID)
}
