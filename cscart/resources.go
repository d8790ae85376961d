package cscart

import (
	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
)

// OrdersService covers api/orders.
type OrdersService struct {
	crud
}

// NewOrdersService binds api/orders under root to creds.
func NewOrdersService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *OrdersService {
	return &OrdersService{crud{newService(exec, root, creds, "api", "orders")}}
}

// VendorsService covers api/vendors (Multi-Vendor editions).
type VendorsService struct {
	crud
}

// NewVendorsService builds the vendors facade on its own.
func NewVendorsService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *VendorsService {
	return &VendorsService{crud{newService(exec, root, creds, "api", "vendors")}}
}

// ShipmentsService covers api/shipments.
type ShipmentsService struct {
	crud
}

// NewShipmentsService builds the shipments facade on its own.
func NewShipmentsService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *ShipmentsService {
	return &ShipmentsService{crud{newService(exec, root, creds, "api", "shipments")}}
}
