// Package cscart is a thin client for the CS-Cart and Multi-Vendor REST API.
//
// Every operation sends exactly one request through an Executor and returns the
// *response.Outcome unchanged; payloads are passed through as decoded JSON. Use
// response.Outcome.Decode to map a result onto your own types.
package cscart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/httpclient"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/sessionstore"
)

// Config wires a Client.
type Config struct {
	// BaseURL is the storefront root, e.g. https://shop.example. Resource paths are
	// appended to its path.
	BaseURL     string
	Credentials credentials.Credentials

	// HTTP configures the executor built when Executor is nil.
	HTTP     httpclient.ClientConfig
	Executor Executor

	// Sessions receives the sessions issued by Auth. Nil selects a new MemoryStore.
	Sessions sessionstore.Store
}

// Client groups the facades of one store, all sharing one executor and one set of
// credentials. Build facades individually with the New*Service constructors when
// resources need different accounts.
type Client struct {
	Orders    *OrdersService
	Products  *ProductsService
	Vendors   *VendorsService
	Stores    *StoresService
	Users     *UsersService
	Shipments *ShipmentsService
	Auth      *AuthService
	APIKeys   *APIKeysService

	Sessions sessionstore.Store

	root  endpoint.Endpoint
	exec  Executor
	creds credentials.Credentials
}

// New validates config and builds every facade.
func New(config Config) (*Client, error) {
	root, err := endpoint.New(config.BaseURL)
	if err != nil {
		return nil, err
	}
	if config.Credentials.IsZero() {
		return nil, credentials.ErrInvalidCredentials
	}

	exec := config.Executor
	if exec == nil {
		httpClient, err := httpclient.BuildClient(config.HTTP)
		if err != nil {
			return nil, fmt.Errorf("build http client: %w", err)
		}
		exec = httpClient
	}

	sessions := config.Sessions
	if sessions == nil {
		sessions = sessionstore.NewMemoryStore()
	}

	creds := config.Credentials
	return &Client{
		Orders:    NewOrdersService(exec, root, creds),
		Products:  NewProductsService(exec, root, creds),
		Vendors:   NewVendorsService(exec, root, creds),
		Stores:    NewStoresService(exec, root, creds),
		Users:     NewUsersService(exec, root, creds),
		Shipments: NewShipmentsService(exec, root, creds),
		Auth:      NewAuthService(exec, root, creds, sessions),
		APIKeys:   NewAPIKeysService(exec, root, creds),
		Sessions:  sessions,
		root:      root,
		exec:      exec,
		creds:     creds,
	}, nil
}

// Ping sends an authenticated GET to the base URL. Any 2xx means the store is
// reachable and accepted the credentials' format.
func (c *Client) Ping(ctx context.Context) (*response.Outcome, error) {
	return c.exec.Execute(ctx, httpclient.NewRequest(http.MethodGet, c.root.String(), nil), c.creds)
}
