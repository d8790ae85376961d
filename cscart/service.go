package cscart

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/httpclient"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
)

// Executor sends one request. *httpclient.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, req *httpclient.Request, creds credentials.Credentials) (*response.Outcome, error)
}

// ListParams are the pagination and filter parameters of list operations. Zero
// values are omitted from the query.
type ListParams struct {
	Page         int
	ItemsPerPage int
	Extra        url.Values // additional filters such as status or sort_by
}

// Values returns the query for p. A nil p yields nil.
func (p *ListParams) Values() url.Values {
	if p == nil {
		return nil
	}
	values := url.Values{}
	for key, vals := range p.Extra {
		values[key] = append([]string(nil), vals...)
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.ItemsPerPage > 0 {
		values.Set("items_per_page", strconv.Itoa(p.ItemsPerPage))
	}
	return values
}

// service binds an executor to one resource collection and one set of credentials.
type service struct {
	exec  Executor
	creds credentials.Credentials
	base  endpoint.Endpoint
}

func newService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials, path ...string) service {
	return service{exec: exec, creds: creds, base: root.Join(path...)}
}

func (s service) url(segments ...string) string {
	return s.base.Join(segments...).String()
}

func (s service) do(ctx context.Context, method, target string, query url.Values, body httpclient.Body) (*response.Outcome, error) {
	req := httpclient.NewRequest(method, target, body)
	req.Query = query
	return s.exec.Execute(ctx, req, s.creds)
}

func id(v int) string {
	return strconv.Itoa(v)
}

func formBody(data map[string]any) httpclient.Body {
	return httpclient.FormBody(httpclient.FormFromMap(data))
}

// crud holds the five operations every CS-Cart collection supports with JSON bodies.
type crud struct {
	service
}

// List returns the collection, filtered and paginated by params.
func (c crud) List(ctx context.Context, params *ListParams) (*response.Outcome, error) {
	return c.do(ctx, http.MethodGet, c.url(), params.Values(), nil)
}

// Get returns one object by id.
func (c crud) Get(ctx context.Context, objectID int) (*response.Outcome, error) {
	return c.do(ctx, http.MethodGet, c.url(id(objectID)), nil, nil)
}

// Create posts body as JSON.
func (c crud) Create(ctx context.Context, body any) (*response.Outcome, error) {
	return c.do(ctx, http.MethodPost, c.url(), nil, httpclient.JSONBody(body))
}

// Update puts body as JSON onto the object.
func (c crud) Update(ctx context.Context, objectID int, body any) (*response.Outcome, error) {
	return c.do(ctx, http.MethodPut, c.url(id(objectID)), nil, httpclient.JSONBody(body))
}

// Delete removes the object. CS-Cart answers 204 with an empty body.
func (c crud) Delete(ctx context.Context, objectID int) (*response.Outcome, error) {
	return c.do(ctx, http.MethodDelete, c.url(id(objectID)), nil, nil)
}
