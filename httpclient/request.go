// httpclient/request.go
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNilRequest is returned by Execute when called without a request.
var ErrNilRequest = errors.New("nil request")

// Content types set for the built-in body kinds.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one outbound call. Headers override the defaults of the same name;
// Query is merged with any query already present in URL.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Query   url.Values
	Body    Body // nil for no body
}

// NewRequest is a small convenience for building a Request.
func NewRequest(method, rawURL string, body Body) *Request {
	return &Request{Method: method, URL: rawURL, Body: body}
}

// WithQuery adds a query parameter and returns r.
func (r *Request) WithQuery(key, value string) *Request {
	if r.Query == nil {
		r.Query = url.Values{}
	}
	r.Query.Add(key, value)
	return r
}

// WithHeader sets an override header and returns r.
func (r *Request) WithHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	r.Headers.Set(key, value)
	return r
}

// Body is a request payload. Build one with JSONBody, FormBody or RawBody.
type Body interface {
	// Encode returns the payload bytes and their content type.
	Encode() ([]byte, string, error)
}

type jsonBody struct {
	value any
}

// JSONBody encodes v as JSON with Content-Type application/json.
func JSONBody(v any) Body {
	return jsonBody{value: v}
}

func (b jsonBody) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b.value)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return data, ContentTypeJSON, nil
}

type formBody struct {
	values url.Values
}

// FormBody encodes values as application/x-www-form-urlencoded.
func FormBody(values url.Values) Body {
	return formBody{values: values}
}

func (b formBody) Encode() ([]byte, string, error) {
	return []byte(b.values.Encode()), ContentTypeForm, nil
}

type rawBody struct {
	contentType string
	data        []byte
}

// RawBody sends data verbatim with the given content type.
func RawBody(contentType string, data []byte) Body {
	return rawBody{contentType: contentType, data: data}
}

func (b rawBody) Encode() ([]byte, string, error) {
	return b.data, b.contentType, nil
}
