// response/outcome.go
/* Package response classifies a completed HTTP exchange into a single Outcome. Every
expected failure mode of a call (an HTTP error status, a transport failure, or an
undecodable success body) is carried as data rather than as a returned error. */
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-api-sdk-cscart/status"
)

// Kind identifies which variant of an Outcome is populated.
type Kind int

const (
	KindSuccess Kind = iota
	KindHTTPError
	KindTransportError
	KindDecodeError
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindHTTPError:
		return "http_error"
	case KindTransportError:
		return "transport_error"
	case KindDecodeError:
		return "decode_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrNotSuccess is returned by Outcome.Decode when the outcome is not a success.
var ErrNotSuccess = errors.New("outcome is not a success")

// Outcome is the result of exactly one request. Exactly one of Value (for
// KindSuccess), HTTPError, TransportError or DecodeError is meaningful, as
// selected by Kind.
type Outcome struct {
	Kind       Kind
	StatusCode int // zero for transport errors
	Value      any // decoded JSON: map[string]any, []any, scalar, or nil

	HTTPError      *HTTPError
	TransportError *TransportError
	DecodeError    *DecodeError
}

// Success builds a success outcome. A nil value means the server sent no body.
func Success(statusCode int, value any) *Outcome {
	return &Outcome{Kind: KindSuccess, StatusCode: statusCode, Value: value}
}

// Transport builds the outcome for a request that never produced a response.
func Transport(method, url string, cause error) *Outcome {
	return &Outcome{
		Kind:           KindTransportError,
		TransportError: &TransportError{Method: method, URL: url, Cause: cause},
	}
}

// Normalize maps a received status, headers and body onto an Outcome:
//
//   - a 2xx status with an empty or whitespace-only body is Success(nil)
//   - a 2xx status with a JSON body is Success(value), whatever the Content-Type says
//   - a 2xx status with anything else is a DecodeError carrying the raw body
//   - any other status is an HTTPError carrying the raw body, never decoded
func Normalize(statusCode int, header http.Header, body []byte) *Outcome {
	if !status.IsSuccess(statusCode) {
		return &Outcome{
			Kind:       KindHTTPError,
			StatusCode: statusCode,
			HTTPError:  newHTTPError(statusCode, header, body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return Success(statusCode, nil)
	}

	value, err := decodeJSON(body)
	if err != nil {
		return &Outcome{
			Kind:        KindDecodeError,
			StatusCode:  statusCode,
			DecodeError: &DecodeError{StatusCode: statusCode, Body: string(body), Cause: err},
		}
	}
	return Success(statusCode, value)
}

// decodeJSON decodes a single JSON document, keeping numbers as json.Number so large
// identifiers survive untouched.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return value, nil
}

// IsSuccess reports whether the outcome is a success.
func (o *Outcome) IsSuccess() bool {
	return o != nil && o.Kind == KindSuccess
}

// Err returns nil for a success and otherwise the populated variant as an error, so
// callers that prefer error propagation can escalate with errors.As.
func (o *Outcome) Err() error {
	if o == nil {
		return errors.New("nil outcome")
	}
	switch o.Kind {
	case KindSuccess:
		return nil
	case KindHTTPError:
		return o.HTTPError
	case KindTransportError:
		return o.TransportError
	case KindDecodeError:
		return o.DecodeError
	default:
		return fmt.Errorf("unknown outcome kind %s", o.Kind)
	}
}

// Decode re-encodes a success value into out, which must be a pointer. Shape
// validation beyond what encoding/json enforces is left to the caller.
func (o *Outcome) Decode(out any) error {
	if !o.IsSuccess() {
		if err := o.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrNotSuccess, err)
		}
		return ErrNotSuccess
	}
	raw, err := json.Marshal(o.Value)
	if err != nil {
		return fmt.Errorf("re-encode success value: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode success value: %w", err)
	}
	return nil
}

// Object returns the success value as a JSON object, if it is one.
func (o *Outcome) Object() (map[string]any, bool) {
	if !o.IsSuccess() {
		return nil, false
	}
	m, ok := o.Value.(map[string]any)
	return m, ok
}
