// httpclient/methods.go
package httpclient

import (
	"fmt"
	"net/http"
	"strings"
)

/* Ref: https://www.rfc-editor.org/rfc/rfc7231#section-8.1.3

+---------+------+------------+
| Method  | Safe | Idempotent |
+---------+------+------------+
| DELETE  | no   | yes        |
| GET     | yes  | yes        |
| POST    | no   | no         |
| PUT     | no   | yes        |
+---------+------+------------+

Only these four methods are dispatched.
*/

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// UnsupportedMethodError is returned by Execute before any network I/O when the
// request method is not GET, POST, PUT or DELETE.
type UnsupportedMethodError struct {
	Method string
}

// Error returns a string representation of the UnsupportedMethodError.
func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported http method %q", e.Method)
}

// normalizeMethod upper-cases method and checks it is supported.
func normalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if !supportedMethods[m] {
		return "", &UnsupportedMethodError{Method: method}
	}
	return m, nil
}

// IsIdempotentHTTPMethod checks if the given HTTP method is idempotent.
func IsIdempotentHTTPMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
