// credentials/credentials.go
/* Package credentials encodes CS-Cart API credentials (an account email and its API key)
into the opaque token carried by the HTTP Basic Authentication "Authorization" header. */
package credentials

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials is matched by every *InvalidCredentialsError through errors.Is.
var ErrInvalidCredentials = errors.New("invalid credentials")

// InvalidCredentialsError is returned when an identifier or secret is missing or blank,
// or when the identifier contains ':'.
type InvalidCredentialsError struct {
	Field  string // "identifier", "secret" or "token"
	Reason string
}

// Error returns a string representation of the InvalidCredentialsError.
func (e *InvalidCredentialsError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be set"
	}
	return fmt.Sprintf("invalid credentials: %s %s", e.Field, reason)
}

// Is lets errors.Is match ErrInvalidCredentials.
func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// Credentials is an immutable identifier/secret pair with its precomputed Basic token.
// The zero value is not valid; use New.
type Credentials struct {
	identifier string
	token      string
}

// New validates the pair and encodes the token once.
func New(identifier, secret string) (Credentials, error) {
	token, err := Encode(identifier, secret)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{identifier: identifier, token: token}, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and static setup.
func MustNew(identifier, secret string) Credentials {
	c, err := New(identifier, secret)
	if err != nil {
		panic(err)
	}
	return c
}

// Identifier returns the account identifier (email).
func (c Credentials) Identifier() string {
	return c.identifier
}

// Token returns the Base64 encoding of "<identifier>:<secret>".
func (c Credentials) Token() string {
	return c.token
}

// Header returns the full Authorization header value.
func (c Credentials) Header() string {
	return "Basic " + c.token
}

// IsZero reports whether c was never constructed with New.
func (c Credentials) IsZero() bool {
	return c.token == ""
}

// String never includes the secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{identifier: %q}", c.identifier)
}

// Encode returns base64("<identifier>:<secret>") using standard padded encoding.
// Blank fields are rejected, as is a ':' in the identifier (RFC 7617).
func Encode(identifier, secret string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", &InvalidCredentialsError{Field: "identifier"}
	}
	if strings.Contains(identifier, ":") {
		return "", &InvalidCredentialsError{Field: "identifier", Reason: "must not contain ':'"}
	}
	if strings.TrimSpace(secret) == "" {
		return "", &InvalidCredentialsError{Field: "secret"}
	}
	return base64.StdEncoding.EncodeToString([]byte(identifier + ":" + secret)), nil
}

// Decode reverses Encode. The pair is split on the first ':' since identifiers are emails.
func Decode(token string) (identifier, secret string, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("decode basic token: %w", err)
	}
	identifier, secret, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", &InvalidCredentialsError{Field: "token"}
	}
	return identifier, secret, nil
}
