package cscart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/httpclient"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/sessionstore"
)

// ErrEmptyEmail is returned by operations that need a user or vendor email.
var ErrEmptyEmail = errors.New("email is required")

// AuthService requests customer sessions from api/auth.
type AuthService struct {
	svc      service
	sessions sessionstore.Store
}

// NewAuthService binds api/auth to creds. When sessions is non-nil every session
// the server hands out is stored in it; the service never reads it back.
func NewAuthService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials, sessions sessionstore.Store) *AuthService {
	return &AuthService{svc: newService(exec, root, creds, "api", "auth"), sessions: sessions}
}

// SendAuthRequest asks for a session for userEmail. A successful response is an
// object carrying "key" and "link"; that pair is stored under userEmail before the
// outcome is returned unchanged.
//
// The error is non-nil for an empty email, for the Executor's own errors and when
// the session store rejects the write. In the last case the outcome is returned too.
func (s *AuthService) SendAuthRequest(ctx context.Context, userEmail string) (*response.Outcome, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, ErrEmptyEmail
	}

	outcome, err := s.svc.do(ctx, http.MethodPost, s.svc.url(), nil,
		httpclient.JSONBody(map[string]string{"email": userEmail}))
	if err != nil || !outcome.IsSuccess() || s.sessions == nil {
		return outcome, err
	}

	session, ok := sessionFromOutcome(outcome)
	if !ok {
		return outcome, nil
	}
	if err := s.sessions.Store(ctx, userEmail, session); err != nil {
		return outcome, fmt.Errorf("store session for %s: %w", userEmail, err)
	}
	return outcome, nil
}

func sessionFromOutcome(outcome *response.Outcome) (sessionstore.Session, bool) {
	obj, ok := outcome.Object()
	if !ok {
		return sessionstore.Session{}, false
	}
	key, ok := obj["key"].(string)
	if !ok || key == "" {
		return sessionstore.Session{}, false
	}
	link, _ := obj["link"].(string)
	return sessionstore.Session{Key: key, Link: link}, true
}

// APIKeysService generates vendor API keys via api/generateAPIKey.
type APIKeysService struct {
	svc service
}

// NewAPIKeysService builds the API key facade on its own.
func NewAPIKeysService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *APIKeysService {
	return &APIKeysService{svc: newService(exec, root, creds, "api", "generateAPIKey")}
}

// Generate creates an API key for the vendor account registered under vendorEmail.
func (s *APIKeysService) Generate(ctx context.Context, vendorEmail string) (*response.Outcome, error) {
	if strings.TrimSpace(vendorEmail) == "" {
		return nil, ErrEmptyEmail
	}
	return s.svc.do(ctx, http.MethodPost, s.svc.url(), nil,
		httpclient.JSONBody(map[string]string{"vendor_email": vendorEmail}))
}
