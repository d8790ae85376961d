package cscart

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
)

// Default pagination of the user listings.
const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
)

// UsersService covers api/users and api/usergroups. Write operations send form
// bodies; nested maps and slices are flattened with bracket notation.
type UsersService struct {
	users      service
	usergroups service
}

// NewUsersService builds the users facade on its own.
func NewUsersService(exec Executor, root endpoint.Endpoint, creds credentials.Credentials) *UsersService {
	return &UsersService{
		users:      newService(exec, root, creds, "api", "users"),
		usergroups: newService(exec, root, creds, "api", "usergroups"),
	}
}

func pageQuery(page, itemsPerPage int) url.Values {
	if page <= 0 {
		page = DefaultPage
	}
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return url.Values{
		"page":           {strconv.Itoa(page)},
		"items_per_page": {strconv.Itoa(itemsPerPage)},
	}
}

// List returns one page of users. Non-positive arguments select DefaultPage and
// DefaultItemsPerPage.
func (s *UsersService) List(ctx context.Context, page, itemsPerPage int) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodGet, s.users.url(), pageQuery(page, itemsPerPage), nil)
}

// Get fetches one user.
func (s *UsersService) Get(ctx context.Context, userID int) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodGet, s.users.url(id(userID)), nil, nil)
}

// Create creates a user from form data.
func (s *UsersService) Create(ctx context.Context, user map[string]any) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodPost, s.users.url(), nil, formBody(user))
}

// Update updates a user from form data.
func (s *UsersService) Update(ctx context.Context, userID int, user map[string]any) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodPut, s.users.url(id(userID)), nil, formBody(user))
}

// Delete deletes a user.
func (s *UsersService) Delete(ctx context.Context, userID int) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodDelete, s.users.url(id(userID)), nil, nil)
}

// ListUserGroups returns one page of user groups.
func (s *UsersService) ListUserGroups(ctx context.Context, page, itemsPerPage int) (*response.Outcome, error) {
	return s.usergroups.do(ctx, http.MethodGet, s.usergroups.url(), pageQuery(page, itemsPerPage), nil)
}

// GetUserGroup fetches one user group.
func (s *UsersService) GetUserGroup(ctx context.Context, groupID int) (*response.Outcome, error) {
	return s.usergroups.do(ctx, http.MethodGet, s.usergroups.url(id(groupID)), nil, nil)
}

// CreateUserGroup creates a user group from form data.
func (s *UsersService) CreateUserGroup(ctx context.Context, group map[string]any) (*response.Outcome, error) {
	return s.usergroups.do(ctx, http.MethodPost, s.usergroups.url(), nil, formBody(group))
}

// UpdateUserGroup updates a user group from form data.
func (s *UsersService) UpdateUserGroup(ctx context.Context, groupID int, group map[string]any) (*response.Outcome, error) {
	return s.usergroups.do(ctx, http.MethodPut, s.usergroups.url(id(groupID)), nil, formBody(group))
}

// DeleteUserGroup deletes a user group.
func (s *UsersService) DeleteUserGroup(ctx context.Context, groupID int) (*response.Outcome, error) {
	return s.usergroups.do(ctx, http.MethodDelete, s.usergroups.url(id(groupID)), nil, nil)
}

// ListUserGroupsOfUser returns the groups userID belongs to.
func (s *UsersService) ListUserGroupsOfUser(ctx context.Context, userID int) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodGet, s.users.url(id(userID), "usergroups"), nil, nil)
}

// UpdateUserGroupStatus sets the membership status of userID in groupID. CS-Cart
// uses "A" (active), "D" (declined), "P" (pending) and "F" (available).
func (s *UsersService) UpdateUserGroupStatus(ctx context.Context, userID, groupID int, status string) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodPut, s.users.url(id(userID), "usergroups", id(groupID)), nil,
		formBody(map[string]any{"status": status}))
}

// RemoveUserFromGroup takes a user out of a user group.
func (s *UsersService) RemoveUserFromGroup(ctx context.Context, userID, groupID int) (*response.Outcome, error) {
	return s.users.do(ctx, http.MethodDelete, s.users.url(id(userID), "usergroups", id(groupID)), nil, nil)
}
