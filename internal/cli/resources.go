package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-cscart/cscart"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/spf13/cobra"
)

// resource is the CRUD surface shared by the collections exposed on the command line.
type resource interface {
	List(ctx context.Context, params *cscart.ListParams) (*response.Outcome, error)
	Get(ctx context.Context, objectID int) (*response.Outcome, error)
	Create(ctx context.Context, body any) (*response.Outcome, error)
	Update(ctx context.Context, objectID int, body any) (*response.Outcome, error)
	Delete(ctx context.Context, objectID int) (*response.Outcome, error)
}

// usersResource adapts the form-based users API to resource.
type usersResource struct {
	users *cscart.UsersService
}

func (u usersResource) List(ctx context.Context, params *cscart.ListParams) (*response.Outcome, error) {
	return u.users.List(ctx, params.Page, params.ItemsPerPage)
}

func (u usersResource) Get(ctx context.Context, objectID int) (*response.Outcome, error) {
	return u.users.Get(ctx, objectID)
}

func (u usersResource) Create(ctx context.Context, body any) (*response.Outcome, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("user data must be a JSON object")
	}
	return u.users.Create(ctx, obj)
}

func (u usersResource) Update(ctx context.Context, objectID int, body any) (*response.Outcome, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("user data must be a JSON object")
	}
	return u.users.Update(ctx, objectID, obj)
}

func (u usersResource) Delete(ctx context.Context, objectID int) (*response.Outcome, error) {
	return u.users.Delete(ctx, objectID)
}

type resourceSpec struct {
	name     string
	singular string
	pick     func(*cscart.Client) resource
}

func resourceCommands() []resourceSpec {
	return []resourceSpec{
		{"orders", "order", func(c *cscart.Client) resource { return c.Orders }},
		{"products", "product", func(c *cscart.Client) resource { return c.Products }},
		{"vendors", "vendor", func(c *cscart.Client) resource { return c.Vendors }},
		{"stores", "store", func(c *cscart.Client) resource { return c.Stores }},
		{"shipments", "shipment", func(c *cscart.Client) resource { return c.Shipments }},
		{"users", "user", func(c *cscart.Client) resource { return usersResource{c.Users} }},
	}
}

func newResourceCommand(a *app, spec resourceSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.name,
		Short: fmt.Sprintf("Manage %s", spec.name),
	}

	// run resolves the resource and prints what fn returns.
	run := func(fn func(ctx context.Context, r resource, args []string) (*response.Outcome, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			client, err := a.cscartClient()
			if err != nil {
				return err
			}
			outcome, err := fn(cmd.Context(), spec.pick(client), args)
			if err != nil {
				return err
			}
			return a.printOutcome(cmd, outcome)
		}
	}

	var page, itemsPerPage int
	var params []string
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", spec.name),
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, r resource, _ []string) (*response.Outcome, error) {
			extra, err := parseParams(params)
			if err != nil {
				return nil, err
			}
			return r.List(ctx, &cscart.ListParams{Page: page, ItemsPerPage: itemsPerPage, Extra: extra})
		}),
	}
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&itemsPerPage, "items-per-page", 0, "page size")
	list.Flags().StringArrayVar(&params, "param", nil, "extra query parameter as key=value (repeatable)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", spec.singular),
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, r resource, args []string) (*response.Outcome, error) {
			objectID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return r.Get(ctx, objectID)
		}),
	}

	var createData string
	create := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s from --data", spec.singular),
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, r resource, _ []string) (*response.Outcome, error) {
			body, err := readData(createData)
			if err != nil {
				return nil, err
			}
			return r.Create(ctx, body)
		}),
	}
	create.Flags().StringVar(&createData, "data", "", "JSON body, or @file")

	var updateData string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s from --data", spec.singular),
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, r resource, args []string) (*response.Outcome, error) {
			objectID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			body, err := readData(updateData)
			if err != nil {
				return nil, err
			}
			return r.Update(ctx, objectID, body)
		}),
	}
	update.Flags().StringVar(&updateData, "data", "", "JSON body, or @file")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", spec.singular),
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, r resource, args []string) (*response.Outcome, error) {
			objectID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return r.Delete(ctx, objectID)
		}),
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func parseID(raw string) (int, error) {
	objectID, err := strconv.Atoi(raw)
	if err != nil || objectID <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return objectID, nil
}

func parseParams(params []string) (url.Values, error) {
	values := url.Values{}
	for _, param := range params {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: want key=value", param)
		}
		values.Add(key, value)
	}
	return values, nil
}
