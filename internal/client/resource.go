package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// ResourceClient provides the CRUD calls shared by every collection
// resource. T is the decoded resource type.
type ResourceClient[T any] struct {
	base         *crm.BaseClient
	resourcePath string
	resourceName string
}

// NewResourceClient creates a client for the collection at resourcePath.
// resourceName is used in error messages.
func NewResourceClient[T any](base *crm.BaseClient, resourcePath, resourceName string) *ResourceClient[T] {
	return &ResourceClient[T]{
		base:         base,
		resourcePath: resourcePath,
		resourceName: resourceName,
	}
}

// Get retrieves a single resource by UID.
func (c *ResourceClient[T]) Get(ctx context.Context, uid string) (*T, error) {
	path, err := c.itemPath(uid)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.resourceName, err)
	}

	return c.decode(resp)
}

// List retrieves one page of the collection. A nil request lets the server
// pick its default page.
func (c *ResourceClient[T]) List(ctx context.Context, request *crm.PageRequest) (*crm.ItemPage[T], error) {
	var params *crm.Params
	if request != nil {
		params = request.BuildParams()
	}

	resp, err := c.base.Get(ctx, c.resourcePath, params)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.resourceName, err)
	}

	page, err := crm.JSONStringToPage[T](c.base.Parser(), resp)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.resourceName, err)
	}

	return page, nil
}

// Iterate walks every page starting at request.
func (c *ResourceClient[T]) Iterate(ctx context.Context, request *crm.PageRequest) *crm.PageIterator[T] {
	return crm.NewPageIterator[T](ctx, c.List, request)
}

// Create posts a new resource and returns the server's copy.
func (c *ResourceClient[T]) Create(ctx context.Context, resource *T) (*T, error) {
	if resource == nil {
		return nil, crm.NewInvalidArgumentError(c.resourceName + " is required")
	}

	payload, err := c.base.Parser().ObjectToJSONString(resource)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", c.resourceName, err)
	}

	resp, err := c.base.Post(ctx, c.resourcePath, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resourceName, err)
	}

	return c.decode(resp)
}

// Update replaces the resource stored under uid.
func (c *ResourceClient[T]) Update(ctx context.Context, uid string, resource *T) (*T, error) {
	path, err := c.itemPath(uid)
	if err != nil {
		return nil, err
	}

	if resource == nil {
		return nil, crm.NewInvalidArgumentError(c.resourceName + " is required")
	}

	payload, err := c.base.Parser().ObjectToJSONString(resource)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", c.resourceName, err)
	}

	resp, err := c.base.Put(ctx, path, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.resourceName, err)
	}

	return c.decode(resp)
}

// Delete removes the resource stored under uid.
func (c *ResourceClient[T]) Delete(ctx context.Context, uid string) error {
	path, err := c.itemPath(uid)
	if err != nil {
		return err
	}

	_, err = c.base.Delete(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", c.resourceName, err)
	}

	return nil
}

func (c *ResourceClient[T]) itemPath(uid string) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", crm.NewInvalidArgumentError(c.resourceName + " uid is required")
	}

	return c.resourcePath + "/" + url.PathEscape(uid), nil
}

func (c *ResourceClient[T]) decode(resp string) (*T, error) {
	var resource T

	err := c.base.Parser().JSONStringToObject(resp, &resource)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.resourceName, err)
	}

	return &resource, nil
}
