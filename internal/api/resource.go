package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hrsystem/hr-console/internal/domain/resource"
)

// TokenSource supplies the current bearer token for resource requests. The
// session service owns the token; collections only read it.
type TokenSource interface {
	Token() string
}

// MutationResult carries a successful create/update outcome: the record as
// the server returned it (when it returned one) and the server-provided
// message for the success banner.
type MutationResult[T any] struct {
	Record  T
	Message string
}

// Collection is the generic list/create/update/delete client for one
// managed collection.
type Collection[T any] struct {
	client *Client
	schema resource.Schema[T]
	tokens TokenSource
}

// NewCollection binds a schema to the API client and a token source.
func NewCollection[T any](client *Client, schema resource.Schema[T], tokens TokenSource) *Collection[T] {
	return &Collection[T]{client: client, schema: schema, tokens: tokens}
}

// Schema returns the collection's schema descriptor.
func (c *Collection[T]) Schema() resource.Schema[T] { return c.schema }

// List fetches the full current collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	env, err := c.client.do(ctx, http.MethodGet, "/"+c.schema.Collection, c.tokens.Token(), nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.schema.Collection, err)
	}
	var records []T
	if decodeErr := decodeData(env, &records); decodeErr != nil {
		return nil, fmt.Errorf("list %s: %w", c.schema.Collection, decodeErr)
	}
	return records, nil
}

// Create submits a pending form draft as a new record.
func (c *Collection[T]) Create(ctx context.Context, draft T) (MutationResult[T], error) {
	env, err := c.client.do(ctx, http.MethodPost, "/"+c.schema.Collection, c.tokens.Token(), draft)
	if err != nil {
		return MutationResult[T]{}, fmt.Errorf("create %s: %w", c.schema.Title, err)
	}
	return mutationResult[T](env)
}

// Update submits a pending form draft as a replacement for the record id.
func (c *Collection[T]) Update(ctx context.Context, id int64, draft T) (MutationResult[T], error) {
	env, err := c.client.do(ctx, http.MethodPut, c.recordPath(id), c.tokens.Token(), draft)
	if err != nil {
		return MutationResult[T]{}, fmt.Errorf("update %s: %w", c.schema.Title, err)
	}
	return mutationResult[T](env)
}

// Remove deletes the record id and returns the server-provided message.
// Callers reach this only through an explicit confirmation step.
func (c *Collection[T]) Remove(ctx context.Context, id int64) (string, error) {
	env, err := c.client.do(ctx, http.MethodDelete, c.recordPath(id), c.tokens.Token(), nil)
	if err != nil {
		return "", fmt.Errorf("delete %s: %w", c.schema.Title, err)
	}
	return env.Message, nil
}

func (c *Collection[T]) recordPath(id int64) string {
	return "/" + c.schema.Collection + "/" + strconv.FormatInt(id, 10)
}

func mutationResult[T any](env envelope) (MutationResult[T], error) {
	res := MutationResult[T]{Message: env.Message}
	if err := decodeData(env, &res.Record); err != nil {
		return MutationResult[T]{}, err
	}
	return res, nil
}
