package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// collection is the read and delete half of a REST collection. Create and
// update differ per resource in their body encoding.
type collection[E any] struct {
	c    *Client
	name string
	path string
}

func (col collection[E]) item(id string) string {
	return col.path + "/" + url.PathEscape(id)
}

func (col collection[E]) op(action string) string {
	return col.name + "." + action
}

// List accepts a bare array or a paginated {"results": [...]} envelope.
func (col collection[E]) List(ctx context.Context) ([]E, error) {
	var raw json.RawMessage
	if err := col.c.do(ctx, request{op: col.op("list"), method: http.MethodGet, path: col.path}, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	items := []E{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return items, nil
	}
	if raw[0] == '{' {
		var page struct {
			Results []E `json:"results"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("%s: decode page: %w: %w", col.op("list"), domain.ErrRemote, err)
		}
		if page.Results != nil {
			items = page.Results
		}
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: decode list: %w: %w", col.op("list"), domain.ErrRemote, err)
	}
	return items, nil
}

func (col collection[E]) Get(ctx context.Context, id string) (E, error) {
	var out E
	err := col.c.do(ctx, request{op: col.op("get"), method: http.MethodGet, path: col.item(id)}, &out)
	return out, err
}

func (col collection[E]) Delete(ctx context.Context, id string) error {
	return col.c.do(ctx, request{op: col.op("delete"), method: http.MethodDelete, path: col.item(id)}, nil)
}

// send issues a create or update and decodes the saved entity.
func (col collection[E]) send(ctx context.Context, action, method, path string, body io.Reader, contentType string) (E, error) {
	var out E
	err := col.c.do(ctx, request{
		op:          col.op(action),
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
	}, &out)
	return out, err
}
