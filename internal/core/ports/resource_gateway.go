package ports

import (
	"context"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// Payload is a fully serialized draft. Values are string or bool; the gateway
// picks the wire encoding (multipart or JSON). Files are sent only by
// gateways that support attachments.
type Payload struct {
	Fields []Field
	Files  []domain.Attachment
}

// Field is one named value of a payload, kept in submission order.
type Field struct {
	Name  string
	Value any
}

// Set appends a field.
func (p *Payload) Set(name string, value any) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

// Get returns the value of the named field.
func (p Payload) Get(name string) (any, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// ResourceGateway is the uniform CRUD contract of a backend collection.
type ResourceGateway[E any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, payload Payload) (E, error)
	Update(ctx context.Context, id string, payload Payload) (E, error)
	Delete(ctx context.Context, id string) error
}

// ImageGateway manages persisted product images.
type ImageGateway interface {
	DeleteImage(ctx context.Context, productID string, imageID int64) error
	SetPrimaryImage(ctx context.Context, productID string, imageID int64) error
}

// ProductGateway is the products collection plus its image actions.
type ProductGateway interface {
	ResourceGateway[domain.Product]
	ImageGateway
}
