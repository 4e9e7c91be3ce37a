package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// UserGateway implements ports.ResourceGateway[domain.User] over the admin
// user endpoints. Bodies are JSON.
type UserGateway struct {
	collection[domain.User]
}

func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{collection: collection[domain.User]{c: c, name: "users", path: "/auth/users"}}
}

func (g *UserGateway) Create(ctx context.Context, p ports.Payload) (domain.User, error) {
	body, err := jsonBody(payloadObject(p))
	if err != nil {
		return domain.User{}, fmt.Errorf("users.create: encode: %w", err)
	}
	return g.send(ctx, "create", http.MethodPost, g.path, body, "application/json")
}

func (g *UserGateway) Update(ctx context.Context, id string, p ports.Payload) (domain.User, error) {
	body, err := jsonBody(payloadObject(p))
	if err != nil {
		return domain.User{}, fmt.Errorf("users.update: encode: %w", err)
	}
	return g.send(ctx, "update", http.MethodPut, g.item(id), body, "application/json")
}

func payloadObject(p ports.Payload) map[string]any {
	out := make(map[string]any, len(p.Fields))
	for _, f := range p.Fields {
		out[f.Name] = f.Value
	}
	return out
}
