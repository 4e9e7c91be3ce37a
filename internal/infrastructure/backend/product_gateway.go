package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// imagesField is the multipart field every staged file is sent under.
const imagesField = "images"

// ProductGateway implements ports.ProductGateway. Create and update are
// multipart so images travel with the fields.
type ProductGateway struct {
	collection[domain.Product]
}

func NewProductGateway(c *Client) *ProductGateway {
	return &ProductGateway{collection: collection[domain.Product]{c: c, name: "products", path: "/products"}}
}

func (g *ProductGateway) Create(ctx context.Context, p ports.Payload) (domain.Product, error) {
	body, ct, err := encodeMultipart(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.create: encode: %w", err)
	}
	return g.send(ctx, "create", http.MethodPost, g.path, body, ct)
}

func (g *ProductGateway) Update(ctx context.Context, id string, p ports.Payload) (domain.Product, error) {
	body, ct, err := encodeMultipart(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.update: encode: %w", err)
	}
	return g.send(ctx, "update", http.MethodPut, g.item(id), body, ct)
}

type imageRequest struct {
	ImageID int64 `json:"image_id"`
}

func (g *ProductGateway) DeleteImage(ctx context.Context, productID string, imageID int64) error {
	return g.imageAction(ctx, "delete_image", productID, imageID)
}

func (g *ProductGateway) SetPrimaryImage(ctx context.Context, productID string, imageID int64) error {
	return g.imageAction(ctx, "set_primary_image", productID, imageID)
}

func (g *ProductGateway) imageAction(ctx context.Context, action, productID string, imageID int64) error {
	body, err := jsonBody(imageRequest{ImageID: imageID})
	if err != nil {
		return fmt.Errorf("products.%s: encode: %w", action, err)
	}
	return g.c.do(ctx, request{
		op:          g.op(action),
		method:      http.MethodPost,
		path:        g.item(productID) + "/" + action,
		body:        body,
		contentType: "application/json",
	}, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes fields in payload order, then the files. Booleans
// are sent as "true"/"false".
func encodeMultipart(p ports.Payload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range p.Fields {
		if err := w.WriteField(f.Name, formValue(f.Value)); err != nil {
			return nil, "", err
		}
	}

	for _, att := range p.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imagesField, quoteEscaper.Replace(att.Filename)))
		ct := att.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
