package service

import (
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// ProductSpec configures the products controller.
func ProductSpec() ResourceSpec[domain.Product, domain.ProductDraft] {
	return ResourceSpec[domain.Product, domain.ProductDraft]{
		Name:        "product",
		Label:       "Product",
		Plural:      "products",
		Identity:    domain.Product.Identity,
		NewDraft:    NewProductDraft,
		DraftFrom:   ProductDraftFrom,
		Serialize:   SerializeProduct,
		FetchDetail: true,
	}
}

// NewProductDraft returns the create-mode defaults.
func NewProductDraft() domain.ProductDraft {
	return domain.ProductDraft{
		Currency:       domain.DefaultCurrency,
		IsAvailable:    true,
		FrameColors:    []string{},
		Sizes:          []string{},
		LensOptions:    []string{},
		Attachments:    []domain.Attachment{},
		ExistingImages: []domain.ProductImage{},
	}
}

// ProductDraftFrom normalizes a fetched product into a draft. Frame colors
// prefer the "colors" array and fall back to the "frame_colors" string.
func ProductDraftFrom(p domain.Product) domain.ProductDraft {
	d := NewProductDraft()
	d.Name = p.Name
	d.Description = p.Description
	d.Price = p.Price.String()
	if p.Currency != "" {
		d.Currency = p.Currency
	}
	d.Stock = p.Stock.String()
	d.Category = p.Category
	d.Brand = p.Brand
	d.FrameColors = domain.NormalizeMulti(p.Colors, p.FrameColors)
	d.Sizes = domain.NormalizeMulti(p.Sizes)
	d.LensOptions = domain.NormalizeMulti(p.LensOptions)
	d.IsBestseller = p.IsBestseller
	d.IsNew = p.IsNew
	if p.IsAvailable != nil {
		d.IsAvailable = *p.IsAvailable
	}
	if len(p.Images) > 0 {
		d.ExistingImages = append([]domain.ProductImage(nil), p.Images...)
	}
	return d
}

// SerializeProduct builds the multipart payload. Empty text fields and empty
// multi-valued fields are omitted; the three flags are always sent.
// ExistingImages are display-only and never sent.
func SerializeProduct(d domain.ProductDraft, _ bool) (ports.Payload, error) {
	var p ports.Payload
	setText(&p, "name", d.Name)
	setText(&p, "description", d.Description)
	setText(&p, "price", d.Price)
	setText(&p, "currency", d.Currency)
	setText(&p, "stock", d.Stock)
	setText(&p, "category", d.Category)
	setText(&p, "brand", d.Brand)
	setMulti(&p, "frame_colors", d.FrameColors)
	setMulti(&p, "sizes", d.Sizes)
	setMulti(&p, "lens_options", d.LensOptions)
	p.Set("is_bestseller", d.IsBestseller)
	p.Set("is_new", d.IsNew)
	p.Set("is_available", d.IsAvailable)
	if len(d.Attachments) > 0 {
		p.Files = append([]domain.Attachment(nil), d.Attachments...)
	}
	return p, nil
}

func setText(p *ports.Payload, name, value string) {
	if value != "" {
		p.Set(name, value)
	}
}

func setMulti(p *ports.Payload, name string, values []string) {
	if len(values) > 0 {
		p.Set(name, domain.JoinMulti(values))
	}
}
