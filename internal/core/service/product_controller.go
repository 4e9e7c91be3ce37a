package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// ProductController is the products controller plus staged attachments and
// persisted-image actions.
type ProductController struct {
	*Controller[domain.Product, domain.ProductDraft]
	products ports.ProductGateway
}

func NewProductController(
	gw ports.ProductGateway,
	session ports.SessionHandle,
	journal ports.Journal,
	log zerolog.Logger,
) *ProductController {
	return &ProductController{
		Controller: NewController(ProductSpec(), ports.ResourceGateway[domain.Product](gw), session, journal, log),
		products:   gw,
	}
}

// Submit sends the operator's fields together with the attachments staged on
// the controller's draft.
func (p *ProductController) Submit(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	p.mu.Lock()
	draft.Attachments = append([]domain.Attachment{}, p.draft.Attachments...)
	draft.ExistingImages = append([]domain.ProductImage{}, p.draft.ExistingImages...)
	p.mu.Unlock()
	return p.Controller.Submit(ctx, draft)
}

// StageAttachment appends a file to the open draft.
func (p *ProductController) StageAttachment(filename, contentType string, data []byte) (domain.Attachment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dialog.IsOpen() {
		return domain.Attachment{}, domain.ErrDialogClosed
	}
	att := domain.Attachment{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		Size:        len(data),
		Data:        data,
	}
	p.draft.Attachments = append(p.draft.Attachments, att)
	return att, nil
}

// UnstageAttachment removes one staged file.
func (p *ProductController) UnstageAttachment(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, att := range p.draft.Attachments {
		if att.ID == id {
			kept := make([]domain.Attachment, 0, len(p.draft.Attachments)-1)
			kept = append(kept, p.draft.Attachments[:i]...)
			kept = append(kept, p.draft.Attachments[i+1:]...)
			p.draft.Attachments = kept
			return nil
		}
	}
	return domain.ErrAttachmentNotFound
}

// DeleteImage deletes a persisted image of the product being edited and
// drops it from the draft's existing images.
func (p *ProductController) DeleteImage(ctx context.Context, productID string, imageID int64) error {
	if err := p.requireEditing(productID); err != nil {
		return err
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.products.DeleteImage(ctx, productID, imageID); err != nil {
		p.fail(ctx, err, "Failed to delete image")
		p.record("delete_image", productID, err)
		return fmt.Errorf("delete image %d of product %s: %w", imageID, productID, err)
	}

	p.mu.Lock()
	if p.dialog.IsEditing(productID) {
		kept := make([]domain.ProductImage, 0, len(p.draft.ExistingImages))
		for _, img := range p.draft.ExistingImages {
			if img.ID != imageID {
				kept = append(kept, img)
			}
		}
		p.draft.ExistingImages = kept
	}
	p.mu.Unlock()

	p.notify(domain.SeveritySuccess, "Image deleted successfully")
	p.record("delete_image", productID, nil)
	return nil
}

// SetPrimaryImage promotes an image, then re-fetches the product: the primary
// flag of the other images changes server-side and is not returned inline.
func (p *ProductController) SetPrimaryImage(ctx context.Context, productID string, imageID int64) error {
	if err := p.requireEditing(productID); err != nil {
		return err
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.products.SetPrimaryImage(ctx, productID, imageID); err != nil {
		p.fail(ctx, err, "Failed to set primary image")
		p.record("set_primary_image", productID, err)
		return fmt.Errorf("set primary image %d of product %s: %w", imageID, productID, err)
	}
	p.record("set_primary_image", productID, nil)

	fresh, err := p.products.Get(ctx, productID)
	if err != nil {
		p.fail(ctx, err, "Error loading product details")
		return fmt.Errorf("reload product %s: %w", productID, err)
	}

	p.mu.Lock()
	if p.dialog.IsEditing(productID) {
		p.draft.ExistingImages = append([]domain.ProductImage{}, fresh.Images...)
	}
	p.items = replaceByIdentity(p.items, productID, fresh, domain.Product.Identity)
	p.mu.Unlock()

	p.notify(domain.SeveritySuccess, "Primary image updated")
	return nil
}

func (p *ProductController) requireEditing(productID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dialog.IsEditing(productID) {
		return domain.ErrNotEditing
	}
	return nil
}
