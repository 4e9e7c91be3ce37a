package ports

import (
	"context"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// ResourceView is a consistent snapshot of a controller.
type ResourceView[E any, D any] struct {
	Items          []E                  `json:"items"`
	Dialog         domain.DialogState   `json:"dialog"`
	Draft          D                    `json:"draft"`
	Notification   *domain.Notification `json:"notification"`
	PendingRemoval string               `json:"pending_removal,omitempty"`
	Busy           bool                 `json:"busy"`
}

// ResourceService is the generic create/read/update/delete form flow.
type ResourceService[E any, D any] interface {
	LoadList(ctx context.Context) error
	OpenForCreate()
	OpenForEdit(ctx context.Context, id string) error
	Close()
	Submit(ctx context.Context, draft D) (E, error)
	RequestRemove(id string)
	CancelRemove()
	ConfirmRemove(ctx context.Context, id string) error
	// Reject surfaces a draft refused before submission.
	Reject(ctx context.Context, err error)
	DismissNotification()
	View() ResourceView[E, D]
}

// ProductService adds staged attachments and image actions.
type ProductService interface {
	ResourceService[domain.Product, domain.ProductDraft]
	StageAttachment(filename, contentType string, data []byte) (domain.Attachment, error)
	UnstageAttachment(id string) error
	DeleteImage(ctx context.Context, productID string, imageID int64) error
	SetPrimaryImage(ctx context.Context, productID string, imageID int64) error
}

// DashboardService builds the landing screen.
type DashboardService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}
