package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubSession struct {
	snap        domain.Session
	loginFn     func(ctx context.Context, identifier, secret string) (*domain.UserProfile, error)
	logouts     int
	invalidated int
}

func (s *stubSession) Login(ctx context.Context, identifier, secret string) (*domain.UserProfile, error) {
	return s.loginFn(ctx, identifier, secret)
}
func (s *stubSession) Logout(context.Context) { s.logouts++ }
func (s *stubSession) Verify(context.Context) domain.SessionState { return s.snap.State }
func (s *stubSession) Snapshot() domain.Session { return s.snap }
func (s *stubSession) State() domain.SessionState { return s.snap.State }
func (s *stubSession) Invalidate(context.Context) { s.invalidated++ }
func (s *stubSession) Actor() string { return "" }

type stubResource[E any, D any] struct {
	view        ports.ResourceView[E, D]
	loadErr     error
	openEditErr error
	submitFn    func(ctx context.Context, draft D) (E, error)
	confirmErr  error
	submits     int
	requested   string
	rejected    []error
}

func (s *stubResource[E, D]) LoadList(context.Context) error { return s.loadErr }
func (s *stubResource[E, D]) OpenForCreate() { s.view.Dialog = domain.Creating() }
func (s *stubResource[E, D]) OpenForEdit(_ context.Context, id string) error {
	if s.openEditErr != nil {
		return s.openEditErr
	}
	s.view.Dialog = domain.Editing(id)
	return nil
}
func (s *stubResource[E, D]) Close() { s.view.Dialog = domain.Closed() }
func (s *stubResource[E, D]) Submit(ctx context.Context, draft D) (E, error) {
	s.submits++
	return s.submitFn(ctx, draft)
}
func (s *stubResource[E, D]) RequestRemove(id string) {
	s.requested = id
	s.view.PendingRemoval = id
}
func (s *stubResource[E, D]) CancelRemove() { s.view.PendingRemoval = "" }
func (s *stubResource[E, D]) ConfirmRemove(context.Context, string) error { return s.confirmErr }
func (s *stubResource[E, D]) Reject(_ context.Context, err error) {
	s.rejected = append(s.rejected, err)
	s.view.Notification = &domain.Notification{Message: domain.MessageOf(err, "Failed to save"), Severity: domain.SeverityError}
}
func (s *stubResource[E, D]) DismissNotification() { s.view.Notification = nil }
func (s *stubResource[E, D]) View() ports.ResourceView[E, D] { return s.view }

type stubProducts struct {
	stubResource[domain.Product, domain.ProductDraft]
	staged     []domain.Attachment
	stageErr   error
	unstageErr error
	imageErr   error
	imageCalls []int64
}

func (s *stubProducts) StageAttachment(filename, contentType string, data []byte) (domain.Attachment, error) {
	if s.stageErr != nil {
		return domain.Attachment{}, s.stageErr
	}
	att := domain.Attachment{ID: filename, Filename: filename, ContentType: contentType, Size: len(data)}
	s.staged = append(s.staged, att)
	return att, nil
}
func (s *stubProducts) UnstageAttachment(string) error { return s.unstageErr }
func (s *stubProducts) DeleteImage(_ context.Context, _ string, imageID int64) error {
	s.imageCalls = append(s.imageCalls, imageID)
	return s.imageErr
}
func (s *stubProducts) SetPrimaryImage(_ context.Context, _ string, imageID int64) error {
	s.imageCalls = append(s.imageCalls, imageID)
	return s.imageErr
}
