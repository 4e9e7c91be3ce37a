package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/api/metrics"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// ResourceSpec is the per-resource configuration of a Controller.
type ResourceSpec[E any, D any] struct {
	// Name is the singular lowercase key used in logs, metrics and the journal.
	Name string
	// Label and Plural are used in notifications ("Product", "products").
	Label  string
	Plural string

	Identity  func(E) string
	NewDraft  func() D
	DraftFrom func(E) D
	// Serialize turns a draft into the request payload. It may reject the
	// draft with a *domain.ValidationError; no request is issued then.
	Serialize func(draft D, editing bool) (ports.Payload, error)
	// Redact, when set, strips secrets from the draft returned by View.
	Redact func(D) D

	// FetchDetail makes OpenForEdit fetch the entity instead of using the
	// list row, for resources whose list rows omit nested detail.
	FetchDetail bool
}

// Controller mediates between a backend collection and its create/edit
// dialog. Local state is changed only after the backend confirmed a
// mutation, and never partially.
type Controller[E any, D any] struct {
	spec    ResourceSpec[E, D]
	gw      ports.ResourceGateway[E]
	session ports.SessionHandle
	journal ports.Journal
	log     zerolog.Logger
	now     func() time.Time

	mu             sync.Mutex
	items          []E
	dialog         domain.DialogState
	draft          D
	notice         *domain.Notification
	pendingRemoval string
	busy           bool
}

// NewController returns a controller with an empty list and a closed dialog.
// journal may be nil.
func NewController[E any, D any](
	spec ResourceSpec[E, D],
	gw ports.ResourceGateway[E],
	session ports.SessionHandle,
	journal ports.Journal,
	log zerolog.Logger,
) *Controller[E, D] {
	return &Controller[E, D]{
		spec:    spec,
		gw:      gw,
		session: session,
		journal: journal,
		log:     log.With().Str("resource", spec.Name).Logger(),
		now:     time.Now,
		items:   []E{},
		dialog:  domain.Closed(),
		draft:   spec.NewDraft(),
	}
}

// LoadList replaces the list with the backend's collection. On failure the
// previous list is kept.
func (c *Controller[E, D]) LoadList(ctx context.Context) error {
	items, err := c.gw.List(ctx)
	if err != nil {
		c.fail(ctx, err, "Failed to fetch "+c.spec.Plural)
		return fmt.Errorf("load %s: %w", c.spec.Plural, err)
	}
	if items == nil {
		items = []E{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// OpenForCreate opens the dialog on a fresh default draft.
func (c *Controller[E, D]) OpenForCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = domain.Creating()
	c.draft = c.spec.NewDraft()
}

// OpenForEdit opens the dialog bound to id, with the draft normalized from
// the entity. The dialog stays as it was when the entity cannot be loaded.
func (c *Controller[E, D]) OpenForEdit(ctx context.Context, id string) error {
	var entity E
	if c.spec.FetchDetail {
		e, err := c.gw.Get(ctx, id)
		if err != nil {
			c.fail(ctx, err, "Error loading "+c.lowerLabel()+" details")
			return fmt.Errorf("open %s %s: %w", c.spec.Name, id, err)
		}
		entity = e
	} else {
		e, ok := c.find(id)
		if !ok {
			c.notify(domain.SeverityError, c.spec.Label+" not found")
			return fmt.Errorf("open %s %s: %w", c.spec.Name, id, domain.ErrNotFound)
		}
		entity = e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = domain.Editing(id)
	c.draft = c.spec.DraftFrom(entity)
	return nil
}

// Close closes the dialog and resets the draft.
func (c *Controller[E, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = domain.Closed()
	c.draft = c.spec.NewDraft()
}

// Submit serializes draft and creates or updates depending on the dialog.
// On success the list is patched (replace by identity, or prepend) and the
// dialog closes, unless the operator moved to another dialog meanwhile; on
// failure the dialog stays open with draft kept.
func (c *Controller[E, D]) Submit(ctx context.Context, draft D) (E, error) {
	var zero E
	if err := c.begin(); err != nil {
		return zero, err
	}
	defer c.end()

	c.mu.Lock()
	dialog := c.dialog
	if !dialog.IsOpen() {
		c.mu.Unlock()
		return zero, domain.ErrDialogClosed
	}
	c.draft = draft
	c.mu.Unlock()

	id, editing := dialog.Target()
	action := "create"
	if editing {
		action = "update"
	}

	payload, err := c.spec.Serialize(draft, editing)
	if err != nil {
		c.fail(ctx, err, "Failed to save "+c.lowerLabel())
		c.record(action, id, err)
		return zero, fmt.Errorf("%s %s: %w", action, c.spec.Name, err)
	}

	var saved E
	if editing {
		saved, err = c.gw.Update(ctx, id, payload)
	} else {
		saved, err = c.gw.Create(ctx, payload)
	}
	if err != nil {
		c.fail(ctx, err, "Failed to save "+c.lowerLabel())
		c.record(action, id, err)
		return zero, fmt.Errorf("%s %s: %w", action, c.spec.Name, err)
	}

	c.mu.Lock()
	if editing {
		c.items = replaceByIdentity(c.items, id, saved, c.spec.Identity)
	} else {
		c.items = append([]E{saved}, c.items...)
	}
	if c.dialog == dialog {
		c.dialog = domain.Closed()
		c.draft = c.spec.NewDraft()
	}
	c.mu.Unlock()

	if editing {
		c.notify(domain.SeveritySuccess, c.spec.Label+" updated successfully")
	} else {
		id = c.spec.Identity(saved)
		c.notify(domain.SeveritySuccess, c.spec.Label+" created successfully")
	}
	c.record(action, id, nil)
	return saved, nil
}

// RequestRemove is the confirmation step: it marks id for removal and issues
// no request.
func (c *Controller[E, D]) RequestRemove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingRemoval = id
}

// CancelRemove drops a pending removal.
func (c *Controller[E, D]) CancelRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingRemoval = ""
}

// ConfirmRemove deletes id if it was requested first, then reloads the list.
func (c *Controller[E, D]) ConfirmRemove(ctx context.Context, id string) error {
	c.mu.Lock()
	pending := c.pendingRemoval
	c.mu.Unlock()
	if id == "" || pending != id {
		return domain.ErrRemovalNotConfirmed
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	err := c.gw.Delete(ctx, id)

	c.mu.Lock()
	c.pendingRemoval = ""
	c.mu.Unlock()

	if err != nil {
		c.fail(ctx, err, "Failed to delete "+c.lowerLabel())
		c.record("delete", id, err)
		return fmt.Errorf("delete %s %s: %w", c.spec.Name, id, err)
	}

	c.notify(domain.SeveritySuccess, c.spec.Label+" deleted successfully")
	c.record("delete", id, nil)

	if err := c.LoadList(ctx); err != nil {
		c.log.Warn().Err(err).Str("id", id).Msg("reload after delete failed")
	}
	return nil
}

// Reject reports a draft refused before it reached Submit, such as a form
// that failed validation, the same way Submit reports its own failures.
func (c *Controller[E, D]) Reject(ctx context.Context, err error) {
	c.fail(ctx, err, "Failed to save "+c.lowerLabel())
}

// DismissNotification clears the current notification.
func (c *Controller[E, D]) DismissNotification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = nil
}

// View returns a snapshot of the controller state.
func (c *Controller[E, D]) View() ports.ResourceView[E, D] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]E, len(c.items))
	copy(items, c.items)

	var notice *domain.Notification
	if c.notice != nil {
		n := *c.notice
		notice = &n
	}

	draft := c.draft
	if c.spec.Redact != nil {
		draft = c.spec.Redact(draft)
	}

	return ports.ResourceView[E, D]{
		Items:          items,
		Dialog:         c.dialog,
		Draft:          draft,
		Notification:   notice,
		PendingRemoval: c.pendingRemoval,
		Busy:           c.busy,
	}
}

// begin claims the single in-flight slot for a mutating request.
func (c *Controller[E, D]) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return domain.ErrRequestInFlight
	}
	c.busy = true
	return nil
}

func (c *Controller[E, D]) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller[E, D]) find(id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if c.spec.Identity(it) == id {
			return it, true
		}
	}
	var zero E
	return zero, false
}

// fail surfaces err as an error notification. An authorization failure also
// ends the session.
func (c *Controller[E, D]) fail(ctx context.Context, err error, fallback string) {
	if errors.Is(err, domain.ErrUnauthorized) && c.session != nil {
		c.session.Invalidate(ctx)
	}
	c.log.Warn().Err(err).Msg(fallback)
	c.notify(domain.SeverityError, domain.MessageOf(err, fallback))
}

func (c *Controller[E, D]) notify(sev domain.Severity, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = &domain.Notification{Message: msg, Severity: sev, At: c.now()}
}

func (c *Controller[E, D]) record(action, id string, err error) {
	outcome := domain.OutcomeSuccess
	msg := ""
	if err != nil {
		outcome = domain.OutcomeFailure
		msg = err.Error()
	}
	metrics.ResourceMutationsTotal.WithLabelValues(c.spec.Name, action, outcome).Inc()

	if c.journal == nil {
		return
	}
	actor := ""
	if c.session != nil {
		actor = c.session.Actor()
	}
	c.journal.Record(domain.JournalEntry{
		Resource:  c.spec.Name,
		Action:    action,
		EntityID:  id,
		Outcome:   outcome,
		Message:   msg,
		Actor:     actor,
		Timestamp: c.now().UTC(),
	})
}

func (c *Controller[E, D]) lowerLabel() string {
	return strings.ToLower(c.spec.Label)
}

// replaceByIdentity returns a copy of items with the entry matching id
// replaced, keeping positions.
func replaceByIdentity[E any](items []E, id string, saved E, identity func(E) string) []E {
	out := make([]E, len(items))
	for i, it := range items {
		if identity(it) == id {
			out[i] = saved
			continue
		}
		out[i] = it
	}
	return out
}
