package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// DraftDecoder binds and validates a submitted form into a draft.
type DraftDecoder[D any] func(c echo.Context) (D, error)

// ResourceHandler exposes one resource controller over HTTP. Every endpoint
// answers with the controller's view, so the screen can always be redrawn
// from the response alone.
type ResourceHandler[E any, D any] struct {
	service ports.ResourceService[E, D]
	decode  DraftDecoder[D]
}

func NewResourceHandler[E any, D any](service ports.ResourceService[E, D], decode DraftDecoder[D]) *ResourceHandler[E, D] {
	return &ResourceHandler[E, D]{service: service, decode: decode}
}

type viewResponse[E any, D any] struct {
	ports.ResourceView[E, D]
	Error string `json:"error,omitempty"`
}

// Register mounts the resource routes on g.
func (h *ResourceHandler[E, D]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/view", h.View)
	g.POST("/dialog/create", h.OpenCreate)
	g.POST("/:id/dialog/edit", h.OpenEdit)
	g.POST("/dialog/close", h.Close)
	g.POST("/submit", h.Submit)
	g.POST("/:id/remove", h.RequestRemove)
	g.POST("/:id/remove/confirm", h.ConfirmRemove)
	g.POST("/remove/cancel", h.CancelRemove)
	g.POST("/notification/dismiss", h.Dismiss)
}

// List loads the collection and returns the view. A failed load still
// returns the view with the previous items.
func (h *ResourceHandler[E, D]) List(c echo.Context) error {
	return h.reply(c, http.StatusOK, h.service.LoadList(c.Request().Context()))
}

// View returns the view without contacting the backend.
func (h *ResourceHandler[E, D]) View(c echo.Context) error {
	return h.reply(c, http.StatusOK, nil)
}

func (h *ResourceHandler[E, D]) OpenCreate(c echo.Context) error {
	h.service.OpenForCreate()
	return h.reply(c, http.StatusOK, nil)
}

func (h *ResourceHandler[E, D]) OpenEdit(c echo.Context) error {
	return h.reply(c, http.StatusOK, h.service.OpenForEdit(c.Request().Context(), c.Param("id")))
}

func (h *ResourceHandler[E, D]) Close(c echo.Context) error {
	h.service.Close()
	return h.reply(c, http.StatusOK, nil)
}

// Submit creates or updates, depending on how the dialog was opened.
func (h *ResourceHandler[E, D]) Submit(c echo.Context) error {
	draft, err := h.decode(c)
	if err != nil {
		h.service.Reject(c.Request().Context(), err)
		return h.reply(c, http.StatusOK, err)
	}
	_, err = h.service.Submit(c.Request().Context(), draft)
	return h.reply(c, http.StatusOK, err)
}

// RequestRemove asks for confirmation; nothing is deleted yet.
func (h *ResourceHandler[E, D]) RequestRemove(c echo.Context) error {
	h.service.RequestRemove(c.Param("id"))
	return h.reply(c, http.StatusOK, nil)
}

func (h *ResourceHandler[E, D]) ConfirmRemove(c echo.Context) error {
	return h.reply(c, http.StatusOK, h.service.ConfirmRemove(c.Request().Context(), c.Param("id")))
}

func (h *ResourceHandler[E, D]) CancelRemove(c echo.Context) error {
	h.service.CancelRemove()
	return h.reply(c, http.StatusOK, nil)
}

func (h *ResourceHandler[E, D]) Dismiss(c echo.Context) error {
	h.service.DismissNotification()
	return h.reply(c, http.StatusOK, nil)
}

// reply renders the view with the status err maps to. An authorization
// failure is handed to the error handler, which sends the operator to login.
func (h *ResourceHandler[E, D]) reply(c echo.Context, ok int, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	resp := viewResponse[E, D]{ResourceView: h.service.View()}
	status := ok
	if err != nil {
		status = StatusOf(err)
		resp.Error = MessageOf(err)
	}
	return c.JSON(status, resp)
}
