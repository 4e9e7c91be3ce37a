package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// maxImageBytes caps a single staged image.
const maxImageBytes = 10 << 20

type productRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Price        string   `json:"price" validate:"required,numeric"`
	Currency     string   `json:"currency"`
	Stock        string   `json:"stock" validate:"omitempty,numeric"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	FrameColors  []string `json:"frame_colors"`
	Sizes        []string `json:"sizes"`
	LensOptions  []string `json:"lens_options"`
	IsBestseller bool     `json:"is_bestseller"`
	IsNew        bool     `json:"is_new"`
	IsAvailable  *bool    `json:"is_available"`
}

type attachmentsResponse struct {
	Staged []domain.Attachment `json:"staged"`
}

// ProductHandler is the products resource plus staged uploads and the
// persisted-image actions.
type ProductHandler struct {
	*ResourceHandler[domain.Product, domain.ProductDraft]
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{
		ResourceHandler: NewResourceHandler[domain.Product, domain.ProductDraft](products, DecodeProductDraft),
		products:        products,
	}
}

// Register mounts the shared resource routes and the product-only ones.
func (h *ProductHandler) Register(g *echo.Group) {
	h.ResourceHandler.Register(g)
	g.POST("/draft/attachments", h.StageAttachments)
	g.DELETE("/draft/attachments/:attachmentID", h.UnstageAttachment)
	g.POST("/:id/images/:imageID/delete", h.DeleteImage)
	g.POST("/:id/images/:imageID/primary", h.SetPrimaryImage)
}

// DecodeProductDraft binds the products form. Staged attachments and
// existing images are owned by the controller, not by the request.
func DecodeProductDraft(c echo.Context) (domain.ProductDraft, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return domain.ProductDraft{}, &domain.ValidationError{Message: "invalid request body"}
	}
	if err := c.Validate(&req); err != nil {
		return domain.ProductDraft{}, err
	}

	draft := domain.ProductDraft{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		Stock:        req.Stock,
		Category:     req.Category,
		Brand:        req.Brand,
		FrameColors:  cleanMulti(req.FrameColors),
		Sizes:        cleanMulti(req.Sizes),
		LensOptions:  cleanMulti(req.LensOptions),
		IsBestseller: req.IsBestseller,
		IsNew:        req.IsNew,
		IsAvailable:  true,
	}
	if draft.Currency == "" {
		draft.Currency = domain.DefaultCurrency
	}
	if req.IsAvailable != nil {
		draft.IsAvailable = *req.IsAvailable
	}
	return draft, nil
}

// cleanMulti trims the picked values and drops blanks.
func cleanMulti(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// StageAttachments handles POST /products/draft/attachments.
//
// @Summary      Stage images on the open product draft
// @Description  Files are kept on the draft and uploaded with the next submit.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        images  formData  file  true  "Image files"
// @Success      200     {object}  attachmentsResponse
// @Failure      400     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /products/draft/attachments [post]
func (h *ProductHandler) StageAttachments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "expected a multipart form"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "images is required"})
	}

	staged := make([]domain.Attachment, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxImageBytes {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("%s is larger than %d MB", fh.Filename, maxImageBytes>>20)})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable upload"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable upload"})
		}

		contentType := fh.Header.Get(echo.HeaderContentType)
		if contentType == "" || contentType == echo.MIMEOctetStream {
			contentType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(contentType, "image/") {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: fh.Filename + " is not an image"})
		}

		att, err := h.products.StageAttachment(fh.Filename, contentType, data)
		if err != nil {
			return c.JSON(StatusOf(err), errorResponse{Error: MessageOf(err)})
		}
		staged = append(staged, att)
	}
	return c.JSON(http.StatusOK, attachmentsResponse{Staged: staged})
}

// UnstageAttachment handles DELETE /products/draft/attachments/:attachmentID.
//
// @Summary      Drop a staged image
// @Tags         products
// @Produce      json
// @Param        attachmentID  path  string  true  "Staged attachment ID"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /products/draft/attachments/{attachmentID} [delete]
func (h *ProductHandler) UnstageAttachment(c echo.Context) error {
	return h.reply(c, http.StatusOK, h.products.UnstageAttachment(c.Param("attachmentID")))
}

// DeleteImage handles POST /products/:id/images/:imageID/delete.
//
// @Summary      Delete a persisted image of the product being edited
// @Tags         products
// @Produce      json
// @Param        id       path  string  true  "Product ID"
// @Param        imageID  path  int     true  "Image ID"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /products/{id}/images/{imageID}/delete [post]
func (h *ProductHandler) DeleteImage(c echo.Context) error {
	imageID, err := parseImageID(c)
	if err != nil {
		return h.reply(c, http.StatusOK, err)
	}
	return h.reply(c, http.StatusOK, h.products.DeleteImage(c.Request().Context(), c.Param("id"), imageID))
}

// SetPrimaryImage handles POST /products/:id/images/:imageID/primary.
//
// @Summary      Make a persisted image the primary one
// @Tags         products
// @Produce      json
// @Param        id       path  string  true  "Product ID"
// @Param        imageID  path  int     true  "Image ID"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /products/{id}/images/{imageID}/primary [post]
func (h *ProductHandler) SetPrimaryImage(c echo.Context) error {
	imageID, err := parseImageID(c)
	if err != nil {
		return h.reply(c, http.StatusOK, err)
	}
	return h.reply(c, http.StatusOK, h.products.SetPrimaryImage(c.Request().Context(), c.Param("id"), imageID))
}

func parseImageID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("imageID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "image_id", Message: "image id must be a positive integer"}
	}
	return id, nil
}
