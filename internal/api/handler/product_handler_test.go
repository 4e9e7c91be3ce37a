package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartImages(t *testing.T, files map[string][]byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestDecodeProductDraft_Defaults(t *testing.T) {
	e := newEcho()
	c, _ := postJSON(e, "/products/submit",
		`{"name":" Aviator ","price":"199.99","stock":"12","frame_colors":["Black"," ","Red "],"is_new":true}`)

	d, err := DecodeProductDraft(c)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Name != "Aviator" || d.Currency != domain.DefaultCurrency || !d.IsAvailable || !d.IsNew {
		t.Fatalf("unexpected draft %+v", d)
	}
	if !reflect.DeepEqual(d.FrameColors, []string{"Black", "Red"}) {
		t.Fatalf("unexpected frame colors %v", d.FrameColors)
	}
	if d.Sizes == nil || len(d.Sizes) != 0 {
		t.Fatalf("sizes must be an empty list, got %#v", d.Sizes)
	}
}

func TestDecodeProductDraft_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing name":  `{"price":"10"}`,
		"price text":    `{"name":"A","price":"ten"}`,
		"stock text":    `{"name":"A","price":"10","stock":"a lot"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := postJSON(newEcho(), "/products/submit", body)
			if _, err := DecodeProductDraft(c); StatusOf(err) != http.StatusBadRequest {
				t.Fatalf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestProductHandler_StageAttachments(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{}
	body, ct := multipartImages(t, map[string][]byte{"front.png": pngHeader}, "")
	req := httptest.NewRequest(http.MethodPost, "/products/draft/attachments", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := NewProductHandler(stub).StageAttachments(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp attachmentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Staged) != 1 || resp.Staged[0].ContentType != "image/png" {
		t.Fatalf("unexpected staged %+v", resp.Staged)
	}
}

func TestProductHandler_StageAttachments_RejectsNonImages(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{}
	body, ct := multipartImages(t, map[string][]byte{"notes.txt": []byte("hello")}, "text/plain")
	req := httptest.NewRequest(http.MethodPost, "/products/draft/attachments", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := NewProductHandler(stub).StageAttachments(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || len(stub.staged) != 0 {
		t.Fatalf("expected 400 with nothing staged, got %d", rec.Code)
	}
}

func TestProductHandler_StageAttachments_DialogClosed(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{stageErr: domain.ErrDialogClosed}
	body, ct := multipartImages(t, map[string][]byte{"front.png": pngHeader}, "image/png")
	req := httptest.NewRequest(http.MethodPost, "/products/draft/attachments", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := NewProductHandler(stub).StageAttachments(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestProductHandler_ImageActions(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{}
	h := NewProductHandler(stub)

	for _, action := range []echo.HandlerFunc{h.DeleteImage, h.SetPrimaryImage} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "imageID")
		c.SetParamValues("7", "42")
		if err := action(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if !reflect.DeepEqual(stub.imageCalls, []int64{42, 42}) {
		t.Fatalf("unexpected calls %v", stub.imageCalls)
	}
}

func TestProductHandler_ImageActions_BadImageID(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "imageID")
	c.SetParamValues("7", "abc")

	if err := NewProductHandler(stub).DeleteImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || len(stub.imageCalls) != 0 {
		t.Fatalf("expected 400 without a call, got %d", rec.Code)
	}
}

func TestProductHandler_ImageActions_NotEditing(t *testing.T) {
	e := newEcho()
	stub := &stubProducts{imageErr: domain.ErrNotEditing}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "imageID")
	c.SetParamValues("7", "1")

	if err := NewProductHandler(stub).SetPrimaryImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
