package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photopdf/internal/config"
)

// testConfig returns a config with defaults, independent of the environment.
func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Output = config.OutputConfig{DPI: 72, Page: "a4", Grid: "1x1", JPEGQuality: 80}
	return cfg
}

// assertStatusCode fails the test when the recorded status differs.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	if recorder.Code != want {
		t.Fatalf("expected status %d, got %d (body: %s)", want, recorder.Code, recorder.Body.String())
	}
}

// parseJSONResponse decodes the recorded JSON body into dst.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to parse JSON response: %v (body: %s)", err, recorder.Body.String())
	}
}

// testJPEG returns the bytes of a small solid-color JPEG.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{40, 120, 200, 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// multipartUpload builds a multipart request body with "photos" file parts.
func multipartUpload(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := writer.CreateFormFile("photos", name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

// withIndexParam injects a chi {index} URL parameter into the request context.
func withIndexParam(r *http.Request, index string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("index", index)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
