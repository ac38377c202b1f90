package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photopdf/internal/album"
	"github.com/kozaktomas/photopdf/internal/book"
	"github.com/kozaktomas/photopdf/internal/config"
	"github.com/kozaktomas/photopdf/internal/layout"
	"github.com/kozaktomas/photopdf/internal/render"
)

// maxUploadSize limits a single multipart upload request.
const maxUploadSize = 100 << 20 // 100 MB

// AlbumHandler exposes the photo collection operations and PDF generation.
type AlbumHandler struct {
	config *config.Config
	album  *album.Album
}

// NewAlbumHandler creates a new album handler around one shared album.
func NewAlbumHandler(cfg *config.Config, alb *album.Album) *AlbumHandler {
	return &AlbumHandler{config: cfg, album: alb}
}

type photoResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rotation int    `json:"rotation"`
	Order    int    `json:"order"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// List returns the album contents in document order.
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.album.Snapshot()
	photos := make([]photoResponse, len(entries))
	for i, e := range entries {
		width, height, err := render.Dimensions(e.Data)
		if err != nil {
			// Unreadable data is reported with zero dimensions here and
			// rejected at generation time.
			width, height = 0, 0
		}
		photos[i] = photoResponse{
			ID:       e.ID.String(),
			Name:     e.Name,
			Rotation: e.Rotation,
			Order:    e.Order,
			Width:    width,
			Height:   height,
		}
	}
	respondJSON(w, http.StatusOK, photos)
}

// Upload appends multipart photo uploads to the album.
func (h *AlbumHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no photos in request")
		return
	}

	blobs := make([]album.Blob, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to open %s", filepath.Base(header.Filename)))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s", filepath.Base(header.Filename)))
			return
		}
		blobs = append(blobs, album.Blob{Name: filepath.Base(header.Filename), Data: data})
	}

	h.album.Append(blobs...)
	respondJSON(w, http.StatusCreated, map[string]int{"added": len(blobs), "total": h.album.Len()})
}

// photoIndex parses the {index} URL parameter.
func photoIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

// mutate runs an index-based album operation and maps its errors to HTTP.
func (h *AlbumHandler) mutate(w http.ResponseWriter, r *http.Request, op func(int) error) {
	index, err := photoIndex(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid photo index")
		return
	}
	if err := op(index); err != nil {
		if errors.Is(err, album.ErrIndexOutOfRange) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Rotate advances a photo's rotation by 90 degrees clockwise.
func (h *AlbumHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.album.Rotate)
}

// MoveUp swaps a photo with its predecessor.
func (h *AlbumHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.album.MoveUp)
}

// MoveDown swaps a photo with its successor.
func (h *AlbumHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.album.MoveDown)
}

// Remove deletes a photo from the album.
func (h *AlbumHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.album.Remove)
}

type generateRequest struct {
	Page string `json:"page"`
	Grid string `json:"grid"`
	DPI  int    `json:"dpi"`
}

// Generate renders the album into a PDF and responds with the document bytes.
// A second request while a run is in flight is rejected with 409.
func (h *AlbumHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSONBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	geom, err := h.config.Geometry(req.Page, req.Grid)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.album.BeginRun()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	defer h.album.EndRun()

	dpi := req.DPI
	if dpi <= 0 {
		dpi = h.config.Output.DPI
	}
	gen := book.NewGenerator(dpi, h.config.Output.JPEGQuality)

	var buf bytes.Buffer
	report, err := gen.Generate(r.Context(), entries, geom, &buf)
	if err != nil {
		switch {
		case errors.Is(err, layout.ErrNoEntries):
			respondError(w, http.StatusUnprocessableEntity, "album is empty, nothing to generate")
		case errors.Is(err, render.ErrDecode):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, layout.ErrInvalidGeometry):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	for _, warning := range report.Warnings {
		log.Printf("WARNING: %s", sanitizeForLog(warning))
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="album.pdf"`)
	w.Header().Set("X-Photopdf-Pages", strconv.Itoa(report.PageCount))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
