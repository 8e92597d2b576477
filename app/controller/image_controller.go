package controller

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
)

const maxUploadBytes = 10 << 20

// ImageController handles image uploads for brands, products and farm produce
type ImageController struct {
	service ImageService
}

// NewImageController creates a new ImageController
func NewImageController(svc ImageService) *ImageController {
	return &ImageController{service: svc}
}

// Upload handles POST /admin/images with a multipart "file" field.
// The image is optimized before it is stored.
// Example response: {"id": "...", "url": "https://...", "store": "minio", ...}
func (c *ImageController) Upload(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 UploadImage: Received %s request to %s", r.Method, r.URL.Path)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	logger.Log.Infof("🖼️ UploadImage: %s (%d bytes)", header.Filename, len(data))

	img, err := c.service.Upload(r.Context(), data)
	if err != nil {
		response.FromError(w, "UploadImage", err)
		return
	}

	logger.Log.Infof("✅ UploadImage: Stored image %s at %s", img.ID, img.URL)
	response.JSON(w, http.StatusCreated, img)
}

// Delete handles DELETE /admin/images/{id}
func (c *ImageController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeleteImage: Received %s request for id=%s", r.Method, id)

	if err := c.service.Remove(r.Context(), id); err != nil {
		response.FromError(w, "DeleteImage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
