package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/models"
	"fnp-marketplace/service"
)

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "cattle.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImageController_Upload(t *testing.T) {
	svc := new(mockImageService)
	c := NewImageController(svc)
	svc.On("Upload", mock.Anything, []byte("png-bytes")).
		Return(&models.Image{ID: "img-1", URL: "http://localhost:8080/images/img-1.jpg"}, nil)

	rec := serve(http.MethodPost, "/admin/images", c.Upload, multipartRequest(t, "file", []byte("png-bytes")))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "img-1", body["id"])
	assert.Equal(t, "http://localhost:8080/images/img-1.jpg", body["url"])
}

func TestImageController_UploadMissingFile(t *testing.T) {
	svc := new(mockImageService)
	c := NewImageController(svc)

	rec := serve(http.MethodPost, "/admin/images", c.Upload, multipartRequest(t, "other", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImageController_UploadNotAnImage(t *testing.T) {
	svc := new(mockImageService)
	c := NewImageController(svc)
	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, service.ErrUnsupportedImage)

	rec := serve(http.MethodPost, "/admin/images", c.Upload, multipartRequest(t, "file", []byte("text")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageController_Delete(t *testing.T) {
	svc := new(mockImageService)
	c := NewImageController(svc)
	svc.On("Remove", mock.Anything, "img-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/images/img-1", nil)
	rec := serve(http.MethodDelete, "/admin/images/{id}", c.Delete, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
