package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/repository"
)

// ImageService optimizes uploads and keeps the image store and the images table in step
type ImageService struct {
	store      ImageStore
	repository repository.ImageRepositoryInterface
}

// NewImageService creates a new ImageService
func NewImageService(store ImageStore, repo repository.ImageRepositoryInterface) *ImageService {
	return &ImageService{store: store, repository: repo}
}

// Upload stores two JPEG variants of data: the full image of at most 1200px and a
// thumbnail of at most 300px for list cards. Nothing is left behind when a step fails.
func (s *ImageService) Upload(ctx context.Context, data []byte) (*models.Image, error) {
	optimized, err := OptimizeImage(data, ImageSizeFull)
	if err != nil {
		return nil, err
	}
	thumb, err := OptimizeImage(data, ImageSizeThumb)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	key, url, err := s.store.Put(ctx, id+".jpg", optimized, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	thumbKey, thumbURL, err := s.store.Put(ctx, id+"_thumb.jpg", thumb, "image/jpeg")
	if err != nil {
		s.discard(ctx, key)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	img := &models.Image{
		ID:          id,
		Store:       s.store.Kind(),
		ObjectKey:   key,
		URL:         url,
		ThumbKey:    thumbKey,
		ThumbURL:    thumbURL,
		ContentType: "image/jpeg",
		SizeBytes:   int64(len(optimized)),
	}
	if err := s.repository.Create(ctx, img); err != nil {
		s.discard(ctx, key, thumbKey)
		return nil, fmt.Errorf("failed to record image: %w", err)
	}
	return img, nil
}

func (s *ImageService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Log.Warnf("⚠️ ImageService.Upload: orphaned object %s: %v", key, err)
		}
	}
}

// Remove deletes the stored object and its record
func (s *ImageService) Remove(ctx context.Context, id string) error {
	img, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img.Store != s.store.Kind() {
		return fmt.Errorf("image %s is held by the %s store, but %s is configured", id, img.Store, s.store.Kind())
	}
	if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
		return err
	}
	// images recorded before thumbnails existed have no thumb key
	if img.ThumbKey != "" {
		if err := s.store.Delete(ctx, img.ThumbKey); err != nil {
			return err
		}
	}
	return s.repository.Delete(ctx, id)
}
