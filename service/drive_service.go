package service

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"fnp-marketplace/logger"
)

// DriveService hosts images in a Google Drive folder shared publicly for reading
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath, folderID string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Put uploads data into the folder and makes it readable by anyone with the link.
// The returned key is the Drive file id.
func (ds *DriveService) Put(ctx context.Context, name string, data []byte, contentType string) (string, string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: contentType,
		Parents:  []string{ds.folderID},
	}
	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file to drive: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := ds.client.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		logger.Log.Warnf("⚠️ DriveService.Put: file %s uploaded but could not be shared: %v", created.Id, err)
	}

	// Build public URL
	imageURL := fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id)
	logger.Log.Infof("✓ Image uploaded to drive: %s", created.Id)
	return created.Id, imageURL, nil
}

// Delete removes a file by its Drive id
func (ds *DriveService) Delete(ctx context.Context, key string) error {
	if err := ds.client.Files.Delete(key).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete drive file %s: %w", key, err)
	}
	return nil
}

func (ds *DriveService) Kind() string { return StoreDrive }

var _ ImageStore = (*DriveService)(nil)
