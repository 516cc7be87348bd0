package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService downloads artwork images stored in Google Drive
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements ImageSource
var _ ImageSource = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string, opts ...option.ClientOption) (*DriveService, error) {
	opts = append([]option.ClientOption{option.WithCredentialsFile(credentialsPath)}, opts...)
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// NewDriveServiceWithClient wraps an existing Drive client
func NewDriveServiceWithClient(client *drive.Service) *DriveService {
	return &DriveService{client: client}
}

// DownloadImage downloads the content of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	log.Printf("📥 Downloaded Drive file %s (%d bytes)", fileID, len(data))
	return data, nil
}

// Fetch implements ImageSource; ref is the Drive file id
func (ds *DriveService) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return ds.DownloadImage(ctx, ref)
}
