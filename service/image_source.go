package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DriveRefPrefix marks artwork image references stored in Google Drive,
// e.g. "drive:1AbCdEf"
const DriveRefPrefix = "drive:"

// ImageSource fetches raw image bytes for an artwork image reference
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// HTTPImageSource fetches absolute URLs, and paths relative to baseURL
type HTTPImageSource struct {
	client  *http.Client
	baseURL string
}

// NewHTTPImageSource creates an HTTPImageSource
func NewHTTPImageSource(baseURL string, client *http.Client) *HTTPImageSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPImageSource{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Fetch downloads the image at ref
func (s *HTTPImageSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	fullURL := ref
	if strings.HasPrefix(ref, "/") {
		fullURL = s.baseURL + ref
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// FileImageSource reads images from a local directory. Used when artwork
// images are shipped with the deployment under static/.
type FileImageSource struct {
	root string
}

// NewFileImageSource creates a FileImageSource rooted at dir
func NewFileImageSource(dir string) *FileImageSource {
	return &FileImageSource{root: dir}
}

// Fetch reads ref relative to the root directory
func (s *FileImageSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	clean := filepath.Clean("/" + ref)
	data, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}
