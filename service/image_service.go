package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"art-customizer/models"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageService loads artwork images and serves optimised, disk-cached copies
type ImageService struct {
	cacheDir string
	drive    ImageSource
	web      ImageSource
	local    ImageSource
}

// NewImageService creates an ImageService. drive and local may be nil.
func NewImageService(cacheDir string, web, drive, local ImageSource) *ImageService {
	return &ImageService{
		cacheDir: cacheDir,
		drive:    drive,
		web:      web,
		local:    local,
	}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (s *ImageService) EnsureCacheDir() error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// CachePath returns the cache file path for a given artwork ID and size
func (s *ImageService) CachePath(artworkID int64, size string) string {
	filename := fmt.Sprintf("artwork_%d_%s.jpg", artworkID, size)
	return filepath.Join(s.cacheDir, filename)
}

// Fetch returns the raw bytes behind an artwork image reference
func (s *ImageService) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, DriveRefPrefix):
		if s.drive == nil {
			return nil, fmt.Errorf("image %q is stored in Drive but Drive is not configured", ref)
		}
		return s.drive.Fetch(ctx, strings.TrimPrefix(ref, DriveRefPrefix))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return s.web.Fetch(ctx, ref)
	case s.local != nil:
		if data, err := s.local.Fetch(ctx, ref); err == nil {
			return data, nil
		}
		return s.web.Fetch(ctx, ref)
	default:
		return s.web.Fetch(ctx, ref)
	}
}

// LoadImage fetches and decodes an artwork image for preview rendering
func (s *ImageService) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	data, err := s.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Optimized returns the artwork image resized for size ("thumb" or "medium"),
// reading from and filling the disk cache
func (s *ImageService) Optimized(ctx context.Context, artwork *models.Artwork, size string) ([]byte, error) {
	if size != "thumb" {
		size = "medium"
	}
	cachePath := s.CachePath(artwork.ID, size)

	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	raw, err := s.Fetch(ctx, artwork.Image)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := s.saveToCache(cachePath, optimized); err != nil {
		// Serve the image even when the cache is not writable
		log.Printf("⚠️  Failed to cache image for artwork %d: %v", artwork.ID, err)
	}
	return optimized, nil
}

func (s *ImageService) saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage converts an image to JPEG, shrinking it so its longest side
// fits the size preset. size is "thumb" or "medium".
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium":
	default:
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	var resized image.Image = img
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
