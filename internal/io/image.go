package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes a saved image.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// String returns e.g. "2560x1440 webp".
func (i ImageInfo) String() string {
	return fmt.Sprintf("%dx%d %s", i.Width, i.Height, i.Format)
}

// ImageService inspects downloaded images.
//
// Only the image header is decoded, so inspecting large wallpapers is cheap.
//
// Example usage:
//
//	svc := NewImageService()
//	info, err := svc.Describe(ctx, "/downloads/bob - My Art (HD).png")
//	fmt.Println(info) // 2560x1440 png
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Describe returns the format and dimensions of the image file at path.
//
// Supported formats are JPEG, PNG, GIF and WebP. An error is returned for
// anything else; it says nothing about whether the download succeeded.
func (s *ImageService) Describe(ctx context.Context, path string) (ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return ImageInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, err
	}

	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
