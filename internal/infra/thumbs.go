package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
)

// ImageStore copies coin photographs into the application data directory,
// resized to a manageable display size. The original file is left alone;
// the store only ever references the processed copy.
type ImageStore struct {
	basePath string
	maxSize  int
}

// NewImageStore creates an ImageStore writing under the per-user data
// directory. maxSize is the longest edge of a stored photograph in pixels.
func NewImageStore(maxSize int) (*ImageStore, error) {
	path, err := imagesPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve images path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &ImageStore{basePath: path, maxSize: maxSize}, nil
}

// Ingest reads a photograph from srcPath, scales it down to fit the
// configured size, and writes the copy under the data directory. Returns
// the stored file's path.
func (s *ImageStore) Ingest(srcPath string, coinID uint, side string) (string, error) {
	srcImg, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Fit keeps the aspect ratio; photos smaller than the limit pass
	// through at their original size.
	fitted := imaging.Fit(srcImg, s.maxSize, s.maxSize, imaging.Lanczos)

	fileName := fmt.Sprintf("coin_%d_%s_%d.png", coinID, side, time.Now().UnixNano())
	destPath := filepath.Join(s.basePath, fileName)

	if err := imaging.Save(fitted, destPath); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return destPath, nil
}

// BasePath returns the directory stored photographs live in.
func (s *ImageStore) BasePath() string {
	return s.basePath
}

func imagesPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "NumisGo", "images"), nil
}
