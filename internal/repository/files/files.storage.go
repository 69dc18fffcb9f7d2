// FilePath: internal/repository/files/files.storage.go
package files

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/itsatony/smartrooms/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

const (
	// ImageURLPrefix is the public path under which stored images are served
	ImageURLPrefix     = "/assets/images/"
	imageSubdir        = "assets/images"
	defaultPermissions = 0755
	filePermissions    = 0644
)

// ImageConfig holds configuration for the image store
type ImageConfig struct {
	PublicDir         string
	MaxFileSize       int64
	AllowedExtensions []string
	AllowedMimeTypes  []string
}

// ImageRepo stores area images on the local filesystem below PublicDir
type ImageRepo struct {
	config ImageConfig
	dir    string
}

// NewImageRepository creates the image directory if needed
func NewImageRepository(config ImageConfig) (*ImageRepo, error) {
	dir := filepath.Join(config.PublicDir, filepath.FromSlash(imageSubdir))
	if err := createDirectoryIfNotExists(dir); err != nil {
		return nil, err
	}
	return &ImageRepo{config: config, dir: dir}, nil
}

// PublicDir is the root directory static assets are served from
func (r *ImageRepo) PublicDir() string {
	return r.config.PublicDir
}

// Save validates and writes the image, returning its public path
func (r *ImageRepo) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError("image file is empty", nil)
	}
	if int64(len(data)) > r.config.MaxFileSize {
		return "", errors.NewValidationError(
			fmt.Sprintf("file size exceeds maximum allowed size of %d bytes", r.config.MaxFileSize),
			nil,
		)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !contains(r.config.AllowedExtensions, ext) {
		return "", errors.NewValidationError(fmt.Sprintf("file format %q not allowed", ext), nil)
	}
	mimeType := http.DetectContentType(data)
	if !contains(r.config.AllowedMimeTypes, mimeType) {
		return "", errors.NewValidationError(fmt.Sprintf("MIME type %s not allowed", mimeType), nil)
	}

	filename := uuid.NewString() + ext
	dst := filepath.Join(r.dir, filename)
	if err := os.WriteFile(dst, data, filePermissions); err != nil {
		return "", errors.NewStorageError("failed to write image", err)
	}

	nuts.L.Infof("[ImageRepo] Stored image: %s (%d bytes)", filename, len(data))
	return ImageURLPrefix + filename, nil
}

// IsStored reports whether publicPath points into this store rather than
// at an external URL.
func (r *ImageRepo) IsStored(publicPath string) bool {
	if !strings.HasPrefix(publicPath, ImageURLPrefix) {
		return false
	}
	name := strings.TrimPrefix(publicPath, ImageURLPrefix)
	return name != "" && name == path.Base(name) && name != ".." && name != "."
}

// Delete removes a stored image. External paths and files that are already gone are ignored.
func (r *ImageRepo) Delete(ctx context.Context, publicPath string) error {
	if !r.IsStored(publicPath) {
		return nil
	}
	name := strings.TrimPrefix(publicPath, ImageURLPrefix)
	err := os.Remove(filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			nuts.L.Warnf("[ImageRepo] Image already gone: %s", publicPath)
			return nil
		}
		return errors.NewStorageError("failed to delete image", err)
	}
	nuts.L.Infof("[ImageRepo] Deleted image: %s", publicPath)
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func createDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, defaultPermissions); err != nil {
			return errors.NewStorageError("failed to create directory", err)
		}
	}
	return nil
}
