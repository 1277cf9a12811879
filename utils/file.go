package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxAssetSize = 5 << 20

var ErrUnsupportedAsset = errors.New("unsupported asset")

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// AssetKind is the folder an uploaded image lands in.
type AssetKind string

const (
	AssetLogo       AssetKind = "logos"
	AssetQuestImage AssetKind = "quests"
)

func (k AssetKind) Valid() bool {
	return k == AssetLogo || k == AssetQuestImage
}

// AssetKey validates an uploaded image and returns a fresh object key such as "logos/<uuid>.png".
func AssetKey(kind AssetKind, fileHeader *multipart.FileHeader) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: kind %q", ErrUnsupportedAsset, kind)
	}
	if fileHeader.Size > MaxAssetSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrUnsupportedAsset, fileHeader.Size, MaxAssetSize)
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !imageExts[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedAsset, ext)
	}
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext), nil
}

// LocalUploader writes assets below Dir and serves them from URLPrefix. Used when R2 is not configured.
type LocalUploader struct {
	Dir       string
	URLPrefix string
}

func (u LocalUploader) Upload(_ context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	destPath := filepath.Join(u.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return strings.TrimRight(u.URLPrefix, "/") + "/" + key, nil
}
