package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/lukenewport-prog/nptgpt/models"
)

// ImageEncoder turns an uploaded-image reference (a path like
// /uploads/1712345.png, or an http(s) URL) into an inline base64 image.
// No caching: a reference is read at most once per turn.
type ImageEncoder struct {
	baseDir string
	client  *resty.Client
}

// NewImageEncoder returns an encoder resolving relative references under
// baseDir (the directory served as the site root).
func NewImageEncoder(baseDir string) *ImageEncoder {
	return &ImageEncoder{
		baseDir: baseDir,
		client:  resty.New(),
	}
}

func (e *ImageEncoder) Encode(ref string) (models.InlineImage, error) {
	var data []byte
	var err error
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err = e.fetch(ref)
	} else {
		data, err = e.read(ref)
	}
	if err != nil {
		return models.InlineImage{}, err
	}

	return models.InlineImage{
		MimeType: MimeTypeFor(ref),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (e *ImageEncoder) read(ref string) ([]byte, error) {
	// Clean against the root first so a reference cannot escape baseDir.
	path := filepath.Join(e.baseDir, filepath.Clean("/"+ref))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read image %s: %v", models.ErrResourceUnavailable, ref, err)
	}
	return data, nil
}

func (e *ImageEncoder) fetch(ref string) ([]byte, error) {
	resp, err := e.client.R().Get(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch image %s: %v", models.ErrResourceUnavailable, ref, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: fetch image %s: status %d", models.ErrResourceUnavailable, ref, resp.StatusCode())
	}
	return resp.Body(), nil
}

// MimeTypeFor derives the mime type from the reference's extension.
// Anything that is not .png or .gif is treated as JPEG.
func MimeTypeFor(ref string) string {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
