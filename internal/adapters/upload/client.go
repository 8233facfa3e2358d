// Package upload stores event images with a Cloudinary-compatible upload API.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"devevents/internal/domain"
)

// DefaultBaseURL is the public Cloudinary API root.
const DefaultBaseURL = "https://api.cloudinary.com/v1_1"

// Config holds the upload destination.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Folder       string
}

type httpUploader struct {
	client *http.Client
	cfg    Config
}

// NewHTTPUploader returns an ImageUploader that posts images as unsigned
// multipart uploads.
func NewHTTPUploader(client *http.Client, cfg Config) domain.ImageUploader {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &httpUploader{client: client, cfg: cfg}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *httpUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image is empty")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	_ = mw.WriteField("upload_preset", u.cfg.UploadPreset)
	if u.cfg.Folder != "" {
		_ = mw.WriteField("folder", u.cfg.Folder)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(u.cfg.BaseURL, "/"), u.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode upload response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("upload api returned status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("upload api returned status: %d", resp.StatusCode)
	}
	if out.SecureURL == "" {
		return "", errors.New("upload api returned no url")
	}
	return out.SecureURL, nil
}
