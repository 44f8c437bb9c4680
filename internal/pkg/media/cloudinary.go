// internal/pkg/media/cloudinary.go
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/your-org/rental-backend/internal/config"
)

// Uploader pushes an image to the external media host and returns the URL it
// is served from. The application never stores file bytes itself.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// CloudinaryUploader implements Uploader against Cloudinary's unsigned
// upload API.
type CloudinaryUploader struct {
	config *config.Config
	client *http.Client
}

// NewCloudinaryUploader creates a new media uploader
func NewCloudinaryUploader(cfg *config.Config) *CloudinaryUploader {
	return &CloudinaryUploader{
		config: cfg,
		client: &http.Client{Timeout: cfg.External.Cloudinary.Timeout},
	}
}

// Enabled reports whether the media host is configured. Without it, image
// fields can still be set from URLs supplied by the client.
func (u *CloudinaryUploader) Enabled() bool {
	return u.config.External.Cloudinary.CloudName != "" && u.config.External.Cloudinary.UploadPreset != ""
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file to Cloudinary and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("media host not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("upload_preset", u.config.External.Cloudinary.UploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if folder := u.config.External.Cloudinary.Folder; folder != "" {
		if err := writer.WriteField("folder", folder); err != nil {
			return "", fmt.Errorf("failed to build upload request: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload request: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.config.External.Cloudinary.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach media host: %w", err)
	}
	defer resp.Body.Close()

	var result cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode media host response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media host returned status %d: %s", resp.StatusCode, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("media host returned no URL")
	}

	return result.SecureURL, nil
}
