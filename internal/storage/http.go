package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPStore uploads images to a Cloudinary-style unsigned upload endpoint.
type HTTPStore struct {
	uploadURL string
	preset    string
	client    *http.Client
}

var _ ImageStore = (*HTTPStore)(nil)

// NewHTTPStore constructs a store posting to the given unsigned upload URL
// with the given upload preset.
func NewHTTPStore(uploadURL, preset string) *HTTPStore {
	return &HTTPStore{
		uploadURL: uploadURL,
		preset:    preset,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts the image as multipart form data and returns the hosted URL.
// Each upload gets a fresh public id so re-uploads never clobber each other.
func (s *HTTPStore) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("storage: build form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("storage: copy image: %w", err)
	}
	_ = form.WriteField("upload_preset", s.preset)
	_ = form.WriteField("public_id", uuid.NewString())
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("storage: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("storage: build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage: upload status %d", resp.StatusCode)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("storage: decode response: %w", err)
	}
	if decoded.SecureURL == "" {
		return "", fmt.Errorf("storage: response missing secure_url")
	}
	return decoded.SecureURL, nil
}
