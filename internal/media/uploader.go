package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// uploadTimeout bounds a single upload call.
const uploadTimeout = 30 * time.Second

// Uploader pushes a file to an external media host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// HTTPUploader implements Uploader against a generic media-host upload
// endpoint that accepts multipart form data and returns the hosted URL.
type HTTPUploader struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPUploader creates an Uploader for the given media host. Credentials
// are validated here so misconfiguration fails at startup.
func NewHTTPUploader(uploadURL, apiKey string) (*HTTPUploader, error) {
	if uploadURL == "" {
		return nil, fmt.Errorf("media: upload URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("media: API key is required")
	}
	return &HTTPUploader{
		uploadURL:  uploadURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: uploadTimeout},
	}, nil
}

// Upload posts the file as multipart form data and returns the hosted URL.
func (u *HTTPUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("media: create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("media: copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("media: close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("media: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+u.apiKey)

	httpResp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("media: http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("media: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("media: status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp uploadResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("media: unmarshal response: %w", err)
	}
	if apiResp.URL == "" {
		return "", fmt.Errorf("media: host returned no URL")
	}
	return apiResp.URL, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}
