package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the menu-cms API and, via issued URLs, directly to the
// object store. It implements the API surface a Session needs.
type Client struct {
	baseURL    string
	publicBase string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the API at baseURL. publicBase is the
// object store's public URL prefix used to display stored images.
func NewClient(baseURL, publicBase string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// PublicBase returns the display URL prefix for storage keys.
func (c *Client) PublicBase() string { return c.publicBase }

// FileInfo names one file in a signed-URL request.
type FileInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// SignedURL pairs an upload URL with the storage key it is bound to.
type SignedURL struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// Login authenticates the admin account and stores the bearer token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	c.token = resp.AccessToken
	return nil
}

// SignedURLs requests one upload authorization per file. An empty batch is
// resolved locally without a network round trip.
func (c *Client) SignedURLs(ctx context.Context, files []FileInfo) ([]SignedURL, error) {
	if len(files) == 0 {
		return nil, nil
	}

	body := struct {
		Files []FileInfo `json:"files"`
	}{Files: files}

	var signed []SignedURL
	if err := c.doJSON(ctx, http.MethodPost, "/media/signed-urls", body, &signed); err != nil {
		return nil, fmt.Errorf("signed urls: %w", err)
	}
	return signed, nil
}

// Upload sends raw file bytes to an issued URL. The Content-Type header
// must match the type declared at issuance or the store rejects the write.
func (c *Client) Upload(ctx context.Context, uploadURL, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload: store returned %s", resp.Status)
	}
	return nil
}

// DeleteFiles requests best-effort deletion of the given keys. An empty
// batch is a local no-op.
func (c *Client) DeleteFiles(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	path := "/media/files?keys=" + url.QueryEscape(strings.Join(keys, ","))
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete files: %w", err)
	}
	return nil
}

// FetchImages reads the persisted ordered key list off the restaurant record.
func (c *Client) FetchImages(ctx context.Context, restaurantID string) ([]string, error) {
	var rec struct {
		Images []string `json:"images"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/restaurants/"+restaurantID, nil, &rec); err != nil {
		return nil, fmt.Errorf("fetch restaurant: %w", err)
	}
	return rec.Images, nil
}

// UpdateImages persists the final ordered key list in a single patch
// covering only the images field.
func (c *Client) UpdateImages(ctx context.Context, restaurantID string, keys []string) error {
	body := struct {
		Images []string `json:"images"`
	}{Images: keys}

	if err := c.doJSON(ctx, http.MethodPatch, "/restaurants/"+restaurantID, body, nil); err != nil {
		return fmt.Errorf("update images: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
