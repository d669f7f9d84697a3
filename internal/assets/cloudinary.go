// Package assets talks to Cloudinary, the external file host. The rest
// of the system only ever stores the returned URL and public ID.
package assets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

type Asset struct {
	URL      string
	PublicID string
}

type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns nil when Cloudinary is not configured; callers must
// treat a nil client as "uploads disabled".
func NewClient(cloudName, apiKey, apiSecret, folder string) *Client {
	if strings.TrimSpace(cloudName) == "" || strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return nil
	}
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		folder:     folder,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// ResourceType classifies a file for Cloudinary: documents upload as
// "raw", everything else as "image".
func ResourceType(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx":
		return "raw"
	default:
		return "image"
	}
}

func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader, subfolder string) (Asset, error) {
	if c == nil {
		return Asset{}, errors.New("cloudinary not configured")
	}

	folder := c.folder
	if subfolder != "" {
		folder = c.folder + "/" + subfolder
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	})

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return Asset{}, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return Asset{}, err
	}
	for key, value := range map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"folder":    folder,
		"signature": signature,
	} {
		if err := writer.WriteField(key, value); err != nil {
			return Asset{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return Asset{}, err
	}

	url := fmt.Sprintf("%s/%s/%s/upload", c.baseURL, c.cloudName, ResourceType(fileName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body.String()))
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Asset{}, fmt.Errorf("cloudinary upload failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Asset{}, fmt.Errorf("cloudinary decode response: %w", err)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return Asset{}, errors.New("cloudinary response missing secure_url or public_id")
	}
	return Asset{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Destroy removes an uploaded asset. Deletion is best-effort across the
// whole system: callers log the returned error and carry on.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if c == nil {
		return errors.New("cloudinary not configured")
	}
	if strings.TrimSpace(publicID) == "" {
		return errors.New("missing public id")
	}

	// The stored public ID does not say whether the asset was uploaded
	// as an image or raw file, so try both.
	var lastErr error
	for _, resourceType := range []string{"image", "raw"} {
		ok, err := c.destroy(ctx, publicID, resourceType)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return nil
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("cloudinary destroy: asset %s not found", publicID)
}

func (c *Client) destroy(ctx context.Context, publicID, resourceType string) (bool, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	})

	form := fmt.Sprintf("public_id=%s&timestamp=%s&api_key=%s&signature=%s", publicID, timestamp, c.apiKey, signature)
	url := fmt.Sprintf("%s/%s/%s/destroy", c.baseURL, c.cloudName, resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("cloudinary destroy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("cloudinary destroy failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("cloudinary decode response: %w", err)
	}
	return out.Result == "ok", nil
}

// sign builds the SHA-1 request signature Cloudinary expects: the
// sorted key=value pairs joined by & with the API secret appended.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type destroyResponse struct {
	Result string `json:"result"`
}
