// Package imagehost hands uploaded image bytes to Cloudinary and returns the
// hosted URL. Nothing is written to local disk.
package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is Cloudinary's upload API root.
const DefaultBaseURL = "https://api.cloudinary.com/v1_1"

// ErrNotConfigured is returned when no cloud name or upload preset is set.
var ErrNotConfigured = errors.New("imagehost: cloudinary is not configured")

// Result is what the admin UI stores: the delivery URL and the asset id.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Client uploads through an unsigned upload preset.
type Client struct {
	BaseURL   string
	cloudName string
	preset    string
	folder    string
	http      *http.Client
}

// New creates a Client. folder may be empty.
func New(cloudName, uploadPreset, folder string) *Client {
	return &Client{
		BaseURL:   DefaultBaseURL,
		cloudName: strings.TrimSpace(cloudName),
		preset:    strings.TrimSpace(uploadPreset),
		folder:    strings.Trim(strings.TrimSpace(folder), "/"),
		http:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether uploads can be attempted.
func (c *Client) Enabled() bool {
	return c != nil && c.cloudName != "" && c.preset != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload streams r to Cloudinary. subfolder is appended to the configured
// folder (e.g. "gallery", "team").
func (c *Client) Upload(ctx context.Context, filename, subfolder string, r io.Reader) (Result, error) {
	if !c.Enabled() {
		return Result{}, ErrNotConfigured
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeForm(mw, c.preset, path.Join(c.folder, subfolder), filename, r)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	endpoint := fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(c.BaseURL, "/"), c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		pr.Close()
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("imagehost upload: %w", err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("imagehost decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if body.Error != nil {
			msg = body.Error.Message
		}
		return Result{}, fmt.Errorf("imagehost: upload rejected: %s", msg)
	}
	return Result{URL: body.SecureURL, PublicID: body.PublicID, Width: body.Width, Height: body.Height}, nil
}

func writeForm(mw *multipart.Writer, preset, folder, filename string, r io.Reader) error {
	fields := map[string]string{
		"upload_preset": preset,
		"public_id":     uuid.NewString(),
	}
	if folder != "" && folder != "." {
		fields["folder"] = folder
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	fw, err := mw.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, r)
	return err
}
