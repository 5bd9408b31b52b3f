// ABOUTME: Unsigned multipart upload of resume files to the asset host
// ABOUTME: Returns the hosted secure URL for the profile to reference

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/samber/oops"
)

// Uploader posts files to a Cloudinary-style unsigned upload endpoint.
type Uploader struct {
	endpoint   string
	cloudName  string
	preset     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Config names the asset host account.
type Config struct {
	BaseURL   string
	CloudName string
	Preset    string
}

// ErrNotConfigured is returned when no cloud name has been set.
var ErrNotConfigured = errors.New("asset host not configured")

// New builds an Uploader. Like the API client it has no timeout of its own.
func New(cfg Config, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/"),
		cloudName:  cfg.CloudName,
		preset:     cfg.Preset,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// ResumePublicID names an uploaded resume for userID at time at.
func ResumePublicID(userID string, at time.Time) string {
	return fmt.Sprintf("resume_%s_%d", userID, at.UnixMilli())
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends data as filename under publicID and returns secure_url.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte, publicID string) (string, error) {
	if u.cloudName == "" {
		return "", oops.Code("UPLOAD_NOT_CONFIGURED").Wrap(ErrNotConfigured)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", oops.Code("UPLOAD_ENCODE").Wrapf(err, "building form")
	}
	if _, err := part.Write(data); err != nil {
		return "", oops.Code("UPLOAD_ENCODE").Wrapf(err, "writing file part")
	}
	fields := [][2]string{{"upload_preset", u.preset}, {"public_id", publicID}}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return "", oops.Code("UPLOAD_ENCODE").Wrapf(err, "writing %s", f[0])
		}
	}
	if err := mw.Close(); err != nil {
		return "", oops.Code("UPLOAD_ENCODE").Wrapf(err, "closing form")
	}

	url := fmt.Sprintf("%s/%s/upload", u.endpoint, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", oops.Code("UPLOAD_REQUEST").Wrapf(err, "creating request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	log := u.logger.With("public_id", publicID, "bytes", len(data))
	resp, err := u.httpClient.Do(req)
	if err != nil {
		log.Warn("resume upload failed", "error", err)
		return "", oops.Code("UPLOAD_REQUEST").With("url", url).Wrapf(err, "uploading %s", filename)
	}
	defer resp.Body.Close()

	var out uploadResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("asset host returned status %d", resp.StatusCode)
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		log.Warn("resume upload rejected", "status", resp.StatusCode, "message", msg)
		return "", oops.Code("UPLOAD_REJECTED").With("status", resp.StatusCode).Errorf("%s", msg)
	}
	if decodeErr != nil || out.SecureURL == "" {
		return "", oops.Code("UPLOAD_RESPONSE").Errorf("asset host response had no secure_url")
	}
	log.Info("resume uploaded", "url", out.SecureURL)
	return out.SecureURL, nil
}
