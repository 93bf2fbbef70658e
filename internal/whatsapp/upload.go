package whatsapp

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImageUploader pushes remote images through the Graph resumable upload API
// and returns the asset handle Meta expects in template header examples.
type ImageUploader struct {
	client *Client
	fetch  *resty.Client // no client-level auth; image fetches and the OAuth push
}

func NewImageUploader(client *Client) *ImageUploader {
	return &ImageUploader{
		client: client,
		fetch:  resty.New().SetTimeout(30 * time.Second),
	}
}

type uploadSessionResponse struct {
	ID string `json:"id"` // "upload:..."
}

type uploadResultResponse struct {
	Handle string `json:"h"`
}

// Upload fetches the image at imageURL and uploads it in a single chunk.
// Every failure is logged and returned; the caller treats the missing handle
// as the only failure signal and degrades accordingly.
func (u *ImageUploader) Upload(ctx context.Context, imageURL string) (string, error) {
	cfg := u.client.Config
	if cfg.WhatsAppToken == "" || cfg.MetaAppID == "" {
		log.Printf("Image upload skipped for %s: %v", imageURL, ErrNotConfigured)
		return "", ErrNotConfigured
	}

	// Fetch the source image
	imgResp, err := u.fetch.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		log.Printf("Image fetch failed for %s: %v", imageURL, err)
		return "", err
	}
	if imgResp.IsError() {
		err = fmt.Errorf("image fetch returned %s", imgResp.Status())
		log.Printf("Image fetch failed for %s: %v", imageURL, err)
		return "", err
	}

	data := imgResp.Body()
	contentType := imgResp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	// Open an upload session sized to the exact byte length
	var session uploadSessionResponse
	resp, err := u.client.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"file_length": strconv.Itoa(len(data)),
			"file_type":   contentType,
		}).
		SetResult(&session).
		SetError(&GraphError{}).
		Post(u.client.graphURL(cfg.MetaAppID + "/uploads"))
	if err != nil {
		log.Printf("Upload session open failed for %s: %v", imageURL, err)
		return "", err
	}
	if resp.IsError() || session.ID == "" {
		err = graphErrorFrom(resp)
		log.Printf("Upload session open failed for %s: %v", imageURL, err)
		return "", err
	}

	// Push the full payload at offset 0. The session endpoint wants the
	// OAuth header scheme instead of Bearer, so this goes through the plain
	// client where the Authorization header is set verbatim.
	var result uploadResultResponse
	resp, err = u.fetch.R().
		SetContext(ctx).
		SetHeader("Authorization", "OAuth "+cfg.WhatsAppToken).
		SetHeader("file_offset", "0").
		SetHeader("Content-Type", contentType).
		SetBody(data).
		SetResult(&result).
		SetError(&GraphError{}).
		Post(u.client.graphURL(session.ID))
	if err != nil {
		log.Printf("Upload push failed for %s: %v", imageURL, err)
		return "", err
	}
	if resp.IsError() || result.Handle == "" {
		err = graphErrorFrom(resp)
		log.Printf("Upload push failed for %s: %v", imageURL, err)
		return "", err
	}

	return result.Handle, nil
}
