package services

import (
	"context"
	"encoding/base64"
	"net/http"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Data        []byte
	ContentType string
}

// ImageProcessor turns an uploaded image into the URLs stored on a category.
// Resizing and re-encoding happen outside this service.
type ImageProcessor interface {
	Process(ctx context.Context, img Upload) (imageURL, thumbnailURL string, err error)
}

// DataURIProcessor embeds the image bytes as a data URI for both sizes.
type DataURIProcessor struct{}

func (DataURIProcessor) Process(_ context.Context, img Upload) (string, string, error) {
	mime := img.ContentType
	if mime == "" {
		mime = http.DetectContentType(img.Data)
	}
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	return uri, uri, nil
}
