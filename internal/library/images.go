package library

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mangashelf/mangashelf/internal/archive"
)

// Image is one page prepared for inline transport.
type Image struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MediaType string `json:"media_type"`
	DataURI   string `json:"data_uri"`
}

// MediaType sniffs the payload and falls back to the extension when the
// content is not recognized as an image.
func MediaType(data []byte, extension string) string {
	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		mediaType, _, _ := strings.Cut(detected.String(), ";")
		return mediaType
	}
	switch extension {
	case "jpg", "jpeg", "jpe":
		return "image/jpeg"
	case "":
		return "application/octet-stream"
	default:
		return "image/" + extension
	}
}

// NewImage encodes a page as a base64 data URI.
func NewImage(page archive.Page) Image {
	mediaType := MediaType(page.Data, page.Extension)
	return Image{
		Name:      page.Name,
		Extension: page.Extension,
		MediaType: mediaType,
		DataURI:   "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(page.Data),
	}
}
