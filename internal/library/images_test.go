package library

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangashelf/mangashelf/internal/archive"
)

func TestMediaType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ext  string
		want string
	}{
		{"sniffed png", pngBytes, "jpg", "image/png"},
		{"sniffed jpeg", jpegBytes, "jpeg", "image/jpeg"},
		{"unknown bytes with jpg extension", []byte("??"), "jpg", "image/jpeg"},
		{"unknown bytes with webp extension", []byte("??"), "webp", "image/webp"},
		{"no extension", []byte("??"), "", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaType(tt.data, tt.ext))
		})
	}
}

func TestNewImage(t *testing.T) {
	img := NewImage(archive.Page{Name: "01.png", Extension: "png", Data: pngBytes})

	assert.Equal(t, "01.png", img.Name)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), img.DataURI)
}
