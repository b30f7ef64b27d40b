package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mangashelf/mangashelf/internal/archive"
)

// FindCover returns the cover image of a title directory: a file named
// cover.<image ext> when present, otherwise the first image in natural
// order. It returns "" when the directory holds no images.
func FindCover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() || !archive.IsImageName(e.Name()) {
			continue
		}
		images = append(images, e.Name())
	}
	if len(images) == 0 {
		return "", nil
	}

	archive.SortNatural(images)
	for _, name := range images {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.EqualFold(stem, "cover") {
			return filepath.Join(dir, name), nil
		}
	}
	return filepath.Join(dir, images[0]), nil
}
