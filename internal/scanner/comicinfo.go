package scanner

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mangashelf/mangashelf/internal/entities"
)

// ComicInfoFile is the sidecar metadata file looked up in each title directory.
const ComicInfoFile = "ComicInfo.xml"

// ErrMetadataParse means a sidecar file exists but could not be decoded.
var ErrMetadataParse = errors.New("metadata parse error")

// ComicInfo holds the ComicInfo.xml fields the catalog uses.
type ComicInfo struct {
	XMLName   xml.Name `xml:"ComicInfo"`
	Series    string   `xml:"Series"`
	Summary   string   `xml:"Summary"`
	Penciller string   `xml:"Penciller"`
	Writer    string   `xml:"Writer"`
	Genre     string   `xml:"Genre"`
}

// Metadata is what the scanner writes into a new Title row.
type Metadata struct {
	Name    string
	Summary string
	Artist  string
	Writer  string
	Genres  []string
}

// ParseComicInfo decodes a ComicInfo document.
func ParseComicInfo(r io.Reader) (*ComicInfo, error) {
	var info ComicInfo
	if err := xml.NewDecoder(r).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}
	return &info, nil
}

// SplitGenres splits a comma separated genre field, dropping blanks and
// repeated names.
func SplitGenres(field string) []string {
	var genres []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(field, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		genres = append(genres, name)
	}
	return genres
}

// FallbackMetadata is the metadata of a title without a usable sidecar file.
func FallbackMetadata(dirName string) Metadata {
	return Metadata{
		Name:    dirName,
		Summary: entities.UnknownPlaceholder,
		Artist:  entities.UnknownPlaceholder,
		Writer:  entities.UnknownPlaceholder,
		Genres:  []string{entities.UnknownPlaceholder},
	}
}

// ToMetadata maps the sidecar fields, filling gaps from the directory name
// and the Unknown placeholder.
func (c *ComicInfo) ToMetadata(dirName string) Metadata {
	meta := FallbackMetadata(dirName)
	if v := strings.TrimSpace(c.Series); v != "" {
		meta.Name = v
	}
	if v := strings.TrimSpace(c.Summary); v != "" {
		meta.Summary = v
	}
	if v := strings.TrimSpace(c.Penciller); v != "" {
		meta.Artist = v
	}
	if v := strings.TrimSpace(c.Writer); v != "" {
		meta.Writer = v
	}
	if genres := SplitGenres(c.Genre); len(genres) > 0 {
		meta.Genres = genres
	}
	return meta
}

// LoadMetadata derives the metadata for the title directory dir. A malformed
// sidecar yields the fallback metadata together with an ErrMetadataParse error.
func LoadMetadata(dir string) (Metadata, error) {
	dirName := filepath.Base(dir)

	sidecar, err := findSidecar(dir)
	if err != nil || sidecar == "" {
		return FallbackMetadata(dirName), err
	}

	f, err := os.Open(sidecar)
	if err != nil {
		return FallbackMetadata(dirName), fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}
	defer f.Close()

	info, err := ParseComicInfo(f)
	if err != nil {
		return FallbackMetadata(dirName), err
	}
	return info.ToMetadata(dirName), nil
}

// findSidecar matches the file name case-insensitively.
func findSidecar(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), ComicInfoFile) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}
