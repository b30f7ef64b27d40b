// Package archive reads comic archives (ZIP/CBZ) page by page.
//
// Archives are opened fresh on every call and never cached: chapters are
// large and read once per reading session.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"
)

// DefaultMaxEntryBytes caps the decompressed size of a single page.
const DefaultMaxEntryBytes int64 = 256 << 20

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jpe":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".avif": true,
}

var archiveExtensions = map[string]bool{
	".zip": true,
	".cbz": true,
}

// IsImageName reports whether name carries an allow-listed image extension.
func IsImageName(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// IsArchiveName reports whether name looks like a chapter archive.
func IsArchiveName(name string) bool {
	return archiveExtensions[strings.ToLower(path.Ext(name))]
}

// Page is one decoded image entry.
type Page struct {
	Name      string
	Extension string // lowercase, without the leading dot
	Data      []byte
}

// Reader extracts pages from archives on disk.
type Reader struct {
	maxEntryBytes int64
}

// NewReader creates a Reader. A non-positive maxEntryBytes selects DefaultMaxEntryBytes.
func NewReader(maxEntryBytes int64) *Reader {
	if maxEntryBytes <= 0 {
		maxEntryBytes = DefaultMaxEntryBytes
	}
	return &Reader{maxEntryBytes: maxEntryBytes}
}

// CountImagePages counts image entries without decompressing them.
func (r *Reader) CountImagePages(archivePath string) (int, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrArchiveUnreadable, archivePath, err)
	}
	defer zr.Close()

	return len(imageEntries(zr.File)), nil
}

// ExtractImages returns the image entries of an archive in natural name order.
//
// Entries that fail to decompress are skipped; the returned error then joins
// one *EntryError per failure and the pages slice still holds every entry
// that was read. An archive without images yields an empty slice and
// ErrNoImagesFound.
func (r *Reader) ExtractImages(archivePath string) ([]Page, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return []Page{}, fmt.Errorf("%w: %s: %v", ErrArchiveUnreadable, archivePath, err)
	}
	defer zr.Close()

	entries := imageEntries(zr.File)
	if len(entries) == 0 {
		return []Page{}, fmt.Errorf("%w: %s", ErrNoImagesFound, archivePath)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return NaturalLess(entries[i].Name, entries[j].Name)
	})

	pages := make([]Page, 0, len(entries))
	var failures []error
	for _, entry := range entries {
		data, err := r.readEntry(entry)
		if err != nil {
			log.Printf("[ARCHIVE] Skipping %s in %s: %v", entry.Name, archivePath, err)
			failures = append(failures, &EntryError{Name: entry.Name, Err: err})
			continue
		}
		pages = append(pages, Page{
			Name:      entry.Name,
			Extension: strings.TrimPrefix(strings.ToLower(path.Ext(entry.Name)), "."),
			Data:      data,
		})
	}

	return pages, errors.Join(failures...)
}

func (r *Reader) readEntry(entry *zip.File) ([]byte, error) {
	if entry.UncompressedSize64 > uint64(r.maxEntryBytes) {
		return nil, fmt.Errorf("entry declares %d bytes, limit is %d", entry.UncompressedSize64, r.maxEntryBytes)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// Read one byte past the limit so a lying header is still caught.
	data, err := io.ReadAll(io.LimitReader(rc, r.maxEntryBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxEntryBytes {
		return nil, fmt.Errorf("entry exceeds %d bytes", r.maxEntryBytes)
	}
	return data, nil
}

func imageEntries(files []*zip.File) []*zip.File {
	var entries []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if IsImageName(f.Name) {
			entries = append(entries, f)
		}
	}
	return entries
}
