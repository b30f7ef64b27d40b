package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrArchiveUnreadable means the container itself could not be opened.
	ErrArchiveUnreadable = errors.New("archive unreadable")
	// ErrEntryUnreadable means a single entry failed to decompress.
	ErrEntryUnreadable = errors.New("archive entry unreadable")
	// ErrNoImagesFound means the archive opened but holds no image entries.
	ErrNoImagesFound = errors.New("no images found in archive")
)

// EntryError identifies the entry that could not be read.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("read entry %q: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() []error {
	return []error{ErrEntryUnreadable, e.Err}
}

// FailedEntries lists the entry names carried by err, in the order they failed.
func FailedEntries(err error) []string {
	var names []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if entryErr, ok := e.(*EntryError); ok {
			names = append(names, entryErr.Name)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
		}
	}
	walk(err)
	return names
}
