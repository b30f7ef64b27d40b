package config

const (
	// DefaultDatabasePath is the default location of the catalog. It is kept
	// outside the media root so rescans never see it.
	DefaultDatabasePath = "./mangashelf.db"

	// DefaultLibraryRoot is the directory scanned when LIBRARY_ROOT is unset.
	DefaultLibraryRoot = "./manga"

	// StaticMountPath is the route prefix serving files of the active root.
	StaticMountPath = "/manga"
)
