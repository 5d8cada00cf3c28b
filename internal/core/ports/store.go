package ports

// LockfileStore defines the interface for reading binary lockfiles and
// writing their text renderings.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Read returns the full contents of the file at path.
	Read(path string) ([]byte, error)

	// Write replaces the file at path with data, creating parent directories.
	Write(path string, data []byte) error
}
