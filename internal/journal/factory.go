package journal

import "fmt"

const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// NewStore returns the store for kind. StoreNone yields a nil store and no error.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case StoreNone:
		return nil, nil
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreSQLite:
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported journal store: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
