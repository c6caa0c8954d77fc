package memory

// StorageError wraps a backend failure so callers can distinguish storage
// faults from validation problems. The Manager treats any StorageError as
// non-fatal: it logs and returns empty results.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Err == nil {
		return "storage: " + e.Op + " failed"
	}
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a record doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "record not found"
	}
	return "record not found: " + e.ID
}
