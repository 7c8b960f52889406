package catalog

import "fmt"

// UserMessage is the headline shown when the catalog cannot be loaded.
const UserMessage = "Failed to load skip options"

// FetchError wraps any failure raised while loading the catalog from a Source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog fetch from %s failed", e.Source)
	}
	return fmt.Sprintf("catalog fetch from %s failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
