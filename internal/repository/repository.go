package repository

import "shortlink/internal/domain"

// LinkRepository defines the storage contract for short links.
// The service layer only talks to this interface, so tests can swap in a mock.
type LinkRepository interface {
	// Shorten stores url under a freshly drawn key and returns the key.
	// Returns domain.ErrEmptyInput for an empty url without touching the store.
	Shorten(url string) (domain.Key, error)

	// Redirect returns the url stored under key, or domain.ErrNotFound
	Redirect(key domain.Key) (string, error)

	// Len returns the number of stored links
	Len() int
}
