package badger

import "github.com/poiesic/subnav/storage"

// NewMemoryRepositories creates in-memory repositories for testing and for
// ephemeral deployments. Caller must Close the result when done.
func NewMemoryRepositories() (storage.Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newRepositories(backend), nil
}
