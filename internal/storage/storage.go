package storage

// Well-known storage keys, mirroring what the browser build keeps in
// localStorage.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Store is a string key-value store with synchronous writes. Implementations
// must make a completed Set durable before returning so a process restart
// never loses session or cart state.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)
	// Set stores the value under key, overwriting any previous value.
	Set(key, value string) error
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string) error
}
