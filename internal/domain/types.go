package domain

// Archive describes a downloaded archive on disk.
type Archive struct {
	Name   string
	URL    string
	Path   string
	Size   int64
	Digest string // hex BLAKE2b-256
}
