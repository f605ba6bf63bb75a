package constants

const (
	// NameDataLen is the fixed storage width of a Name identifier,
	// including space for the NUL terminator.
	NameDataLen = 64
	// MaxStoreValueSizeBytes is the hard cap on a single out-of-line value (64 MB)
	MaxStoreValueSizeBytes = 64 * 1024 * 1024
)
