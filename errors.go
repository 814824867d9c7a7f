package hashindex

import "errors"

// Sentinel errors returned by the public operations. Use errors.Is to test
// for a specific failure class; wrapped errors carry additional context
// (e.g. the offending path) via fmt.Errorf("...: %w", ...).
var (
	// ErrKeySizeOutOfRange is returned by New/Open when key_size is not in [1, 127].
	ErrKeySizeOutOfRange = errors.New("key size out of range")
	// ErrValueSizeOutOfRange is returned by New/Open when value_size is not in [0, 127].
	ErrValueSizeOutOfRange = errors.New("value size out of range")
	// ErrKeyWrongSize is returned by Set/Delete, and is the value Get panics
	// with, when the supplied key does not have exactly key_size bytes.
	ErrKeyWrongSize = errors.New("key has wrong size")
	// ErrValueWrongSize is returned by Set when the supplied value does not
	// have exactly value_size bytes.
	ErrValueWrongSize = errors.New("value has wrong size")
	// ErrBadMagic is returned by Open when the file header does not start
	// with the expected magic bytes.
	ErrBadMagic = errors.New("unknown magic in header")
	// ErrTruncatedFile is returned by Open when the file is shorter or
	// longer than the header promises.
	ErrTruncatedFile = errors.New("incorrect file length")
	// ErrShortHeader is returned by Open when the file is too small to
	// contain a full header.
	ErrShortHeader = errors.New("short read of header")
	// ErrShortWrite is returned by WriteFile when fewer bytes were written
	// than requested.
	ErrShortWrite = errors.New("short write")
)
