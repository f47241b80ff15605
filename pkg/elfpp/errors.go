package elfpp

import "github.com/pkg/errors"

// Structural error kinds. Any of these failing the constructor aborts the
// whole load; test with errors.Is. Per-entry accessors never return errors,
// they report absence through their second return value.
var (
	// ErrNotAccessible reports that the path does not exist or cannot be
	// opened for reading.
	ErrNotAccessible = errors.New("file not accessible")

	// ErrNotELF reports that the four-byte magic number did not match.
	ErrNotELF = errors.New("not an ELF file")

	// ErrInvalidClass reports a class byte that is neither ELFCLASS32 nor
	// ELFCLASS64.
	ErrInvalidClass = errors.New("invalid ELF file class")

	// ErrInvalidEncoding reports an encoding byte that is neither
	// ELFDATA2LSB nor ELFDATA2MSB.
	ErrInvalidEncoding = errors.New("invalid ELF encoding")

	// ErrTruncated reports a structural header that lies outside the file
	// image or a read that came up short.
	ErrTruncated = errors.New("truncated or malformed structure")
)
