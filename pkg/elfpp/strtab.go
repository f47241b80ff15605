package elfpp

import "bytes"

// StringSection reads null-terminated strings out of a string table
// section's payload. It shares the underlying section's bytes.
type StringSection struct {
	*Section
}

func newStringSection(s *Section) *StringSection {
	return &StringSection{Section: s}
}

// GetString returns the null-terminated string starting at offset, or the
// empty string when offset lies at or past the end of the payload. A string
// running to the end of the payload without a terminator is returned as-is.
func (s *StringSection) GetString(offset uint64) string {
	if offset >= uint64(len(s.data)) {
		return ""
	}
	tail := s.data[offset:]
	if end := bytes.IndexByte(tail, 0); end >= 0 {
		return string(tail[:end])
	}
	return string(tail)
}
