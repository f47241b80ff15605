package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Fatal prints v on stderr and terminates the process. Only the command-line
// front-ends call this; the library itself returns errors.
func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", color.New(color.FgRed, color.Bold).Sprint("fatal"), v)
	os.Exit(1)
}

// MustNo terminates the process if err is non-nil.
func MustNo(err error) {
	if err != nil {
		Fatal(err)
	}
}

// Read fills a fixed-size value of type T from the front of data without
// reordering any bytes, so the caller gets a bit-exact image of the on-disk
// record. Byte-order conversion happens later, field by field.
func Read[T any](data []byte) (T, error) {
	var val T
	err := binary.Read(bytes.NewReader(data), binary.NativeEndian, &val)
	return val, err
}
