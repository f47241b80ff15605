package elfpp

// Version is the library version.
const Version = "0.1.1"

// VersionString returns the library's version number as a string.
func VersionString() string {
	return Version
}
