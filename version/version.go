package version

// Version is the current released version.
var Version = "0.1.0"

func GetCurrentVersion() string {
	return Version
}
