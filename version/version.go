// Package version carries build identification, set at link time.
package version

var (
	//nolint:gochecknoglobals // set through ldflags
	name = "haplo"
	//nolint:gochecknoglobals // set through ldflags
	version = "dev"
	//nolint:gochecknoglobals // set through ldflags
	commit = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the build version.
func Version() string {
	return version
}

// Commit returns the source revision the binary was built from.
func Commit() string {
	return commit
}
