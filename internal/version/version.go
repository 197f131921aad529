// Package version exposes build information for the certreg binaries.
//
// The variables are set at build time via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/academic-credentials-network/certreg/internal/version.Version=v0.2.0"
package version

// Set via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Get returns the build information for the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}
