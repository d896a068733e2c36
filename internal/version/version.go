package version

import (
	"fmt"
	"io"
	"runtime"
)

// Version indicates the version of the binary, such as a release number or semantic version.
// Set via -ldflags "-X github.com/OpenCHAMI/pductl/internal/version.Version=v1.0.0"
var Version = "dev"

// GitCommit stores the latest Git commit hash.
// Set via -ldflags "-X github.com/OpenCHAMI/pductl/internal/version.GitCommit=$(git rev-parse HEAD)"
var GitCommit string

// BuildTime stores the build timestamp in UTC.
// Set via -ldflags "-X github.com/OpenCHAMI/pductl/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var BuildTime string

// GitTag represents the most recent Git tag at build time, if any.
// Set via -ldflags "-X github.com/OpenCHAMI/pductl/internal/version.GitTag=$(git describe --tags --abbrev=0)"
var GitTag string

// GitState indicates whether the working directory was "clean" or "dirty".
// Set via -ldflags "-X github.com/OpenCHAMI/pductl/internal/version.GitState=$(if git diff-index --quiet HEAD --; then echo 'clean'; else echo 'dirty'; fi)"
var GitState string

// GoVersion captures the Go version used to build the binary.
// Defaults to runtime.Version() when not set at build time.
var GoVersion string

// PrintVersionInfo writes all versioning information to w.
func PrintVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "Version: %s\n", Version)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
	fmt.Fprintf(w, "Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "Git Tag: %s\n", GitTag)
	fmt.Fprintf(w, "Git State: %s\n", GitState)
	fmt.Fprintf(w, "Go Version: %s\n", goVersion())
}

func goVersion() string {
	if GoVersion != "" {
		return GoVersion
	}
	return runtime.Version()
}
