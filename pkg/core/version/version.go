// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     version
// Description: Central version information
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Engine = "1.0.0"
	Server = "1.0.0"
	API    = "v1"
)

// Set via -ldflags "-X github.com/msto63/khwarizmi/pkg/core/version.GitCommit=..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info bundles the version information of a build
type Info struct {
	Platform  string `json:"platform"`
	Engine    string `json:"engine"`
	Server    string `json:"server"`
	API       string `json:"api"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Platform:  Platform,
		Engine:    Engine,
		Server:    Server,
		API:       API,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("khwarizmi %s (engine %s, api %s, commit %s, %s %s/%s)",
		i.Platform, i.Engine, i.API, i.GitCommit, i.GoVersion, i.OS, i.Arch)
}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "server":
		return Server
	default:
		return Platform
	}
}
