// Package version exposes build and dependency version information.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

var version = "dev"

// yamlModulePath is the YAML library whose version is surfaced alongside
// our own, since syntax diagnostics come from it verbatim.
const yamlModulePath = "github.com/goccy/go-yaml"

// Version returns the current version string with the YAML library suffix.
func Version() string {
	yamlVersion := YAMLLibraryVersion()
	if yamlVersion != "" {
		return version + " (go-yaml " + yamlVersion + ")"
	}
	return version
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

// YAMLLibraryVersion returns the linked YAML library version from build info.
func YAMLLibraryVersion() string {
	v, _ := readBuildInfo()
	return v
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}

// readBuildInfo reads debug.ReadBuildInfo once and extracts both the YAML
// library version and the VCS revision.
func readBuildInfo() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	var yamlVersion, commit string
	if idx := slices.IndexFunc(info.Deps, func(dep *debug.Module) bool {
		return dep.Path == yamlModulePath
	}); idx >= 0 {
		yamlVersion = info.Deps[idx].Version
	}
	if idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); idx >= 0 {
		val := info.Settings[idx].Value
		if len(val) > 12 {
			commit = val[:12]
		} else {
			commit = val
		}
	}
	return yamlVersion, commit
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version     string   `json:"version"`
	YAMLVersion string   `json:"yamlVersion,omitempty"`
	Platform    Platform `json:"platform"`
	GoVersion   string   `json:"goVersion"`
	GitCommit   string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	yamlVersion, commit := readBuildInfo()
	return Info{
		Version:     RawVersion(),
		YAMLVersion: yamlVersion,
		Platform: Platform{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		GoVersion: GoVersion(),
		GitCommit: commit,
	}
}
