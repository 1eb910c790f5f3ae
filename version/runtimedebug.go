package version

import (
	"fmt"
	"runtime/debug"
)

// ModulePath is the import path the sdk is released under.
const ModulePath = "github.com/anoideaopen/market"

const develVersion = "(devel)"

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("fetching build info failed")
	}

	if bi == nil {
		return nil, fmt.Errorf("build information is empty")
	}

	return bi, nil
}

// SDK returns the version of the sdk module linked into the running binary,
// "(devel)" when it is the main module or the information is unavailable.
func SDK() string {
	bi, err := BuildInfo()
	if err != nil {
		return develVersion
	}

	return moduleVersion(bi, ModulePath)
}

func moduleVersion(bi *debug.BuildInfo, path string) string {
	if bi.Main.Path == path && bi.Main.Version != "" {
		return bi.Main.Version
	}

	for _, dep := range bi.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}

	return develVersion
}
