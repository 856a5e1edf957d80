package version

import (
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/middlewarekit"

// Version is set at build time using -ldflags. When empty, the module version
// recorded in the build info is used.
var Version = ""

var (
	resolveOnce sync.Once
	resolved    string
)

// Get returns the module version, or "dev" when it cannot be determined.
func Get() string {
	if Version != "" {
		return Version
	}
	resolveOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		resolved = fromBuildInfo(info, ok)
	})
	return resolved
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return "dev"
	}
	if info.Main.Path == ModulePath {
		return normalize(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil {
			return normalize(dep.Replace.Version)
		}
		return normalize(dep.Version)
	}
	return "dev"
}

func normalize(v string) string {
	if v == "" || v == "(devel)" {
		return "dev"
	}
	return v
}

// UserAgent is the default User-Agent of outgoing requests.
func UserAgent() string {
	return "middlewarekit/" + Get()
}
