package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		{"no build info", nil, false, "dev"},
		{"main module", &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.4.0"}}, true, "v1.4.0"},
		{"main devel", &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "(devel)"}}, true, "dev"},
		{"dependency", &debug.BuildInfo{
			Main: debug.Module{Path: "example.com/orders"},
			Deps: []*debug.Module{{Path: "github.com/rs/zerolog", Version: "v1.34.0"}, {Path: ModulePath, Version: "v0.3.1"}},
		}, true, "v0.3.1"},
		{"replaced dependency", &debug.BuildInfo{
			Main: debug.Module{Path: "example.com/orders"},
			Deps: []*debug.Module{{Path: ModulePath, Version: "v0.3.1", Replace: &debug.Module{Path: "../middlewarekit"}}},
		}, true, "dev"},
		{"not a dependency", &debug.BuildInfo{Main: debug.Module{Path: "example.com/orders"}}, true, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(tt.info, tt.ok); got != tt.want {
				t.Errorf("fromBuildInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	prev := Version
	defer func() { Version = prev }()

	Version = "v9.9.9"
	if got := UserAgent(); got != "middlewarekit/v9.9.9" {
		t.Errorf("UserAgent() = %q", got)
	}

	Version = ""
	if got := UserAgent(); !strings.HasPrefix(got, "middlewarekit/") || got == "middlewarekit/" {
		t.Errorf("UserAgent() = %q", got)
	}
}
