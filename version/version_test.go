package version

import (
	"testing"
)

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() {
		Version, GitCommit, BuildTime = v, c, b
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.2.0", GitCommit: "abc1234"}, "1.2.0-abc1234"},
		{"dirty", Info{Version: "1.2.0", GitCommit: "abc1234", IsDirty: true}, "1.2.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUsesLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.0.0"
	GitCommit = "0123456789abcdef"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Version != "2.0.0" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.GitCommit != "0123456" {
		t.Errorf("GitCommit = %q, want truncated to 7 chars", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
}

func TestGetFunctionVersion(t *testing.T) {
	t.Setenv(FunctionVersionEnv, "7")
	if got := Get().FunctionVersion; got != "7" {
		t.Errorf("FunctionVersion = %q, want 7", got)
	}
}
