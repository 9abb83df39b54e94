package version

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// FunctionVersionEnv is set by the Lambda runtime to the published version
// ("$LATEST" for unpublished code).
const FunctionVersionEnv = "AWS_LAMBDA_FUNCTION_VERSION"

// Info describes the running build.
type Info struct {
	Version         string `json:"version"`
	GitCommit       string `json:"git_commit,omitempty"`
	BuildTime       string `json:"build_time,omitempty"`
	GoVersion       string `json:"go_version,omitempty"`
	FunctionVersion string `json:"function_version,omitempty"`
	IsDirty         bool   `json:"is_dirty,omitempty"`
}

// Get returns the build information, filling gaps from the embedded VCS
// settings.
func Get() Info {
	info := Info{
		Version:         Version,
		GitCommit:       GitCommit,
		BuildTime:       BuildTime,
		FunctionVersion: os.Getenv(FunctionVersionEnv),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// String renders the version as "<version>[-<commit>][-dirty]".
func (i Info) String() string {
	s := i.Version
	if i.GitCommit != "" {
		s = fmt.Sprintf("%s-%s", s, i.GitCommit)
	}
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// Short returns Get().String().
func Short() string {
	return Get().String()
}
