package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestDefaultsPopulated(t *testing.T) {
	if Version == "" {
		t.Error("Version should never be empty after init")
	}
	if Commit == "" {
		t.Error("Commit should never be empty after init")
	}
}

func TestFull(t *testing.T) {
	if got := Full(); !strings.Contains(got, Version) || !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Full() = %q", got)
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	if info.Version != Version || info.Commit != Commit {
		t.Errorf("Info() = %+v", info)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Info().Platform = %q", info.Platform)
	}
	if !strings.HasPrefix(UserAgent(), "notebook/") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
