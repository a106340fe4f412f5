package base

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version_x byte = 0
	Version_y byte = 1
	Version_z byte = 0
)

var (
	build    = "Custom"
	codename = "CI sample app"
	intro    = "Hello from CI sample app."
)

func Version() string {
	return fmt.Sprintf("%v.%v.%v", Version_x, Version_y, Version_z)
}

// VersionStatement returns a list of strings representing the full version info.
func VersionStatement() []string {
	return []string{
		strings.Join([]string{"cisample ", Version(), " (", codename, ") ", build, " (", runtime.Version(), " ", runtime.GOOS, "/", runtime.GOARCH, ")"}, ""),
		intro,
	}
}
