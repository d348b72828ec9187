// Package buildinfo reports the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/promptkeeper/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/dmitrijs2005/promptkeeper/internal/buildinfo.Date=2025-06-01"
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

// readBuildInfo is a test seam for debug.ReadBuildInfo.
var readBuildInfo = debug.ReadBuildInfo

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// resolve fills values not set by -ldflags from the module build info.
func resolve() (version, date, commit string) {
	version, date, commit = Version, Date, Commit

	bi, ok := readBuildInfo()
	if !ok {
		return
	}
	if version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return
}

// PrintBuildData writes the version, date and commit to w.
func PrintBuildData(w io.Writer) {
	version, date, commit := resolve()
	fmt.Fprintf(w, "Build version: %s\n", orNA(version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(commit))
}
