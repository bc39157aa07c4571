// Package main provides the statsdash CLI entry point.
package main

import (
	"os"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/cmd"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	BuiltBy = ""
)

func main() {
	if err := cmd.Execute(Version, Commit, Date, BuiltBy); err != nil {
		os.Exit(1)
	}
}
