// Command notify emails the shortlisted applicants of one domain outside the
// HTTP server, reading them straight from MongoDB.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("notify: %v", err)
		os.Exit(1)
	}
}
