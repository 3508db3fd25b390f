// duhist plots ASCII histograms of disk usage and reports file age by
// owner.
package main

import (
	"fmt"
	"os"

	"github.com/jmeppley/duhist/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
