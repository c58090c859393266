// Command kinematics solves one-dimensional constant-acceleration problems
// from the command line or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/n-tennyson/physics-simulator/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
