// Command clockface shows an analog or digital clock as a PNG, in the
// terminal, or in a window.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/clockface/cmd/clockface/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
