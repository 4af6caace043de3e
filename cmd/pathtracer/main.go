// Command pathtracer is the standalone renderer binary: it loads a scene
// manifest, opens a window, and runs the progressive path-tracing render
// loop described by internal/engine until the user closes the window.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
