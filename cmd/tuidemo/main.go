// Command tuidemo shows the widget set running under the scheduler: a
// framed box, a button, a draggable button, two sliders and an FPS
// counter.
//
// Usage:
//
//	tuidemo [--config path] [--fps n] [--debug-log path] [--no-mouse]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
