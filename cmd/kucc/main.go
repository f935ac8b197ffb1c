// Command kucc is the KuCode compiler frontend.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Version of kucc.
const Version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "kucc: %v\n", err)
		}
		os.Exit(1)
	}
}
