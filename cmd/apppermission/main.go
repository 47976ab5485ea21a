// Command apppermission runs the permission flows against a simulated device.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/apppermission/cmd/apppermission/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
