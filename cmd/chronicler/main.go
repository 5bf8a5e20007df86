// Command chronicler compiles civilization histories into chronicles and
// serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/talgya/chronicler/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
