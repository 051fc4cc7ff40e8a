// Command eyeosee generates container wiring files for the di runtime.
package main

import (
	"os"

	"github.com/sghaida/eyeosee/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
