// Package main is the entry point for the carectl CLI
package main

import (
	"errors"
	"os"

	"github.com/carehub-project/carectl/cmd"
	"github.com/carehub-project/carectl/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		printer := output.NewPrinter(os.Getenv("NO_COLOR") == "")

		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			printer.FormatError(cliErr)
			os.Exit(cliErr.ExitCode)
		}

		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(output.ExitGeneral)
	}
}
