package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/temirov/repoctx/cmd/cli"
)

const (
	exitErrorTemplateConstant     = "%s %v\n"
	exitErrorPrefixConstant       = "Error:"
	exitFailureCodeConstant       = 1
	noColorEnvironmentKeyConstant = "NO_COLOR"
)

// main executes the repoctx command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var reportedError cli.ReportedError
	if !errors.As(executionError, &reportedError) {
		colorEnabled := isatty.IsTerminal(os.Stderr.Fd()) && len(os.Getenv(noColorEnvironmentKeyConstant)) == 0
		writeExecutionError(os.Stderr, colorEnabled, executionError)
	}
	os.Exit(exitFailureCodeConstant)
}

// writeExecutionError prints the error with an "Error:" prefix, colored only for terminals.
func writeExecutionError(errorOutput io.Writer, colorEnabled bool, executionError error) {
	errorColor := color.New(color.FgRed, color.Bold)
	if colorEnabled {
		errorColor.EnableColor()
	} else {
		errorColor.DisableColor()
	}
	fmt.Fprintf(errorOutput, exitErrorTemplateConstant, errorColor.Sprint(exitErrorPrefixConstant), executionError)
}
