// Package cli constructs the repoctx command-line interface, wiring the Cobra
// root command, configuration loader, and structured logging primitives around
// the repository catalog lookups.
package cli
