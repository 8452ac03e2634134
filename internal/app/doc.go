// Package app wires configuration, logging, telemetry and the analysis services
// together for the command-line tools.
//
// Each tool registers its flags with NewFlagSet and hands them to Main:
//
//	fs, flags := app.NewFlagSet("xbar-r", services.KindXBarR)
//	_ = fs.Parse(os.Args[1:])
//	os.Exit(app.Main(ctx, services.KindXBarR, flags, os.Stdin, os.Stdout, os.Stderr))
//
// Main loads the configuration, resolves the inputs, runs the batch and prints a
// summary of every report. Interrupts cancel the batch between files and parameters.
package app
