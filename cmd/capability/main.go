// Command capability computes Pp/Ppk process performance for every column of a table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"wqcli/internal/app"
	"wqcli/internal/services"
)

func main() {
	fs, flags := app.NewFlagSet("capability", services.KindCapability)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: capability -in <table> [flags]\n\nSpecification limits come from -standards or -prompt.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(app.Main(context.Background(), services.KindCapability, flags, os.Stdin, os.Stdout, os.Stderr))
}
