// Command xbar-r builds X-bar and R control charts with Cp/Cpk for each parameter of a subgrouped table.
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
	fs, flags := app.NewFlagSet("xbar-r", services.KindXBarR)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: xbar-r -in <table> [flags]\n\nThe first column holds subgroup keys. Specification limits come from -standards or -prompt.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(app.Main(context.Background(), services.KindXBarR, flags, os.Stdin, os.Stdout, os.Stderr))
}
