// Command wqi computes the Water Quality Index of each dated sample in a table.
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
	fs, flags := app.NewFlagSet("wqi", services.KindWQI)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: wqi -in <table> [flags]\n\nWrites WQI results, a monthly summary and trend charts to the output directory.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(app.Main(context.Background(), services.KindWQI, flags, os.Stdin, os.Stdout, os.Stderr))
}
