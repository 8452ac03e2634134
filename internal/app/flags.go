package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"wqcli/internal/services"
)

// stringList is a flag that may be repeated or given a comma-separated list
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// optionalBool remembers whether the flag was given at all
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(v string) error {
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	b.set, b.value = true, parsed
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// ptr returns nil when the flag was not given
func (b *optionalBool) ptr() *bool {
	if !b.set {
		return nil
	}
	v := b.value
	return &v
}

// Flags holds the command-line options shared by the tools
type Flags struct {
	Inputs      stringList
	Parameters  stringList
	Standards   string
	ConfigFile  string
	OutputDir   string
	Format      string
	Prefix      string
	LogLevel    string
	Parallelism int
	Prompt      bool
	Charts      optionalBool
}

// NewFlagSet registers the flags of the tool for kind
func NewFlagSet(name string, kind services.Kind) (*flag.FlagSet, *Flags) {
	f := &Flags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.Var(&f.Inputs, "in", "input table (.csv or .xlsx), directory or glob; repeatable")
	fs.Var(&f.Parameters, "params", "comma-separated parameters to analyze (default: all)")
	fs.StringVar(&f.Standards, "standards", "", "standards and limits YAML file")
	fs.StringVar(&f.ConfigFile, "config", "", "configuration file (default: wq.yaml or configs/wq.yaml)")
	fs.StringVar(&f.OutputDir, "out", "", "output directory")
	fs.StringVar(&f.Format, "format", "", "output format: csv or xlsx")
	fs.StringVar(&f.Prefix, "prefix", "", "output file name prefix")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.IntVar(&f.Parallelism, "parallel", 0, "maximum number of inputs analyzed at once")
	if kind != services.KindCapability {
		fs.Var(&f.Charts, "charts", "render PNG charts")
	}
	if kind != services.KindWQI {
		fs.BoolVar(&f.Prompt, "prompt", false, "ask for specification limits missing from the standards file")
	}
	return fs, f
}

// Options converts the flags into configuration overrides
func (f *Flags) Options() Options {
	return Options{
		ConfigFile:  f.ConfigFile,
		OutputDir:   f.OutputDir,
		Format:      f.Format,
		Prefix:      f.Prefix,
		LogLevel:    f.LogLevel,
		Parallelism: f.Parallelism,
		Charts:      f.Charts.ptr(),
	}
}
