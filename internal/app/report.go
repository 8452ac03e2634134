package app

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"wqcli/internal/quality"
	"wqcli/internal/services"
)

// PrintReports writes a human-readable digest of each report to w
func PrintReports(w io.Writer, reports []*services.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, rep := range reports {
		if rep == nil {
			continue
		}
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "== %s: %s (%s)\n", rep.Kind, rep.Input, rep.Duration.Round(time.Millisecond))
		switch rep.Kind {
		case services.KindWQI:
			printWQI(tw, rep.WQI)
		case services.KindXBarR:
			printControl(tw, rep.Control)
		case services.KindCapability:
			printCapability(tw, rep.Capability)
		}
		if len(rep.Files) > 0 {
			fmt.Fprintln(tw, "Files written:")
			for _, f := range rep.Files {
				fmt.Fprintf(tw, "  %s\n", f)
			}
		}
	}
	return tw.Flush()
}

func printWQI(w io.Writer, r *services.WQIReport) {
	if r == nil {
		return
	}
	s := r.Summary
	fmt.Fprintf(w, "Period:\t%s\n", s.Period)
	fmt.Fprintf(w, "Samples:\t%d\n", s.Count)
	fmt.Fprintf(w, "Mean WQI:\t%s\t%s\n", num(s.MeanIndex), s.MeanClass())
	for _, c := range quality.WQIClasses {
		fmt.Fprintf(w, "%s:\t%d\n", c, s.ClassCounts[c])
	}
	for _, p := range s.Parameters {
		fmt.Fprintf(w, "  %s contribution:\t%s%%\n", p, num(s.MeanContributionPercent[p]))
	}
}

func printControl(w io.Writer, analyses []quality.SubgroupAnalysis) {
	fmt.Fprintln(w, "Parameter\tX-bar-bar\tR-bar\tLCL (X-bar)\tUCL (X-bar)\tUCL (R)\tCp\tCpk")
	for _, a := range analyses {
		c := a.Chart
		cp, cpk := "-", "-"
		if a.Capability != nil {
			cp, cpk = a.Capability.Potential.String(), a.Capability.Performance.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Parameter, num(c.GrandMean), num(c.AverageRange),
			num(c.XBar.Lower), num(c.XBar.Upper), num(c.R.Upper), cp, cpk)
	}
}

func printCapability(w io.Writer, results []quality.CapabilityResult) {
	fmt.Fprintln(w, "Parameter\tMean\tStd Dev\tN\tPp\tPpk")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Parameter, num(r.Mean), num(r.Sigma), r.SampleSize,
			r.Potential.String(), r.Performance.String())
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
