package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	apperrors "wqcli/internal/errors"
	"wqcli/internal/quality"
)

// Prompter asks for specification limits on an interactive terminal.
// Invalid answers are reported and asked again.
type Prompter struct {
	mu       sync.Mutex
	in       *bufio.Reader
	out      io.Writer
	fallback LimitSource
}

// NewPrompter reads answers from in and writes questions to out.
// Parameters that fallback already has limits for are not asked about; fallback may be nil.
func NewPrompter(in io.Reader, out io.Writer, fallback LimitSource) *Prompter {
	if fallback == nil {
		fallback = NoLimits{}
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fallback: fallback}
}

// Limits asks for the USL and LSL of parameter until a valid pair is entered.
// At least one limit is required. It fails when the input ends or ctx is done.
func (p *Prompter) Limits(ctx context.Context, parameter string) (quality.SpecLimits, error) {
	known, err := p.fallback.Limits(ctx, parameter)
	if err != nil || known.IsSet() {
		return known, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\nEnter specification limits for %s:\n", parameter)
	for {
		if err := ctx.Err(); err != nil {
			return quality.SpecLimits{}, err
		}

		usl, uslSet, err := p.ask(parameter, "Upper Specification Limit (USL, press Enter if none): ")
		if err != nil {
			return quality.SpecLimits{}, err
		}
		lsl, lslSet, err := p.ask(parameter, "Lower Specification Limit (LSL, press Enter if none): ")
		if err != nil {
			return quality.SpecLimits{}, err
		}
		if usl == nil || lsl == nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a numeric value or press Enter for none.")
			continue
		}

		limits := quality.SpecLimits{Upper: *usl, Lower: *lsl, HasUpper: uslSet, HasLower: lslSet}
		if !limits.IsSet() {
			fmt.Fprintln(p.out, "At least one specification limit must be provided.")
			continue
		}
		if err := limits.Validate(parameter); err != nil {
			fmt.Fprintf(p.out, "Invalid limits: %v\n", err)
			continue
		}
		return limits, nil
	}
}

// ask reads one answer. A nil value with no error means the answer was not a number.
func (p *Prompter) ask(parameter, question string) (*float64, bool, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, false, apperrors.NewInvalidSpecLimitsError(parameter, "no answer on input").
			WithContext("cause", err.Error())
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		zero := 0.0
		return &zero, false, nil
	}
	v, perr := strconv.ParseFloat(answer, 64)
	if perr != nil {
		return nil, false, nil
	}
	return &v, true, nil
}
