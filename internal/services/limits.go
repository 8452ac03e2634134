package services

import (
	"context"

	"wqcli/internal/config"
	"wqcli/internal/quality"
)

// LimitSource supplies the specification limits of a parameter.
// A zero SpecLimits means the parameter has none.
type LimitSource interface {
	Limits(ctx context.Context, parameter string) (quality.SpecLimits, error)
}

// StandardsLimits reads limits from the limits section of a standards document
type StandardsLimits struct {
	Doc *config.StandardsDocument
}

// Limits returns the documented limits of parameter, or none
func (s StandardsLimits) Limits(_ context.Context, parameter string) (quality.SpecLimits, error) {
	if s.Doc == nil {
		return quality.SpecLimits{}, nil
	}
	limits, _ := s.Doc.LimitsFor(parameter)
	return limits, nil
}

// NoLimits reports no limits for every parameter
type NoLimits struct{}

// Limits always returns zero limits
func (NoLimits) Limits(context.Context, string) (quality.SpecLimits, error) {
	return quality.SpecLimits{}, nil
}
