package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	apperrors "wqcli/internal/errors"
	"wqcli/internal/quality"
	"wqcli/internal/validation"
)

// ParameterStandard is one entry of the standards document
type ParameterStandard struct {
	Name     string   `yaml:"name" validate:"required"`
	Standard float64  `yaml:"standard" validate:"gt=0"`
	Class    string   `yaml:"class" validate:"omitempty,oneof=proportional ideal range"`
	Ideal    *float64 `yaml:"ideal"`
	Low      *float64 `yaml:"low"`
	High     *float64 `yaml:"high"`
	Weight   float64  `yaml:"weight" validate:"gte=0"`
}

// LimitSpec holds the specification limits of one parameter. Either may be omitted.
type LimitSpec struct {
	USL *float64 `yaml:"usl"`
	LSL *float64 `yaml:"lsl"`
}

// SpecLimits converts the entry into engine limits
func (l LimitSpec) SpecLimits() quality.SpecLimits {
	var out quality.SpecLimits
	if l.USL != nil {
		out.Upper, out.HasUpper = *l.USL, true
	}
	if l.LSL != nil {
		out.Lower, out.HasLower = *l.LSL, true
	}
	return out
}

// StandardsDocument is the YAML file describing WQI standards and specification limits
type StandardsDocument struct {
	SubgroupSize int                  `yaml:"subgroup_size" validate:"omitempty,gte=2,lte=10"`
	Parameters   []ParameterStandard  `yaml:"parameters" validate:"dive"`
	Limits       map[string]LimitSpec `yaml:"limits"`
}

// LoadStandards reads and validates a standards document
func LoadStandards(path string) (*StandardsDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("read standards file", err).WithContext("file", path)
	}
	doc, err := ParseStandards(data)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("file", path)
		}
		return nil, err
	}
	return doc, nil
}

// ParseStandards decodes and validates a standards document from YAML
func ParseStandards(data []byte) (*StandardsDocument, error) {
	var doc StandardsDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, apperrors.NewParsingError("decode standards document", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate applies struct tag rules and the cross-field checks tags cannot express
func (d *StandardsDocument) Validate() error {
	if err := validation.NewStructValidator().Struct(d); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Parameters))
	for _, p := range d.Parameters {
		if seen[p.Name] {
			return apperrors.NewAppValidationError(fmt.Sprintf("parameter %q is listed twice", p.Name)).
				WithContext("parameter", p.Name)
		}
		seen[p.Name] = true

		switch quality.RatingClass(p.Class) {
		case quality.ClassIdeal:
			if p.Ideal == nil {
				return apperrors.NewAppValidationError(fmt.Sprintf("parameter %q: class ideal requires ideal", p.Name)).
					WithContext("parameter", p.Name)
			}
		case quality.ClassRange:
			if p.Low == nil || p.High == nil {
				return apperrors.NewAppValidationError(fmt.Sprintf("parameter %q: class range requires low and high", p.Name)).
					WithContext("parameter", p.Name)
			}
		}
		if err := p.toStandard().Validate(); err != nil {
			return err
		}
	}

	for _, name := range d.LimitParameters() {
		if err := d.Limits[name].SpecLimits().Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// Standards converts the document parameters into engine standards, in document order
func (d *StandardsDocument) Standards() []quality.Standard {
	out := make([]quality.Standard, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		out = append(out, p.toStandard())
	}
	return out
}

// LimitsFor returns the specification limits configured for a parameter
func (d *StandardsDocument) LimitsFor(parameter string) (quality.SpecLimits, bool) {
	l, ok := d.Limits[parameter]
	if !ok {
		return quality.SpecLimits{}, false
	}
	return l.SpecLimits(), true
}

// LimitParameters returns the parameters with configured limits, sorted
func (d *StandardsDocument) LimitParameters() []string {
	names := make([]string, 0, len(d.Limits))
	for name := range d.Limits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p ParameterStandard) toStandard() quality.Standard {
	s := quality.Standard{
		Parameter:   p.Name,
		Permissible: p.Standard,
		Class:       quality.RatingClass(p.Class),
		Weight:      p.Weight,
	}
	if p.Ideal != nil {
		s.Ideal = *p.Ideal
	}
	if p.Low != nil {
		s.Low = *p.Low
	}
	if p.High != nil {
		s.High = *p.High
	}
	return s
}
