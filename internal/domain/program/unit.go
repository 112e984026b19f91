package program

import "strings"

// UnitKind discriminates the closed set of measurement units an
// exercise can be logged in.
type UnitKind string

const (
	UnitReps   UnitKind = "reps"
	UnitMiles  UnitKind = "miles"
	UnitYards  UnitKind = "yards"
	UnitLaps   UnitKind = "laps"
	UnitSteps  UnitKind = "steps"
	UnitSec    UnitKind = "sec"
	UnitMin    UnitKind = "min"
	UnitHrs    UnitKind = "hrs"
	UnitCustom UnitKind = "custom"
)

// FixedUnitKinds contains every non-custom unit kind.
var FixedUnitKinds = []UnitKind{
	UnitReps, UnitMiles, UnitYards, UnitLaps, UnitSteps, UnitSec, UnitMin, UnitHrs,
}

// fixedDecimals marks the fixed unit kinds whose quantities may be
// fractional. Counts (reps, yards, laps, steps, sec) stay integer.
var fixedDecimals = map[UnitKind]bool{
	UnitMiles: true,
	UnitMin:   true,
	UnitHrs:   true,
}

// Unit is a tagged variant: either one of the fixed kinds, or a custom
// unit carrying its own abbreviation and decimal policy.
type Unit struct {
	Kind           UnitKind `json:"kind"`
	CustomAbbrev   string   `json:"customAbbrev,omitempty"`
	CustomDecimals bool     `json:"customDecimals,omitempty"`
}

// FixedUnit builds a Unit for a non-custom kind.
func FixedUnit(kind UnitKind) Unit {
	return Unit{Kind: kind}
}

// CustomUnit builds a custom Unit with the given abbreviation.
func CustomUnit(abbrev string, allowDecimals bool) Unit {
	return Unit{Kind: UnitCustom, CustomAbbrev: strings.TrimSpace(abbrev), CustomDecimals: allowDecimals}
}

// ParseUnitKind maps a user-supplied string to a UnitKind.
func ParseUnitKind(s string) (UnitKind, bool) {
	k := UnitKind(strings.ToLower(strings.TrimSpace(s)))
	if k == UnitCustom {
		return UnitCustom, true
	}
	for _, f := range FixedUnitKinds {
		if k == f {
			return f, true
		}
	}
	return "", false
}

// Validate checks the unit's invariants.
// POST: returns nil if valid, a ValidationError otherwise
func (u Unit) Validate() error {
	if u.Kind == UnitCustom {
		abbrev := strings.TrimSpace(u.CustomAbbrev)
		if abbrev == "" {
			return validationf("custom unit abbreviation cannot be empty")
		}
		if len(abbrev) > MaxAbbrevLength {
			return validationf("custom unit abbreviation cannot exceed %d characters", MaxAbbrevLength)
		}
		return nil
	}
	for _, f := range FixedUnitKinds {
		if u.Kind == f {
			return nil
		}
	}
	return validationf("unknown unit kind %q", string(u.Kind))
}

// Abbrev returns the display abbreviation for logged quantities.
func (u Unit) Abbrev() string {
	if u.Kind == UnitCustom {
		return u.CustomAbbrev
	}
	return string(u.Kind)
}

// AllowsDecimal reports whether logged quantities may be fractional.
func (u Unit) AllowsDecimal() bool {
	if u.Kind == UnitCustom {
		return u.CustomDecimals
	}
	return fixedDecimals[u.Kind]
}
