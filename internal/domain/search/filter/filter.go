package filter

import "fmt"

// MaxValuesPerOption caps list-valued filter options.
const MaxValuesPerOption = 32

// Filters is the structured, non-text constraint set applied after ranking.
// Every option is optional; an empty Filters accepts every record. Options
// compose with AND semantics (pure intersection).
type Filters struct {
	fundingBodies []string
	techAreas     []string
	valueMin      *float64
	valueMax      *float64
	deadlineDays  *int
	smeFriendly   bool
	status        string
}

// Option mutates a Filters under construction.
type Option func(*Filters) error

// WithFundingBodies keeps records whose funding body contains any of the
// given names (case-insensitive substring).
func WithFundingBodies(bodies ...string) Option {
	return func(f *Filters) error {
		if len(bodies) > MaxValuesPerOption {
			return fmt.Errorf("too many funding bodies (max %d)", MaxValuesPerOption)
		}
		f.fundingBodies = bodies
		return nil
	}
}

// WithTechAreas keeps records carrying at least one of the given tags
// (exact membership).
func WithTechAreas(areas ...string) Option {
	return func(f *Filters) error {
		if len(areas) > MaxValuesPerOption {
			return fmt.Errorf("too many tech areas (max %d)", MaxValuesPerOption)
		}
		f.techAreas = areas
		return nil
	}
}

// WithValueRange keeps records whose extracted monetary value falls in
// [min, max]. Either bound may be nil for a half-open range.
func WithValueRange(min, max *float64) Option {
	return func(f *Filters) error {
		if min == nil && max == nil {
			return fmt.Errorf("value range requires at least one bound")
		}
		if min != nil && max != nil && *min > *max {
			return fmt.Errorf("value_min %v exceeds value_max %v", *min, *max)
		}
		f.valueMin = min
		f.valueMax = max
		return nil
	}
}

// WithDeadlineDays keeps records closing within the given number of days.
func WithDeadlineDays(days int) Option {
	return func(f *Filters) error {
		if days < 0 {
			return fmt.Errorf("deadline_days must be non-negative, got %d", days)
		}
		f.deadlineDays = &days
		return nil
	}
}

// WithSMEFriendly keeps records with an SME score of at least 0.6.
func WithSMEFriendly() Option {
	return func(f *Filters) error {
		f.smeFriendly = true
		return nil
	}
}

// WithStatus keeps records whose status equals the given value exactly.
func WithStatus(status string) Option {
	return func(f *Filters) error {
		if status == "" {
			return fmt.Errorf("status filter value is required")
		}
		f.status = status
		return nil
	}
}

// New validates and creates a Filters.
func New(opts ...Option) (Filters, error) {
	var f Filters
	for _, opt := range opts {
		if err := opt(&f); err != nil {
			return Filters{}, err
		}
	}
	return f, nil
}

// None is the empty filter set.
func None() Filters { return Filters{} }

// FundingBodies returns the funding-body substrings.
func (f Filters) FundingBodies() []string { return f.fundingBodies }

// TechAreas returns the required tag values.
func (f Filters) TechAreas() []string { return f.techAreas }

// ValueMin returns the lower monetary bound, or nil.
func (f Filters) ValueMin() *float64 { return f.valueMin }

// ValueMax returns the upper monetary bound, or nil.
func (f Filters) ValueMax() *float64 { return f.valueMax }

// DeadlineDays returns the deadline proximity bound, or nil.
func (f Filters) DeadlineDays() *int { return f.deadlineDays }

// SMEFriendly reports whether the SME threshold applies.
func (f Filters) SMEFriendly() bool { return f.smeFriendly }

// Status returns the exact status requirement, empty when unset.
func (f Filters) Status() string { return f.status }

// IsEmpty reports whether no option is set.
func (f Filters) IsEmpty() bool {
	return len(f.fundingBodies) == 0 && len(f.techAreas) == 0 &&
		f.valueMin == nil && f.valueMax == nil &&
		f.deadlineDays == nil && !f.smeFriendly && f.status == ""
}
