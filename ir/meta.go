package ir

// Metadata is descriptive decoration carried by nodes, properties, and
// definitions. It never changes generated behavior, only generated output
// (descriptions, deprecation markers, examples, defaults).
type Metadata struct {
	Description string
	Deprecated  bool
	Examples    []any
	Default     any
	// Extensions carries free-form converter-specific decoration
	// (x-* style keys in schema documents).
	Extensions map[string]any
}

// Constraints narrows the value set of a node. Pointer fields distinguish
// "unset" from a zero bound.
type Constraints struct {
	// Numeric
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// String
	MinLength *int
	MaxLength *int
	Pattern   string

	// Array
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Object
	MinProperties *int
	MaxProperties *int

	// Closed value enumeration (applies to any kind)
	Enum []any
}

// FormatCategory groups named formats for generators that special-case a
// whole family (temporal formats, identifier formats, ...).
type FormatCategory string

const (
	FormatTemporal   FormatCategory = "temporal"
	FormatIdentifier FormatCategory = "identifier"
	FormatNetwork    FormatCategory = "network"
	FormatOther      FormatCategory = "other"
)

// Format is a named-format hint (e.g. "date-time", "uuid", "email").
type Format struct {
	Name     string
	Category FormatCategory
}
