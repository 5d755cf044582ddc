// Package cfm implements the canonical field model (C4 in SPEC_FULL.md): a
// declarative, injected-as-a-constant catalog of canonical commerce columns
// (spec §4.5) with typed validation, normalization, and cross-field checks.
// There is no global/package-level model instance — callers construct or
// take DefaultModel() and pass it explicitly, so tests can substitute
// alternates (design note §9 "treat the CFM as a constant value injected at
// construction; no process-wide mutable state").
package cfm

import "regexp"

// FieldType is the semantic type of a canonical field (spec §4.5).
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeDecimal  FieldType = "decimal"
	TypeBoolean  FieldType = "boolean"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
	TypeURL      FieldType = "url"
	TypeDate     FieldType = "date"
	TypeCurrency FieldType = "currency"
)

// FieldSpec declares one canonical field's shape and constraints (spec
// §4.5).
type FieldSpec struct {
	Name          string
	Type          FieldType
	Required      bool
	MinLength     int
	MaxLength     int // 0 means unbounded
	Pattern       *regexp.Regexp
	AllowedValues []string // membership set; empty means unconstrained
	Description   string

	// ElementType applies only when Type == TypeArray: the semantic type of
	// each array element (e.g. TypeURL for the `images` field).
	ElementType FieldType

	// MustBePositive applies to numeric/currency types (price_brl, stock,
	// weight_kg, dimension fields).
	MustBePositive bool
	// AllowZero relaxes MustBePositive to allow exactly zero (stock, weight
	// and dimensions can be 0; price must be > 0).
	AllowZero bool
}

// Model is an immutable catalog of canonical fields plus the cross-field
// checks that span them.
type Model struct {
	Fields       map[string]FieldSpec
	FieldOrder   []string // declaration order, for deterministic iteration
	CrossChecks  []CrossFieldCheck
}

// Has reports whether name is a declared canonical field — used by the
// compiler to validate `ccm_mapping` entries (spec §4.2 step 4, §7
// CFMMappingUnknownField).
func (m *Model) Has(name string) bool {
	_, ok := m.Fields[name]
	return ok
}

// Get returns the FieldSpec for name.
func (m *Model) Get(name string) (FieldSpec, bool) {
	spec, ok := m.Fields[name]
	return spec, ok
}

func field(name string, spec FieldSpec) (string, FieldSpec) {
	spec.Name = name
	return name, spec
}

// DefaultModel returns the canonical field catalog documented in
// SPEC_FULL.md §4 (expansion of spec §4.5's example field list into a
// concrete table for a Brazilian marketplace feed).
func DefaultModel() *Model {
	order := []string{
		"sku", "title", "description", "brand", "category_path", "gtin", "ncm",
		"price_brl", "currency", "stock", "weight_kg",
		"length_cm", "width_cm", "height_cm", "images", "attributes",
	}
	fields := map[string]FieldSpec{}
	add := func(name string, spec FieldSpec) {
		k, v := field(name, spec)
		fields[k] = v
	}

	add("sku", FieldSpec{Type: TypeString, Required: true, MinLength: 1, MaxLength: 64,
		Pattern: regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)})
	add("title", FieldSpec{Type: TypeString, Required: true, MinLength: 1, MaxLength: 200})
	add("description", FieldSpec{Type: TypeString, MaxLength: 5000})
	add("brand", FieldSpec{Type: TypeString, MaxLength: 100})
	add("category_path", FieldSpec{Type: TypeString, Pattern: regexp.MustCompile(`^[^>]+(>[^>]+)*$`)})
	add("gtin", FieldSpec{Type: TypeString, Pattern: regexp.MustCompile(`^\d{8}(\d{4,6})?$`)})
	add("ncm", FieldSpec{Type: TypeString, Pattern: regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`),
		Description: "Nomenclatura Comum do Mercosul"})
	add("price_brl", FieldSpec{Type: TypeCurrency, Required: true, MustBePositive: true})
	add("currency", FieldSpec{Type: TypeString, AllowedValues: []string{"BRL", "USD", "EUR"}})
	add("stock", FieldSpec{Type: TypeInteger, MustBePositive: true, AllowZero: true})
	add("weight_kg", FieldSpec{Type: TypeDecimal, MustBePositive: true, AllowZero: true})
	add("length_cm", FieldSpec{Type: TypeDecimal, MustBePositive: true, AllowZero: true})
	add("width_cm", FieldSpec{Type: TypeDecimal, MustBePositive: true, AllowZero: true})
	add("height_cm", FieldSpec{Type: TypeDecimal, MustBePositive: true, AllowZero: true})
	add("images", FieldSpec{Type: TypeArray, ElementType: TypeURL})
	add("attributes", FieldSpec{Type: TypeObject})

	return &Model{
		Fields:     fields,
		FieldOrder: order,
		CrossChecks: []CrossFieldCheck{
			dimensionsAllOrNoneCheck{},
			currencyMatchesPriceCheck{},
		},
	}
}
