package cfm

// CrossFieldCheck validates a relationship that spans more than one
// canonical field within a single row (spec §4.5 "cross-field checks").
type CrossFieldCheck interface {
	// Name identifies the check for diagnostics.
	Name() string
	// Check inspects one row's canonical values (field name -> raw value,
	// absent key means null/missing) and appends violations to out.
	Check(row map[string]string, out []FieldResult) []FieldResult
}

// dimensionsAllOrNoneCheck enforces that length_cm/width_cm/height_cm/
// weight_kg are either all present or all absent — a partial set of
// dimensions is meaningless for freight calculation.
type dimensionsAllOrNoneCheck struct{}

func (dimensionsAllOrNoneCheck) Name() string { return "dimensions_all_or_none" }

func (dimensionsAllOrNoneCheck) Check(row map[string]string, out []FieldResult) []FieldResult {
	dims := []string{"length_cm", "width_cm", "height_cm", "weight_kg"}
	present := 0
	for _, d := range dims {
		if v, ok := row[d]; ok && v != "" {
			present++
		}
	}
	if present == 0 || present == len(dims) {
		return out
	}
	for _, d := range dims {
		out = append(out, FieldResult{
			Field:    d,
			IsValid:  false,
			Severity: "warning",
			Message:  "length_cm, width_cm, height_cm and weight_kg must be supplied together or not at all",
		})
	}
	return out
}

// currencyMatchesPriceCheck warns when price_brl is present alongside a
// non-BRL currency — the CFM's canonical price is always denominated in
// BRL, so a mismatched currency likely indicates an unconverted import, but
// it's a warning rather than a hard error since currency is optional and
// non-BRL values are legitimate (ccm.py allows BRL/USD/EUR).
type currencyMatchesPriceCheck struct{}

func (currencyMatchesPriceCheck) Name() string { return "currency_matches_price" }

func (currencyMatchesPriceCheck) Check(row map[string]string, out []FieldResult) []FieldResult {
	price, hasPrice := row["price_brl"]
	if !hasPrice || price == "" {
		return out
	}
	if currency, hasCurrency := row["currency"]; hasCurrency && currency != "" && currency != "BRL" {
		out = append(out, FieldResult{
			Field:    "currency",
			IsValid:  false,
			Severity: "warning",
			Message:  "currency does not match price_brl's BRL denomination",
		})
	}
	return out
}
