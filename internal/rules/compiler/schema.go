package compiler

import "rules.evalgo.org/internal/rules/ir"

// validateDocumentShape checks the top-level document surface invariants
// (spec §3, §6) that must hold before any per-rule compilation is
// attempted: required top-level fields present, at least one rule, and no
// duplicate canonical fields in ccm_mapping.
func validateDocumentShape(doc *ir.RuleDocument) error {
	if doc.SchemaVersion == "" {
		return ir.NewCompilationError("schema_version is required")
	}
	if doc.Marketplace == "" {
		return ir.NewCompilationError("marketplace is required")
	}
	if doc.Version == "" {
		return ir.NewCompilationError("version is required")
	}
	if len(doc.Rules) == 0 {
		return ir.NewCompilationError("document must declare at least one rule")
	}

	seen := map[string]bool{}
	for _, m := range doc.CCMMapping {
		if m.CanonicalField == "" {
			return ir.NewCompilationError("ccm_mapping entry missing canonical_field")
		}
		if seen[m.CanonicalField] {
			return ir.NewCompilationError("ccm_mapping declares %q more than once", m.CanonicalField)
		}
		seen[m.CanonicalField] = true
	}

	return nil
}
