package compiler

import "rules.evalgo.org/internal/rules/ir"

// compileCCMMapping resolves the document's raw ccm_mapping entries into a
// CompiledCCMMapping, validating that every canonical field is known to the
// CFM (spec §4.2 step 4, §7 CFMMappingUnknownField) and computing a
// dependency-ordered ValidationOrder via depGraph (adapted from the
// teacher's DAG topological sort).
func (c *compileCtx) compileCCMMapping(entries []ir.SourceFieldMapping) (ir.CompiledCCMMapping, error) {
	fields := make(map[string]ir.FieldMapping, len(entries))
	graph := newDepGraph()

	for _, entry := range entries {
		if c.cfmModel != nil && !c.cfmModel.Has(entry.CanonicalField) {
			return ir.CompiledCCMMapping{}, ir.NewCompilationError(
				"ccm_mapping references unknown canonical field %q", entry.CanonicalField)
		}
		fields[entry.CanonicalField] = ir.FieldMapping{
			CanonicalField: entry.CanonicalField,
			SourceField:    entry.SourceField,
			Transform:      entry.Transform,
			DefaultValue:   entry.DefaultValue,
			Required:       entry.Required,
		}
		graph.addNode(entry.CanonicalField)
		for _, dep := range entry.DependsOn {
			graph.addEdge(entry.CanonicalField, dep)
		}
	}

	order, err := graph.topoOrder()
	if err != nil {
		return ir.CompiledCCMMapping{}, ir.NewCompilationError("ccm_mapping: %v", err)
	}

	return ir.CompiledCCMMapping{Fields: fields, ValidationOrder: order}, nil
}
