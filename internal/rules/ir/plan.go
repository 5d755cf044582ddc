package ir

// RuleGroup is a set of co-executing rules sharing an execution mode (spec
// §3's ExecutionPlan.RuleGroup / GLOSSARY "Rule group").
type RuleGroup struct {
	RuleIDs       []string
	ExecutionMode ExecutionMode
	Dependencies  map[string]bool // external fields this group's rules read
}

// Phase is one ordered stage of the execution plan (spec §3's
// ExecutionPlan phase entries).
type Phase struct {
	Type         PhaseType
	RuleGroups   []RuleGroup
	CanVectorize bool
}

// ExecutionPlan partitions a compiled rule set's rules into ordered phases
// and groups, plus the indices the runtime uses for dispatch (spec §3).
type ExecutionPlan struct {
	Phases []Phase

	FieldIndex      map[string][]string // field -> rule ids touching it
	PrecedenceIndex map[int][]string    // precedence -> rule ids
	ParallelGroups  [][]string          // batches of rule ids safe to run concurrently
	Optimizations   []string            // applied optimization tags, for diagnostics
}
