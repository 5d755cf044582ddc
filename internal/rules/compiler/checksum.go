package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"rules.evalgo.org/internal/rules/ir"
)

// checksum computes a SHA-256 hex digest over a canonical, stably
// key-ordered serialization of the document (spec §6): two semantically
// identical documents — same rules, same mapping, differing only in
// key/array order — must hash to the same digest, so compiling twice
// detects an unintended change.
func checksum(doc *ir.RuleDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "schema_version=%s\n", doc.SchemaVersion)
	fmt.Fprintf(&b, "marketplace=%s\n", doc.Marketplace)
	fmt.Fprintf(&b, "version=%s\n", doc.Version)

	mapping := append([]ir.SourceFieldMapping(nil), doc.CCMMapping...)
	sort.Slice(mapping, func(i, j int) bool { return mapping[i].CanonicalField < mapping[j].CanonicalField })
	for _, m := range mapping {
		fmt.Fprintf(&b, "map:%s=%s|%s|%s|%v|%s\n",
			m.CanonicalField, m.SourceField, m.Transform, m.DefaultValue, m.Required,
			strings.Join(sortedStrings(m.DependsOn), ","))
	}

	rules := append([]ir.RuleEntry(nil), doc.Rules...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	for _, r := range rules {
		fmt.Fprintf(&b, "rule:%s field=%s type=%s precedence=%d scope=%s severity=%s enabled=%v message=%s tags=%s\n",
			r.ID, r.Field, r.Type, r.Precedence, r.Scope, r.Severity, r.Enabled, r.Message,
			strings.Join(sortedStrings(r.Tags), ","))
		writeCondition(&b, r.Condition)
		writeAction(&b, r.Action)
	}

	keys := sortedStrings(mapKeys(doc.Metadata))
	for _, k := range keys {
		fmt.Fprintf(&b, "meta:%s=%s\n", k, doc.Metadata[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeCondition(b *strings.Builder, c *ir.Condition) {
	if c == nil {
		fmt.Fprint(b, "cond:nil\n")
		return
	}
	switch c.Kind() {
	case ir.KindAnd:
		fmt.Fprint(b, "cond:and(\n")
		for _, child := range c.And {
			writeCondition(b, child)
		}
		fmt.Fprint(b, ")\n")
	case ir.KindOr:
		fmt.Fprint(b, "cond:or(\n")
		for _, child := range c.Or {
			writeCondition(b, child)
		}
		fmt.Fprint(b, ")\n")
	case ir.KindNot:
		fmt.Fprint(b, "cond:not(\n")
		writeCondition(b, c.Not)
		fmt.Fprint(b, ")\n")
	default:
		fmt.Fprintf(b, "cond:op=%s value=%s field=%s case_sensitive=%v\n",
			c.Operator, c.Value, c.Field, c.CaseSensitive)
	}
}

func writeAction(b *strings.Builder, a *ir.Action) {
	if a == nil {
		fmt.Fprint(b, "action:nil\n")
		return
	}
	params := sortedStrings(mapKeys(a.Params))
	var paramPairs []string
	for _, k := range params {
		paramPairs = append(paramPairs, k+"="+a.Params[k])
	}
	fmt.Fprintf(b, "action:stop_on_error=%v operation=%s value=%s params=%s suggestions=%s confidence=%v\n",
		a.StopOnError, a.Operation, a.Value, strings.Join(paramPairs, "&"),
		strings.Join(a.Suggestions, ","), a.Confidence)
}

func sortedStrings(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
