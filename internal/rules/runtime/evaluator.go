package runtime

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/table"
)

// dateLayouts are the date formats `is_date` recognizes (spec §4.3.2).
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "01/02/2006"}

// evaluateVectorized evaluates cond against every row of tbl in one pass,
// returning a dense BoolColumn mask (spec §4.3.2). It never itself returns
// an error; a column missing from tbl is read as all-null cells. A panic
// during evaluation is recovered and reported via ok=false so Execute can
// fall back to the row-wise evaluator for that rule instead of aborting the
// whole run.
func evaluateVectorized(cond *ir.CompiledCondition, tbl *table.Table, ownField string) (mask *table.BoolColumn, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			mask, ok = nil, false
		}
	}()
	return evalNode(cond, tbl, ownField), true
}

func evalNode(cond *ir.CompiledCondition, tbl *table.Table, ownField string) *table.BoolColumn {
	n := tbl.RowCount()
	switch cond.Kind {
	case ir.KindAnd:
		out := allTrue(n)
		for _, child := range cond.And {
			out = out.And(evalNode(child, tbl, ownField))
		}
		return out
	case ir.KindOr:
		out := table.NewBoolColumn(n)
		for _, child := range cond.Or {
			out = out.Or(evalNode(child, tbl, ownField))
		}
		return out
	case ir.KindNot:
		return evalNode(cond.Not, tbl, ownField).Not()
	default:
		return evalSimpleColumn(cond, tbl, ownField)
	}
}

func allTrue(n int) *table.BoolColumn {
	out := table.NewBoolColumn(n)
	for i := range out.Values {
		out.Values[i] = true
	}
	return out
}

func evalSimpleColumn(cond *ir.CompiledCondition, tbl *table.Table, ownField string) *table.BoolColumn {
	field := cond.Field
	if field == "" {
		field = ownField
	}
	col, hasCol := tbl.Column(field)
	n := tbl.RowCount()
	out := table.NewBoolColumn(n)
	for i := 0; i < n; i++ {
		var value string
		var present bool
		if hasCol {
			value, present = col.At(i)
		}
		out.Values[i] = evalSimple(cond, value, present)
	}
	return out
}

// evaluateRow evaluates cond against a single row, used both as the
// per-rule-group fallback when evaluateVectorized reports ok=false and as
// the native path for sequential (non-row-scoped) rule groups.
func evaluateRow(cond *ir.CompiledCondition, tbl *table.Table, ownField string, row int) bool {
	switch cond.Kind {
	case ir.KindAnd:
		for _, child := range cond.And {
			if !evaluateRow(child, tbl, ownField, row) {
				return false
			}
		}
		return len(cond.And) > 0
	case ir.KindOr:
		for _, child := range cond.Or {
			if evaluateRow(child, tbl, ownField, row) {
				return true
			}
		}
		return false
	case ir.KindNot:
		return !evaluateRow(cond.Not, tbl, ownField, row)
	default:
		field := cond.Field
		if field == "" {
			field = ownField
		}
		var value string
		var present bool
		if col, ok := tbl.Column(field); ok {
			value, present = col.At(row)
		}
		return evalSimple(cond, value, present)
	}
}

// evalSimple implements the per-operator semantics table (spec §4.3.2) for
// a single cell. present is false for a null cell; every operator except
// empty/not_empty treats a null cell as not matching.
func evalSimple(cond *ir.CompiledCondition, value string, present bool) bool {
	op := cond.Operator

	switch op {
	case ir.OpEmpty:
		return !present || ir.TrimEmpty(value)
	case ir.OpNotEmpty:
		return present && !ir.TrimEmpty(value)
	}

	if !present {
		return false
	}

	lhs, rhs := value, cond.Value
	if !cond.CaseSensitive {
		lhs, rhs = strings.ToLower(lhs), strings.ToLower(rhs)
	}

	switch op {
	case ir.OpEq:
		return lhs == rhs
	case ir.OpNe:
		return lhs != rhs
	case ir.OpContains:
		return strings.Contains(lhs, rhs)
	case ir.OpStartsWith:
		return strings.HasPrefix(lhs, rhs)
	case ir.OpEndsWith:
		return strings.HasSuffix(lhs, rhs)
	case ir.OpMatches:
		return cond.Regex != nil && cond.Regex.MatchString(value)
	case ir.OpIn:
		return cond.Set[lhs]
	case ir.OpNotIn:
		return !cond.Set[lhs]
	case ir.OpLengthEq:
		n, err := strconv.Atoi(cond.Value)
		return err == nil && len([]rune(value)) == n
	case ir.OpLengthGt:
		n, err := strconv.Atoi(cond.Value)
		return err == nil && len([]rune(value)) > n
	case ir.OpLengthLt:
		n, err := strconv.Atoi(cond.Value)
		return err == nil && len([]rune(value)) < n
	case ir.OpIsNumber:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case ir.OpIsEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return false
		}
		return ir.EmailPattern.MatchString(value)
	case ir.OpIsURL:
		u, err := url.ParseRequestURI(value)
		return err == nil && u.Scheme != "" && ir.URLPattern.MatchString(value)
	case ir.OpIsDate:
		return parsesAsDate(value)
	case ir.OpGt, ir.OpGte, ir.OpLt, ir.OpLte:
		return evalNumericComparison(op, value, cond.Value)
	default:
		return false
	}
}

func evalNumericComparison(op ir.Operator, rawValue, rawOther string) bool {
	a, errA := strconv.ParseFloat(rawValue, 64)
	b, errB := strconv.ParseFloat(rawOther, 64)
	if errA != nil || errB != nil {
		return false
	}
	switch op {
	case ir.OpGt:
		return a > b
	case ir.OpGte:
		return a >= b
	case ir.OpLt:
		return a < b
	case ir.OpLte:
		return a <= b
	default:
		return false
	}
}

func parsesAsDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
