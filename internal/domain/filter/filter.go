// Package filter implements the recursive rule grammar accepted by the
// search and filter endpoints.
//
// A filter is a tree whose inner nodes are groups (AND/OR over an ordered
// list of children) and whose leaves are column rules. A group with no
// rules is valid: under AND it places no constraint on the result, under
// OR it matches nothing. The wire format does not distinguish these cases;
// they are resolved by the server.
package filter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MaxDepth bounds group nesting. Trees built from pointers could otherwise
// contain cycles.
const MaxDepth = 64

// Node is either a Rule or a Group. The set is closed.
type Node interface {
	node()
}

// Rule is a single column predicate.
// A nil Value, or a nil pointer, slice or map stored in it, means the
// value is absent.
type Rule struct {
	Column   string
	Operator Operator
	Value    any
}

func (Rule) node() {}

// Group is a boolean combination of rules and nested groups.
type Group struct {
	Condition Condition
	Rules     []Node
}

func (Group) node() {}

// NewRule validates and creates a Rule.
func NewRule(column string, op Operator, value any) (Rule, error) {
	r := Rule{Column: column, Operator: op, Value: value}
	if err := r.validate(nil); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// And combines nodes with AND. The nodes slice is copied.
func And(nodes ...Node) Group {
	return Group{Condition: ConditionAnd, Rules: append([]Node{}, nodes...)}
}

// Or combines nodes with OR. The nodes slice is copied.
func Or(nodes ...Node) Group {
	return Group{Condition: ConditionOr, Rules: append([]Node{}, nodes...)}
}

// IsEmpty reports whether the group has no rules.
func (g Group) IsEmpty() bool { return len(g.Rules) == 0 }

// ValidationError locates the first invalid node of a tree.
type ValidationError struct {
	// Path holds child indices from the root; empty for the root itself.
	Path   []int
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return "invalid filter: " + e.Reason
	}
	return fmt.Sprintf("invalid filter at %s: %s", e.Location(), e.Reason)
}

// Location renders Path as rules[i].rules[j]...
func (e *ValidationError) Location() string {
	if len(e.Path) == 0 {
		return "root"
	}
	parts := make([]string, len(e.Path))
	for i, idx := range e.Path {
		parts[i] = "rules[" + strconv.Itoa(idx) + "]"
	}
	return strings.Join(parts, ".")
}

func invalid(path []int, format string, args ...any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate walks the tree in pre-order and returns the first violation
// as a *ValidationError.
func Validate(n Node) error {
	return validate(n, nil)
}

func validate(n Node, path []int) error {
	if len(path) > MaxDepth {
		return invalid(path, "nesting exceeds %d levels", MaxDepth)
	}
	switch v := n.(type) {
	case Rule:
		return v.validate(path)
	case *Rule:
		if v == nil {
			return invalid(path, "nil rule")
		}
		return v.validate(path)
	case Group:
		return v.validate(path)
	case *Group:
		if v == nil {
			return invalid(path, "nil group")
		}
		return v.validate(path)
	default:
		return invalid(path, "nil node")
	}
}

func (g Group) validate(path []int) error {
	if !g.Condition.IsValid() {
		return invalid(path, "condition must be AND or OR, got %q", g.Condition)
	}
	for i, child := range g.Rules {
		if err := validate(child, childPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) validate(path []int) error {
	if r.Column == "" {
		return invalid(path, "column is required")
	}
	if !r.Operator.IsValid() {
		return invalid(path, "unknown operator %q", r.Operator)
	}
	if !r.Operator.IsUnary() && isAbsent(r.Value) {
		return invalid(path, "operator %q requires a value", r.Operator)
	}
	return nil
}

// isAbsent reports whether v encodes as JSON null.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func childPath(path []int, i int) []int {
	p := make([]int, len(path)+1)
	copy(p, path)
	p[len(path)] = i
	return p
}
