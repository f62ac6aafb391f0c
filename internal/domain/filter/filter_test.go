package filter

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

var comparisonOps = []Operator{
	Equals, NotEquals, GreaterThan, LessThan, GreaterThanOrEquals, LessThanOrEquals,
	Contains, NotContains, StartsWith, EndsWith, In, NotIn,
}

var unaryOps = []Operator{IsEmpty, IsNotEmpty, Exists, NotExists}

// --- Operator tests ---

func TestParseOperator(t *testing.T) {
	for _, op := range append(slices.Clone(comparisonOps), unaryOps...) {
		got, err := ParseOperator(string(op))
		if err != nil {
			t.Errorf("ParseOperator(%q): unexpected error: %v", op, err)
		}
		if got != op {
			t.Errorf("ParseOperator(%q) = %q", op, got)
		}
	}
}

func TestParseOperator_Unknown(t *testing.T) {
	for _, s := range []string{"", "EQUALS", "like", "between"} {
		if _, err := ParseOperator(s); err == nil {
			t.Errorf("ParseOperator(%q): expected error", s)
		}
	}
}

func TestOperator_IsUnary(t *testing.T) {
	for _, op := range comparisonOps {
		if op.IsUnary() {
			t.Errorf("%q should not be unary", op)
		}
	}
	for _, op := range unaryOps {
		if !op.IsUnary() {
			t.Errorf("%q should be unary", op)
		}
	}
}

func TestCondition_IsValid(t *testing.T) {
	tests := []struct {
		c    Condition
		want bool
	}{
		{ConditionAnd, true},
		{ConditionOr, true},
		{"and", false},
		{"XOR", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.c.IsValid(); got != tt.want {
			t.Errorf("Condition(%q).IsValid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

// --- Rule tests ---

func TestValidate_ComparisonRequiresValue(t *testing.T) {
	for _, op := range comparisonOps {
		t.Run(string(op), func(t *testing.T) {
			if err := Validate(Rule{Column: "c", Operator: op, Value: "x"}); err != nil {
				t.Errorf("with value: unexpected error: %v", err)
			}
			if err := Validate(Rule{Column: "c", Operator: op}); err == nil {
				t.Error("without value: expected error")
			}
			for _, v := range []any{[]string(nil), (*int)(nil), map[string]any(nil)} {
				if err := Validate(Rule{Column: "c", Operator: op, Value: v}); err == nil {
					t.Errorf("typed nil %T: expected error", v)
				}
			}
		})
	}
}

func TestValidate_UnaryIgnoresValue(t *testing.T) {
	for _, op := range unaryOps {
		t.Run(string(op), func(t *testing.T) {
			if err := Validate(Rule{Column: "c", Operator: op}); err != nil {
				t.Errorf("without value: unexpected error: %v", err)
			}
			if err := Validate(Rule{Column: "c", Operator: op, Value: 42}); err != nil {
				t.Errorf("with value: unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_ZeroValuesArePresent(t *testing.T) {
	for _, v := range []any{0, "", false, []any{}, []string{}, map[string]any{}} {
		if err := Validate(Rule{Column: "c", Operator: Equals, Value: v}); err != nil {
			t.Errorf("value %#v: unexpected error: %v", v, err)
		}
	}
}

func TestValidate_EmptyColumn(t *testing.T) {
	err := Validate(Rule{Operator: Exists})
	if err == nil {
		t.Fatal("expected error for empty column")
	}
	if !strings.Contains(err.Error(), "column is required") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRule(t *testing.T) {
	r, err := NewRule("start_date", Equals, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Column != "start_date" || r.Operator != Equals || r.Value != 2021 {
		t.Errorf("rule = %+v", r)
	}
}

func TestNewRule_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		column string
		op     Operator
		value  any
	}{
		{"unknown operator", "c", Operator("like"), "x"},
		{"empty column", "", Equals, "x"},
		{"missing value", "c", In, nil},
		{"nil slice value", "c", In, []string(nil)},
		{"nil pointer value", "c", Equals, (*int)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRule(tt.column, tt.op, tt.value); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// --- Group tests ---

func TestValidate_EmptyGroups(t *testing.T) {
	for _, g := range []Group{{Condition: ConditionAnd}, {Condition: ConditionOr, Rules: []Node{}}} {
		if err := Validate(g); err != nil {
			t.Errorf("%s: unexpected error: %v", g.Condition, err)
		}
		if !g.IsEmpty() {
			t.Errorf("%s: IsEmpty() = false", g.Condition)
		}
	}
}

func TestValidate_InvalidCondition(t *testing.T) {
	err := Validate(Group{Condition: "NAND"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Path) != 0 {
		t.Errorf("Path = %v, want root", verr.Path)
	}
	if verr.Location() != "root" {
		t.Errorf("Location() = %q", verr.Location())
	}
}

func TestValidate_ReportsPath(t *testing.T) {
	tree := And(
		Rule{Column: "a", Operator: Equals, Value: 1},
		Or(
			Rule{Column: "b", Operator: Exists},
			And(),
			&Group{Condition: ConditionAnd, Rules: []Node{
				Rule{Column: "c", Operator: GreaterThan, Value: 2},
				Rule{Column: "d", Operator: "approx", Value: 3},
			}},
		),
	)

	err := Validate(tree)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !slices.Equal(verr.Path, []int{1, 2, 1}) {
		t.Errorf("Path = %v, want [1 2 1]", verr.Path)
	}
	if verr.Location() != "rules[1].rules[2].rules[1]" {
		t.Errorf("Location() = %q", verr.Location())
	}
	if !strings.Contains(err.Error(), `unknown operator "approx"`) {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_FailsFastInPreOrder(t *testing.T) {
	tree := Group{Condition: ConditionOr, Rules: []Node{
		Group{Condition: ConditionAnd, Rules: []Node{Rule{Column: "", Operator: Exists}}},
		Rule{Column: "x", Operator: "bogus"},
	}}

	var verr *ValidationError
	if !errors.As(Validate(tree), &verr) {
		t.Fatal("expected *ValidationError")
	}
	if !slices.Equal(verr.Path, []int{0, 0}) {
		t.Errorf("Path = %v, want [0 0]", verr.Path)
	}
}

func TestValidate_NilNodes(t *testing.T) {
	var nilRule *Rule
	var nilGroup *Group
	tests := []struct {
		name string
		node Node
	}{
		{"nil interface", nil},
		{"nil rule pointer", nilRule},
		{"nil group pointer", nilGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(And(tt.node)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_Cycle(t *testing.T) {
	g := &Group{Condition: ConditionAnd}
	g.Rules = []Node{g}

	err := Validate(g)
	if err == nil {
		t.Fatal("expected error for cyclic tree")
	}
	if !strings.Contains(err.Error(), "nesting exceeds") {
		t.Errorf("error = %q", err)
	}
}

func TestAndOr_CopyNodes(t *testing.T) {
	nodes := []Node{Rule{Column: "a", Operator: Exists}}
	g := And(nodes...)
	nodes[0] = Rule{Column: "b", Operator: Exists}

	if g.Rules[0].(Rule).Column != "a" {
		t.Error("And() must not alias the caller's slice")
	}
	if o := Or(); o.Rules == nil || o.Condition != ConditionOr {
		t.Errorf("Or() = %+v", o)
	}
}
