package filter

import "fmt"

// Operator is a column comparison operator.
type Operator string

// Comparison operators. A rule using one of these must carry a value.
const (
	Equals              Operator = "equals"
	NotEquals           Operator = "not_equals"
	GreaterThan         Operator = "greater_than"
	LessThan            Operator = "less_than"
	GreaterThanOrEquals Operator = "greater_than_or_equals"
	LessThanOrEquals    Operator = "less_than_or_equals"
	Contains            Operator = "contains"
	NotContains         Operator = "not_contains"
	StartsWith          Operator = "starts_with"
	EndsWith            Operator = "ends_with"
	In                  Operator = "in"
	NotIn               Operator = "not_in"
)

// Unary operators. Any value attached to such a rule is ignored.
const (
	IsEmpty    Operator = "is_empty"
	IsNotEmpty Operator = "is_not_empty"
	Exists     Operator = "exists"
	NotExists  Operator = "not_exists"
)

var operators = map[Operator]bool{
	Equals:              false,
	NotEquals:           false,
	GreaterThan:         false,
	LessThan:            false,
	GreaterThanOrEquals: false,
	LessThanOrEquals:    false,
	Contains:            false,
	NotContains:         false,
	StartsWith:          false,
	EndsWith:            false,
	In:                  false,
	NotIn:               false,
	IsEmpty:             true,
	IsNotEmpty:          true,
	Exists:              true,
	NotExists:           true,
}

// ParseOperator converts a wire string into an Operator.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !op.IsValid() {
		return "", fmt.Errorf("unknown operator %q", s)
	}
	return op, nil
}

// IsValid reports whether o belongs to the operator set.
func (o Operator) IsValid() bool {
	_, ok := operators[o]
	return ok
}

// IsUnary reports whether o takes no value.
func (o Operator) IsUnary() bool { return operators[o] }

// Condition combines the rules of a group.
type Condition string

// Condition constants.
const (
	ConditionAnd Condition = "AND"
	ConditionOr  Condition = "OR"
)

// IsValid reports whether c is AND or OR.
func (c Condition) IsValid() bool {
	return c == ConditionAnd || c == ConditionOr
}
