package lightfeed

import (
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/filter"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/pagination"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/query"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/record"
)

// Filter types.
type (
	// Filter is the root group of a rule tree.
	Filter = filter.Group
	// RuleGroup combines child nodes with AND or OR.
	RuleGroup = filter.Group
	// ColumnRule compares one column against a value.
	ColumnRule = filter.Rule
	// FilterNode is either a ColumnRule or a RuleGroup.
	FilterNode = filter.Node
	// Operator is a column comparison operator.
	Operator = filter.Operator
	// Condition joins the rules of a group.
	Condition = filter.Condition
	// FilterValidationError locates the first invalid node of a rule tree.
	FilterValidationError = filter.ValidationError
)

// Comparison operators.
const (
	Equals              = filter.Equals
	NotEquals           = filter.NotEquals
	GreaterThan         = filter.GreaterThan
	LessThan            = filter.LessThan
	GreaterThanOrEquals = filter.GreaterThanOrEquals
	LessThanOrEquals    = filter.LessThanOrEquals
	Contains            = filter.Contains
	NotContains         = filter.NotContains
	StartsWith          = filter.StartsWith
	EndsWith            = filter.EndsWith
	In                  = filter.In
	NotIn               = filter.NotIn
)

// Unary operators.
const (
	IsEmpty    = filter.IsEmpty
	IsNotEmpty = filter.IsNotEmpty
	Exists     = filter.Exists
	NotExists  = filter.NotExists
)

// Group conditions.
const (
	ConditionAnd = filter.ConditionAnd
	ConditionOr  = filter.ConditionOr
)

// And groups nodes with AND. An empty AND group places no constraint.
func And(nodes ...FilterNode) Filter { return filter.And(nodes...) }

// Or groups nodes with OR. An empty OR group matches nothing.
func Or(nodes ...FilterNode) Filter { return filter.Or(nodes...) }

// NewRule builds a validated ColumnRule.
func NewRule(column string, op Operator, value any) (ColumnRule, error) {
	return filter.NewRule(column, op, value)
}

// ParseOperator converts a wire name into an Operator.
func ParseOperator(s string) (Operator, error) { return filter.ParseOperator(s) }

// ValidateFilter checks a rule tree without sending it. The error is a
// *FilterValidationError.
func ValidateFilter(n FilterNode) error { return filter.Validate(n) }

// MarshalFilter encodes a validated rule tree in its canonical JSON form.
func MarshalFilter(n FilterNode) ([]byte, error) { return filter.Marshal(n) }

// UnmarshalFilter decodes a rule tree.
func UnmarshalFilter(data []byte) (Filter, error) { return filter.Unmarshal(data) }

// Record types.
type (
	Record          = record.Record
	Timestamps      = record.Timestamps
	RecordsResponse = record.Response
)

// Pagination types.
type (
	// Pagination is the pagination block of a response.
	Pagination = pagination.Page
	// PaginationParams selects a page size and resumes from a cursor.
	PaginationParams = pagination.Params
)

// Page size limits.
const (
	DefaultPageLimit = pagination.DefaultLimit
	MaxPageLimit     = pagination.MaxLimit
)

// Request parameters.
type (
	TimeRange           = query.TimeRange
	SearchParams        = query.Search
	GetRecordsParams    = query.GetParams
	SearchRecordsParams = query.SearchParams
	FilterRecordsParams = query.FilterParams
)

// DefaultSearchThreshold is the relevance threshold the server applies
// when SearchParams.Threshold is nil.
const DefaultSearchThreshold = query.DefaultThreshold
