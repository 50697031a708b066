// Package query turns client-supplied filter/sort/pagination parameters
// into a structured plan the catalog store can execute. Field names are
// resolved against a whitelist, never interpolated from the request, and
// only explicit field[op] tokens are treated as operators.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/greenspoon/backend/internal/apperr"
)

type Op string

const (
	OpEq       Op = "eq"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpIn       Op = "in"
	OpContains Op = "contains"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// EmptyResultMessage is set on list results that matched zero rows.
const EmptyResultMessage = "no results"

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindID
)

type field struct {
	column string
	kind   fieldKind
	// substring marks fields matched case-insensitively as substrings
	// instead of exactly.
	substring bool
}

// filterFields is the set of client-facing filter names and the columns
// they resolve to.
var filterFields = map[string]field{
	"name":         {column: "name", kind: kindText, substring: true},
	"ingredients":  {column: "ingredients", kind: kindText, substring: true},
	"calories":     {column: "calories", kind: kindNumber},
	"difficulty":   {column: "difficulty", kind: kindNumber},
	"cooking_time": {column: "cooking_time", kind: kindNumber},
	"category":     {column: "category_id", kind: kindID},
}

// selectFields is the set of projectable columns.
var selectFields = map[string]string{
	"id":           "id",
	"name":         "name",
	"description":  "description",
	"ingredients":  "ingredients",
	"steps":        "steps",
	"calories":     "calories",
	"difficulty":   "difficulty",
	"cooking_time": "cooking_time",
	"category":     "category_id",
	"creator":      "creator_id",
	"image":        "image_id",
	"created_at":   "created_at",
}

// Condition is one typed filter predicate.
type Condition struct {
	Column string
	Op     Op
	// Value holds the single comparison operand; Values holds the list for
	// OpIn.
	Value  interface{}
	Values []interface{}
}

// Order is one sort term.
type Order struct {
	Column string
	Desc   bool
}

// Plan is the executable translation of the request parameters.
type Plan struct {
	Conditions []Condition
	Select     []string
	Sort       []Order
	Page       int
	Limit      int
	Skip       int
}

var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// Translate builds a Plan from raw URL query values.
func Translate(params url.Values) (*Plan, error) {
	plan := &Plan{}

	for key, values := range params {
		if reservedKeys[key] || len(values) == 0 {
			continue
		}
		cond, err := parseCondition(key, values[0])
		if err != nil {
			return nil, err
		}
		plan.Conditions = append(plan.Conditions, *cond)
	}

	if err := parseSelect(params.Get("select"), plan); err != nil {
		return nil, err
	}
	if err := parseSort(params.Get("sort"), plan); err != nil {
		return nil, err
	}
	if err := parsePagination(params.Get("page"), params.Get("limit"), plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// parseCondition handles keys of the form "field" or "field[op]".
func parseCondition(key, raw string) (*Condition, error) {
	name := key
	op := OpEq
	if open := strings.IndexByte(key, '['); open >= 0 {
		if !strings.HasSuffix(key, "]") {
			return nil, apperr.Validation("Invalid filter: %s", key)
		}
		name = key[:open]
		token := key[open+1 : len(key)-1]
		switch Op(token) {
		case OpGt, OpGte, OpLt, OpLte, OpIn:
			op = Op(token)
		default:
			return nil, apperr.Validation("Invalid filter operator: %s", token)
		}
	}

	f, ok := filterFields[name]
	if !ok {
		return nil, apperr.Validation("Invalid filter field: %s", name)
	}

	if f.substring {
		// name/ingredients always match as case-insensitive substrings.
		return &Condition{Column: f.column, Op: OpContains, Value: raw}, nil
	}

	if op == OpIn {
		parts := strings.Split(raw, ",")
		values := make([]interface{}, 0, len(parts))
		for _, part := range parts {
			value, err := convertValue(f, strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return &Condition{Column: f.column, Op: OpIn, Values: values}, nil
	}

	value, err := convertValue(f, raw)
	if err != nil {
		return nil, err
	}
	return &Condition{Column: f.column, Op: op, Value: value}, nil
}

func convertValue(f field, raw string) (interface{}, error) {
	switch f.kind {
	case kindNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.Validation("Invalid numeric value for %s: %s", f.column, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func parseSelect(raw string, plan *Plan) error {
	if raw == "" {
		return nil
	}
	for _, name := range strings.Split(raw, ",") {
		column, ok := selectFields[strings.TrimSpace(name)]
		if !ok {
			return apperr.Validation("Invalid select field: %s", name)
		}
		plan.Select = append(plan.Select, column)
	}
	return nil
}

func parseSort(raw string, plan *Plan) error {
	if raw == "" {
		return nil
	}
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		desc := strings.HasPrefix(term, "-")
		name := strings.TrimPrefix(term, "-")
		column, ok := selectFields[name]
		if !ok {
			return apperr.Validation("Invalid sort field: %s", name)
		}
		plan.Sort = append(plan.Sort, Order{Column: column, Desc: desc})
	}
	return nil
}

func parsePagination(rawPage, rawLimit string, plan *Plan) error {
	plan.Page = DefaultPage
	plan.Limit = DefaultLimit

	if rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			return apperr.Validation("Invalid page: %s", rawPage)
		}
		plan.Page = page
	}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 {
			return apperr.Validation("Invalid limit: %s", rawLimit)
		}
		plan.Limit = limit
	}

	plan.Skip = (plan.Page - 1) * plan.Limit
	return nil
}

// PageLink points at an adjacent result page.
type PageLink struct {
	Page int `json:"page"`
}

// Pagination is the window part of a list response. Next is present iff
// rows exist past this page, Prev iff rows were skipped.
type Pagination struct {
	Limit int       `json:"limit"`
	Next  *PageLink `json:"next,omitempty"`
	Prev  *PageLink `json:"prev,omitempty"`
}

// Paginate derives the next/prev links for a plan against the total number
// of matching rows.
func (p *Plan) Paginate(total int64) Pagination {
	pagination := Pagination{Limit: p.Limit}
	if int64(p.Page*p.Limit) < total {
		pagination.Next = &PageLink{Page: p.Page + 1}
	}
	if p.Skip > 0 {
		pagination.Prev = &PageLink{Page: p.Page - 1}
	}
	return pagination
}
