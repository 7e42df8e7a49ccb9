package search

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType represents the node attribute a condition looks at
type FieldType string

const (
	FieldTypeField FieldType = "type"
	FieldName      FieldType = "name"
	FieldID        FieldType = "id"
	FieldSection   FieldType = "section"
	FieldStatus    FieldType = "status"
	FieldContent   FieldType = "content"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals   Operator = "="
	OperatorPrefix   Operator = "prefix"
	OperatorContains Operator = "contains"
	OperatorAND      Operator = "AND"
	OperatorOR       Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    string
	Negate   bool
}

// Query represents a parsed search query. Logic holds one operator between
// each pair of neighbouring conditions and is evaluated left to right.
type Query struct {
	Conditions []Condition
	Logic      []Operator
	Raw        string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a query such as `type:slider AND NOT status:detached opacity`.
// Bare words search ids, names and descriptions.
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
		Logic:      []Operator{},
	}

	if err := p.parseTokens(p.tokenize(input), query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits the input on spaces outside quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func (p *Parser) parseTokens(tokens []string, query *Query) error {
	// Whether the previous token was an explicit AND/OR
	pendingLogic := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		negate := false

		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 || pendingLogic {
				return fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			pendingLogic = true
			continue
		case "NOT":
			i++
			if i >= len(tokens) {
				return fmt.Errorf("NOT operator requires a condition")
			}
			token = tokens[i]
			negate = true
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		cond.Negate = negate

		// Neighbouring conditions without an operator are ANDed
		if len(query.Conditions) > 0 && !pendingLogic {
			query.Logic = append(query.Logic, OperatorAND)
		}
		query.Conditions = append(query.Conditions, cond)
		pendingLogic = false
	}

	if pendingLogic {
		return fmt.Errorf("query ends with an operator")
	}
	return nil
}

func (p *Parser) parseCondition(token string) (Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return Condition{
			Field:    FieldContent,
			Operator: OperatorContains,
			Value:    p.unquote(token),
		}, nil
	}

	value := p.unquote(matches[2])
	switch field := FieldType(strings.ToLower(matches[1])); field {
	case FieldTypeField, FieldID:
		return Condition{Field: field, Operator: OperatorPrefix, Value: value}, nil
	case FieldName, FieldSection, FieldContent:
		return Condition{Field: field, Operator: OperatorContains, Value: value}, nil
	case FieldStatus:
		status := strings.ToLower(value)
		if status != "attached" && status != "detached" {
			return Condition{}, fmt.Errorf("invalid status %q (expected attached or detached)", value)
		}
		return Condition{Field: field, Operator: OperatorEquals, Value: status}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", matches[1])
	}
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
