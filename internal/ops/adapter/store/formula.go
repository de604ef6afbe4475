package store

import (
	"fmt"
	"strings"
)

// Formula helpers for the record store's filterByFormula syntax. Scanned codes
// are operator input, so string literals are always escaped before
// interpolation.

func escapeFormulaString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func fieldEquals(field, value string) string {
	return fmt.Sprintf("{%s} = '%s'", field, escapeFormulaString(value))
}

func fieldEndsWith(field, value string) string {
	esc := escapeFormulaString(value)
	return fmt.Sprintf("RIGHT({%s}, %d) = '%s'", field, len(value), esc)
}

func or(clauses ...string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return fmt.Sprintf("OR(%s)", strings.Join(clauses, ", "))
}

// trackingFormula matches a scanned code against every tracking field. Short
// codes are the last digits of a label, so they suffix-match; full codes
// match exactly.
func trackingFormula(code string, exact bool) string {
	clauses := make([]string, 0, len(trackingFields))
	for _, field := range trackingFields {
		if exact {
			clauses = append(clauses, fieldEquals(field, code))
		} else {
			clauses = append(clauses, fieldEndsWith(field, code))
		}
	}
	return or(clauses...)
}

func recordIDFormula(ids []string) string {
	clauses := make([]string, 0, len(ids))
	for _, id := range ids {
		clauses = append(clauses, fmt.Sprintf("RECORD_ID() = '%s'", escapeFormulaString(id)))
	}
	return or(clauses...)
}
