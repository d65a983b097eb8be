// Package query normalizes raw search input into a structured query.
// Parsing never fails: ambiguous input degrades to a plain full-text query
// with no inferred filters.
package query

import (
	"fmt"
	"strings"
	"time"

	"beacon_backend/internal/search/domain"
)

// typeAliases maps free-text keywords to searchable types. Both singular and
// plural forms are recognized.
var typeAliases = map[string]domain.SearchableType{
	"customer":     domain.TypeCustomer,
	"customers":    domain.TypeCustomer,
	"account":      domain.TypeCustomer,
	"accounts":     domain.TypeCustomer,
	"stakeholder":  domain.TypeStakeholder,
	"stakeholders": domain.TypeStakeholder,
	"contact":      domain.TypeStakeholder,
	"contacts":     domain.TypeStakeholder,
	"email":        domain.TypeEmail,
	"emails":       domain.TypeEmail,
	"mail":         domain.TypeEmail,
	"meeting":      domain.TypeMeeting,
	"meetings":     domain.TypeMeeting,
	"document":     domain.TypeDocument,
	"documents":    domain.TypeDocument,
	"doc":          domain.TypeDocument,
	"docs":         domain.TypeDocument,
	"playbook":     domain.TypePlaybook,
	"playbooks":    domain.TypePlaybook,
	"task":         domain.TypeTask,
	"tasks":        domain.TypeTask,
	"todo":         domain.TypeTask,
	"todos":        domain.TypeTask,
	"note":         domain.TypeNote,
	"notes":        domain.TypeNote,
	"activity":     domain.TypeActivity,
	"activities":   domain.TypeActivity,
}

// typeIntentLabel is the human-readable plural used in the intent string.
var typeIntentLabel = map[domain.SearchableType]string{
	domain.TypeCustomer:    "Customers",
	domain.TypeStakeholder: "Stakeholders",
	domain.TypeEmail:       "Emails",
	domain.TypeMeeting:     "Meetings",
	domain.TypeDocument:    "Documents",
	domain.TypePlaybook:    "Playbooks",
	domain.TypeTask:        "Tasks",
	domain.TypeNote:        "Notes",
	domain.TypeActivity:    "Activity",
}

// Parse turns raw keystrokes plus the explicit filter-panel state into a
// ParsedQuery. Explicit filters always win over inferred ones on conflict.
func Parse(rawText string, explicit domain.Filters) domain.ParsedQuery {
	return ParseAt(rawText, explicit, time.Now())
}

// ParseAt is Parse with an injectable reference time for date-word inference.
func ParseAt(rawText string, explicit domain.Filters, now time.Time) domain.ParsedQuery {
	text := normalize(rawText)

	parsed := domain.ParsedQuery{
		Text:    text,
		Filters: explicit,
	}
	if text == "" {
		parsed.Terms = []string{}
		return parsed
	}

	tokens := strings.Fields(strings.ToLower(text))

	inferredTypes, consumed := inferTypes(tokens)
	from := inferFrom(tokens, consumed)
	topic := inferTopic(tokens, consumed)
	dateFrom, dateTo := inferDateRange(tokens, consumed, now)

	// Explicit filters take precedence: inferred values apply only where the
	// user set nothing in the filter panel.
	if len(explicit.Types) == 0 && len(inferredTypes) > 0 {
		parsed.Filters.Types = inferredTypes
	}
	if explicit.DateFrom == nil && explicit.DateTo == nil && dateFrom != nil {
		parsed.Filters.DateFrom = dateFrom
		parsed.Filters.DateTo = dateTo
	}

	parsed.Terms = remainingTerms(tokens, consumed)
	parsed.Intent = composeIntent(parsed.Filters.Types, from, topic, dateFrom != nil && explicit.DateFrom == nil, tokens, consumed)

	return parsed
}

// normalize trims and collapses internal whitespace.
func normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func inferTypes(tokens []string) ([]domain.SearchableType, map[int]bool) {
	consumed := make(map[int]bool)
	var types []domain.SearchableType
	seen := make(map[domain.SearchableType]bool)

	for i, tok := range tokens {
		t, ok := typeAliases[tok]
		if !ok {
			continue
		}
		consumed[i] = true
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, consumed
}

// inferFrom captures the token following a "from" connector, e.g.
// "emails from sarah". The name stays in the term list so the literal query
// still matches it.
func inferFrom(tokens []string, consumed map[int]bool) string {
	for i, tok := range tokens {
		if tok != "from" || i+1 >= len(tokens) {
			continue
		}
		if consumed[i+1] {
			continue
		}
		consumed[i] = true
		return tokens[i+1]
	}
	return ""
}

// inferTopic captures the token(s) following an "about" connector.
func inferTopic(tokens []string, consumed map[int]bool) string {
	for i, tok := range tokens {
		if tok != "about" || i+1 >= len(tokens) {
			continue
		}
		if consumed[i+1] {
			continue
		}
		consumed[i] = true
		return strings.Join(unconsumedFrom(tokens, consumed, i+1), " ")
	}
	return ""
}

func unconsumedFrom(tokens []string, consumed map[int]bool, start int) []string {
	var out []string
	for i := start; i < len(tokens); i++ {
		if !consumed[i] {
			out = append(out, tokens[i])
		}
	}
	return out
}

// inferDateRange recognizes relative date words and converts them to a
// concrete range against the reference time.
func inferDateRange(tokens []string, consumed map[int]bool, now time.Time) (*time.Time, *time.Time) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	today := day(now)

	for i, tok := range tokens {
		switch tok {
		case "today":
			consumed[i] = true
			from := today
			return &from, nil
		case "yesterday":
			consumed[i] = true
			from := today.AddDate(0, 0, -1)
			to := today
			return &from, &to
		case "week", "month":
			if i == 0 {
				continue
			}
			qualifier := tokens[i-1]
			if qualifier != "this" && qualifier != "last" {
				continue
			}
			consumed[i] = true
			consumed[i-1] = true

			if tok == "week" {
				weekStart := today.AddDate(0, 0, -int(today.Weekday()))
				if qualifier == "this" {
					return &weekStart, nil
				}
				from := weekStart.AddDate(0, 0, -7)
				return &from, &weekStart
			}

			monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
			if qualifier == "this" {
				return &monthStart, nil
			}
			from := monthStart.AddDate(0, -1, 0)
			return &from, &monthStart
		}
	}
	return nil, nil
}

// remainingTerms returns the tokens not consumed by filter inference, which
// drive full-text matching and highlighting.
func remainingTerms(tokens []string, consumed map[int]bool) []string {
	terms := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		if tok == "from" || tok == "about" {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// composeIntent builds the advisory intent string surfaced to the user.
// Empty when nothing was inferred, so plain queries show no intent line.
func composeIntent(types []domain.SearchableType, from, topic string, dated bool, tokens []string, consumed map[int]bool) string {
	anyConsumed := dated || from != "" || topic != ""
	for i := range tokens {
		if consumed[i] {
			anyConsumed = true
			break
		}
	}
	if !anyConsumed {
		return ""
	}

	subject := "Everything"
	if len(types) == 1 {
		if label, ok := typeIntentLabel[types[0]]; ok {
			subject = label
		}
	} else if len(types) > 1 {
		labels := make([]string, 0, len(types))
		for _, t := range types {
			if label, ok := typeIntentLabel[t]; ok {
				labels = append(labels, label)
			}
		}
		subject = strings.Join(labels, " and ")
	}

	intent := subject
	if from != "" {
		intent += fmt.Sprintf(" from '%s'", from)
	}
	if topic != "" {
		intent += fmt.Sprintf(" mentioning '%s'", topic)
	}
	if dated {
		intent += " in the selected period"
	}
	return intent
}
