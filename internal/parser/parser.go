// Package parser turns one-line quick-capture input into structured records.
// Every capture line is a run of plain words mixed with prefixed tokens such
// as #tag; each record type decides which prefixes it understands.
package parser

import (
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// line is a capture line split into its words.
type line struct {
	words  []string
	tags   []string
	errors []string
}

// scan walks the fields of input, handing each prefixed token to handle.
// Tokens handle does not claim are kept as plain words.
func scan(input string, handle func(l *line, prefix byte, value string) bool) *line {
	l := &line{}
	for _, field := range strings.Fields(input) {
		if len(field) > 1 && handle != nil && handle(l, field[0], field[1:]) {
			continue
		}
		if len(field) > 1 && field[0] == '#' {
			if tags, ok := splitTags(field[1:]); ok {
				l.tags = append(l.tags, tags...)
				continue
			}
		}
		l.words = append(l.words, field)
	}
	return l
}

func (l *line) text() string {
	return strings.Join(l.words, " ")
}

func (l *line) fail(msg string) {
	l.errors = append(l.errors, msg)
}

// splitTags reads "a,b,c". It reports false when any part is not a valid
// name, so "#1." stays part of the text.
func splitTags(v string) ([]string, bool) {
	var tags []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !namePattern.MatchString(part) {
			return nil, false
		}
		tags = append(tags, part)
	}
	return tags, len(tags) > 0
}
