package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Transaction types.
const (
	Income  = "income"
	Expense = "expense"
)

// DefaultCategory is used when a transaction names none.
const DefaultCategory = "other"

var (
	ErrNoAmount      = errors.New("amount is required")
	ErrInvalidAmount = errors.New("amount must be a positive whole number, e.g. 25000, 25,000 or 25k")
)

// ParsedTransaction is a ledger entry captured from a single line.
type ParsedTransaction struct {
	Type     string
	Amount   int64
	Category string
	Note     string
}

// ParseTransaction reads "[+|-]amount description #category". A leading +
// records income; anything else is an expense. The first tag is the category.
func ParseTransaction(input string) (ParsedTransaction, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ParsedTransaction{}, ErrNoAmount
	}

	out := ParsedTransaction{Type: Expense, Category: DefaultCategory}
	raw := fields[0]
	switch raw[0] {
	case '+':
		out.Type = Income
		raw = raw[1:]
	case '-':
		raw = raw[1:]
	}

	amount, err := ParseAmount(raw)
	if err != nil {
		return ParsedTransaction{}, err
	}
	out.Amount = amount

	l := scan(strings.Join(fields[1:], " "), nil)
	if len(l.tags) > 0 {
		out.Category = strings.ToLower(l.tags[0])
	}
	out.Note = l.text()
	return out, nil
}

// ParseAmount reads a positive whole amount. Commas and underscores group
// digits and a k suffix multiplies by a thousand.
func ParseAmount(s string) (int64, error) {
	s = strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s))
	mult := int64(1)
	if n := len(s); n > 0 && (s[n-1] == 'k' || s[n-1] == 'K') {
		mult = 1000
		s = s[:n-1]
	}
	if s == "" {
		return 0, ErrNoAmount
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 || v > (1<<53)/mult {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v * mult, nil
}

// FormatAmount renders an amount with comma thousands separators.
func FormatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.FormatInt(v, 10)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
