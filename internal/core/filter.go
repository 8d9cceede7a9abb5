package core

import (
	"strings"
	"time"
	"unicode"
)

// Filter values shared by the team and gender selects.
const (
	FilterAll = "all"
	TeamNone  = "none"
)

// SwimmerFilter narrows a roster. Empty fields behave like FilterAll.
type SwimmerFilter struct {
	Search string
	Team   string
	Gender string
}

// Active reports whether any predicate would drop a swimmer.
func (f SwimmerFilter) Active() bool {
	return strings.TrimSpace(f.Search) != "" ||
		(f.Team != "" && f.Team != FilterAll) ||
		(f.Gender != "" && f.Gender != FilterAll)
}

// Match reports whether s passes every predicate. Search matches the
// swimmer name or the team name, case-insensitively.
func (f SwimmerFilter) Match(s Swimmer) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.TeamName()), q) {
			return false
		}
	}

	switch f.Team {
	case "", FilterAll:
	case TeamNone:
		if s.TeamID != "" {
			return false
		}
	default:
		if s.TeamID != f.Team {
			return false
		}
	}

	switch f.Gender {
	case "", FilterAll:
	default:
		if string(s.GenderCode) != f.Gender {
			return false
		}
	}
	return true
}

// FilterSwimmers returns the swimmers that match f, in input order.
func FilterSwimmers(list []Swimmer, f SwimmerFilter) []Swimmer {
	if !f.Active() {
		return list
	}
	out := make([]Swimmer, 0, len(list))
	for _, s := range list {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Age returns the completed years between birth and now.
func Age(birth, now time.Time) int {
	if birth.IsZero() || now.Before(birth) {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// FormatBirthDate renders a birth date as yyyy/MM/dd.
func FormatBirthDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006/01/02")
}

// Initials returns up to two upper-cased initials of name, one per word.
// A single-word name yields its first letter.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		out = append(out, unicode.ToUpper(r[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
