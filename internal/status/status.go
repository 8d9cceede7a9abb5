// Package status holds the closed status taxonomies of the swim-meet domain.
//
// Each domain (competition, entry, result, payment) owns a disjoint set of
// status codes and its own label table. Lookups are always keyed by
// (domain, code); there is no flat cross-domain status enum, because the
// same literal (for example "PENDING") means different things in the entry
// and payment domains.
//
// Every code declared in a domain has an entry. A code outside the domain's
// set is a contract violation and yields ErrUnknownStatusCode rather than a
// blank or default label.
package status

import (
	"errors"
	"fmt"
)

// Severity is the visual category used to colour a status badge.
type Severity string

const (
	SeverityDefault Severity = "default"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityNeutral Severity = "neutral"
)

// Severities lists every severity in display order.
func Severities() []Severity {
	return []Severity{
		SeverityDefault,
		SeveritySuccess,
		SeverityWarning,
		SeverityError,
		SeverityInfo,
		SeverityNeutral,
	}
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityDefault, SeveritySuccess, SeverityWarning, SeverityError, SeverityInfo, SeverityNeutral:
		return true
	}
	return false
}

// Domain names one closed status taxonomy.
type Domain string

const (
	DomainCompetition Domain = "competition"
	DomainEntry       Domain = "entry"
	DomainResult      Domain = "result"
	DomainPayment     Domain = "payment"
)

// Domains lists the four status domains in display order.
func Domains() []Domain {
	return []Domain{DomainCompetition, DomainEntry, DomainResult, DomainPayment}
}

// Display is what a status code resolves to: a human label and a severity.
type Display struct {
	Label    string
	Severity Severity
}

// ErrUnknownStatusCode is matched (via errors.Is) by every lookup failure.
var ErrUnknownStatusCode = errors.New("unknown status code")

// UnknownStatusCodeError reports a code that is not part of a domain.
type UnknownStatusCodeError struct {
	Domain Domain
	Code   string
}

func (e *UnknownStatusCodeError) Error() string {
	if e.Domain == "" {
		return fmt.Sprintf("unknown status code %q", e.Code)
	}
	return fmt.Sprintf("unknown %s status code %q", e.Domain, e.Code)
}

// Is makes errors.Is(err, ErrUnknownStatusCode) hold.
func (e *UnknownStatusCodeError) Is(target error) bool {
	return target == ErrUnknownStatusCode
}

// ErrUnknownDomain is returned by Lookup and Codes for an undeclared domain.
var ErrUnknownDomain = errors.New("unknown status domain")

// Lookup resolves a code within a domain.
func Lookup(domain Domain, code string) (Display, error) {
	switch domain {
	case DomainCompetition:
		return CompetitionStatus(code).Display()
	case DomainEntry:
		return EntryStatus(code).Display()
	case DomainResult:
		return ResultStatus(code).Display()
	case DomainPayment:
		return PaymentStatus(code).Display()
	default:
		return Display{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
}

// MustLookup is Lookup for codes known at compile time. It panics on an
// unknown code.
func MustLookup(domain Domain, code string) Display {
	d, err := Lookup(domain, code)
	if err != nil {
		panic(err)
	}
	return d
}

// Codes returns the declared codes of a domain in declaration order.
func Codes(domain Domain) ([]string, error) {
	var out []string
	switch domain {
	case DomainCompetition:
		for _, c := range competitionOrder {
			out = append(out, string(c))
		}
	case DomainEntry:
		for _, c := range entryOrder {
			out = append(out, string(c))
		}
	case DomainResult:
		for _, c := range resultOrder {
			out = append(out, string(c))
		}
	case DomainPayment:
		for _, c := range paymentOrder {
			out = append(out, string(c))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	return out, nil
}

func unknown(domain Domain, code string) error {
	return &UnknownStatusCodeError{Domain: domain, Code: code}
}
