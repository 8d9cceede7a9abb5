package status

import (
	"errors"
	"testing"
)

func TestEveryDeclaredCodeResolves(t *testing.T) {
	wantCounts := map[Domain]int{
		DomainCompetition: 7,
		DomainEntry:       6,
		DomainResult:      5,
		DomainPayment:     6,
	}

	for _, domain := range Domains() {
		codes, err := Codes(domain)
		if err != nil {
			t.Fatalf("Codes(%s) error = %v", domain, err)
		}
		if len(codes) != wantCounts[domain] {
			t.Errorf("Codes(%s) = %d codes, want %d", domain, len(codes), wantCounts[domain])
		}
		for _, code := range codes {
			d, err := Lookup(domain, code)
			if err != nil {
				t.Errorf("Lookup(%s, %s) error = %v", domain, code, err)
				continue
			}
			if d.Label == "" {
				t.Errorf("Lookup(%s, %s) has empty label", domain, code)
			}
			if !d.Severity.Valid() {
				t.Errorf("Lookup(%s, %s) severity %q is not declared", domain, code, d.Severity)
			}
		}
	}
}

func TestTablesMatchDeclaredOrder(t *testing.T) {
	if len(competitionTable) != len(competitionOrder) {
		t.Errorf("competition table has %d entries, order has %d", len(competitionTable), len(competitionOrder))
	}
	if len(entryTable) != len(entryOrder) {
		t.Errorf("entry table has %d entries, order has %d", len(entryTable), len(entryOrder))
	}
	if len(resultTable) != len(resultOrder) {
		t.Errorf("result table has %d entries, order has %d", len(resultTable), len(resultOrder))
	}
	if len(paymentTable) != len(paymentOrder) {
		t.Errorf("payment table has %d entries, order has %d", len(paymentTable), len(paymentOrder))
	}
}

func TestEntryStatusLabels(t *testing.T) {
	tests := []struct {
		code     EntryStatus
		label    string
		severity Severity
	}{
		{EntryPending, "awaiting payment", SeverityWarning},
		{EntryCheckedIn, "checked in", SeverityInfo},
		{EntryConfirmed, "confirmed", SeveritySuccess},
		{EntryNoShow, "no show", SeverityError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got, err := tt.code.Display()
			if err != nil {
				t.Fatalf("Display() error = %v", err)
			}
			if got.Label != tt.label {
				t.Errorf("Label = %q, want %q", got.Label, tt.label)
			}
			if got.Severity != tt.severity {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.severity)
			}
		})
	}
}

func TestSharedLiteralResolvesPerDomain(t *testing.T) {
	entry := MustLookup(DomainEntry, "PENDING")
	payment := MustLookup(DomainPayment, "PENDING")
	if entry.Severity != SeverityWarning || payment.Severity != SeverityWarning {
		t.Errorf("PENDING severities = %q / %q, want warning for both", entry.Severity, payment.Severity)
	}

	entryCancelled := MustLookup(DomainEntry, "CANCELLED")
	competitionCancelled := MustLookup(DomainCompetition, "CANCELLED")
	if entryCancelled.Severity == competitionCancelled.Severity {
		t.Errorf("CANCELLED should be styled per domain, both got %q", entryCancelled.Severity)
	}
}

func TestLookupRejectsForeignCodes(t *testing.T) {
	tests := []struct {
		domain Domain
		code   string
	}{
		{DomainCompetition, "CHECKED_IN"},
		{DomainEntry, "DNS"},
		{DomainResult, "PENDING"},
		{DomainPayment, "REGISTRATION_OPEN"},
		{DomainEntry, "pending"},
		{DomainResult, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain)+"/"+tt.code, func(t *testing.T) {
			_, err := Lookup(tt.domain, tt.code)
			if !errors.Is(err, ErrUnknownStatusCode) {
				t.Fatalf("Lookup error = %v, want ErrUnknownStatusCode", err)
			}
			var uerr *UnknownStatusCodeError
			if !errors.As(err, &uerr) {
				t.Fatalf("error %T is not *UnknownStatusCodeError", err)
			}
			if uerr.Domain != tt.domain || uerr.Code != tt.code {
				t.Errorf("error fields = (%s, %q), want (%s, %q)", uerr.Domain, uerr.Code, tt.domain, tt.code)
			}
		})
	}
}

func TestTypedDisplayRejectsForeignCode(t *testing.T) {
	if _, err := ResultStatus("CONFIRMED").Display(); !errors.Is(err, ErrUnknownStatusCode) {
		t.Errorf("ResultStatus(CONFIRMED).Display() error = %v, want ErrUnknownStatusCode", err)
	}
}

func TestLookupUnknownDomain(t *testing.T) {
	if _, err := Lookup("heat", "OK"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("Lookup(heat) error = %v, want ErrUnknownDomain", err)
	}
	if _, err := Codes("heat"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("Codes(heat) error = %v, want ErrUnknownDomain", err)
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup did not panic on unknown code")
		}
	}()
	MustLookup(DomainPayment, "CHECKED_IN")
}
