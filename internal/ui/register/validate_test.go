package register

import (
	"testing"
	"time"
)

func TestParseBirthDateEnforcesMinimumAge(t *testing.T) {
	tooYoung := time.Now().AddDate(-minAge, 0, 1).Format("2006-01-02")
	if _, err := parseBirthDate(tooYoung); err == nil {
		t.Error("expected error for under-age birth date")
	}

	oldEnough := time.Now().AddDate(-minAge, 0, -1).Format("2006-01-02")
	if _, err := parseBirthDate(oldEnough); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseBirthDateRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"", "13/01/1990", "1990-13-40", "2999-01-01"} {
		if _, err := parseBirthDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestAgeCountsFullYears(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2013, 8, 29, 0, 0, 0, 0, time.UTC)
	if got := age(dayBefore, now); got != 12 {
		t.Errorf("age = %d, want 12", got)
	}

	onBirthday := time.Date(2013, 8, 28, 0, 0, 0, 0, time.UTC)
	if got := age(onBirthday, now); got != 13 {
		t.Errorf("age = %d, want 13", got)
	}
}

func TestValidatePassword(t *testing.T) {
	for _, bad := range []string{"short1", "lettersonly", "12345678"} {
		if err := validatePassword(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if err := validatePassword("correct horse 9"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePremiumCode(t *testing.T) {
	if err := validatePremiumCode(""); err != nil {
		t.Errorf("empty code should be allowed: %v", err)
	}
	if err := validatePremiumCode("ab2c9"); err != nil {
		t.Errorf("lowercase code should be normalized: %v", err)
	}
	for _, bad := range []string{"ABC", "ABCDEF", "AB-C9"} {
		if err := validatePremiumCode(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := validateEmail("user@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "user", "user@", "@example.com", "user@nodot"} {
		if err := validateEmail(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
