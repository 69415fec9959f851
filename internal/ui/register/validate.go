package register

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

// minAge is the youngest age the service accepts at sign-up.
const minAge = 13

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return fmt.Errorf("enter a valid email address")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// validateBirthDate parses YYYY-MM-DD and enforces the minimum age.
func validateBirthDate(s string) error {
	_, err := parseBirthDate(s)
	return err
}

func parseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("birth date is required")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, use YYYY-MM-DD")
	}
	if t.After(time.Now()) {
		return time.Time{}, fmt.Errorf("birth date is in the future")
	}
	if age(t, time.Now()) < minAge {
		return time.Time{}, fmt.Errorf("you must be at least %d years old", minAge)
	}
	return t, nil
}

// age returns full years between birth and now.
func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// validatePassword enforces the minimum password shape: 8+ characters
// with at least one letter and one digit.
func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password needs at least one letter and one digit")
	}
	return nil
}

// validatePremiumCode accepts an empty code or one in the published
// 5-character format. Whether the code actually exists is checked
// against the server on submit.
func validatePremiumCode(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !model.IsValidCode(strings.ToUpper(s)) {
		return fmt.Errorf("codes are 5 letters or digits")
	}
	return nil
}
