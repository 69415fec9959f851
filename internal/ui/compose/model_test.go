package compose

import (
	"testing"

	"github.com/nvu/mailterm/internal/model"
)

func TestParseAddressesBareAndNamed(t *testing.T) {
	got := parseAddresses("alice@example.com, Bob Jones <bob@example.com>")
	if len(got) != 2 {
		t.Fatalf("got %d addresses, want 2", len(got))
	}
	if got[0] != (model.Address{Email: "alice@example.com"}) {
		t.Errorf("first = %+v", got[0])
	}
	if got[1] != (model.Address{Name: "Bob Jones", Email: "bob@example.com"}) {
		t.Errorf("second = %+v", got[1])
	}
}

func TestParseAddressesSkipsEmptyEntries(t *testing.T) {
	got := parseAddresses("alice@example.com, , ")
	if len(got) != 1 {
		t.Fatalf("got %d addresses, want 1", len(got))
	}
}

func TestValidateRecipientsRejectsEmpty(t *testing.T) {
	if err := validateRecipients("  "); err == nil {
		t.Fatal("expected error for empty recipient list")
	}
}

func TestValidateRecipientsRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"not-an-address", "@example.com", "a@", "a b@example.com"} {
		if err := validateRecipients(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidateOptionalAddressesAllowsEmpty(t *testing.T) {
	if err := validateOptionalAddresses(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseScheduleTime(t *testing.T) {
	at, err := parseScheduleTime("2026-09-01 08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.Hour() != 8 || at.Minute() != 30 {
		t.Errorf("parsed %v", at)
	}

	if _, err := parseScheduleTime("tomorrow"); err == nil {
		t.Error("expected error for unparseable time")
	}
	if _, err := parseScheduleTime(""); err == nil {
		t.Error("expected error for empty time")
	}
}

func TestReplySubjectAddsPrefixOnce(t *testing.T) {
	if got := replySubject("Weekly report"); got != "Re: Weekly report" {
		t.Errorf("got %q", got)
	}
	if got := replySubject("Re: Weekly report"); got != "Re: Weekly report" {
		t.Errorf("got %q", got)
	}
	if got := replySubject("RE: Weekly report"); got != "RE: Weekly report" {
		t.Errorf("got %q", got)
	}
}
