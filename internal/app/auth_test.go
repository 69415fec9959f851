package app

import (
	"context"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/session"
	"github.com/nvu/mailterm/tests/testutil"
)

// newTestModel builds an app model over an in-memory store and a client
// pointed at a dead address, so any network round-trip fails fast.
func newTestModel(t *testing.T) (Model, *session.Repository, *testutil.MemoryVault) {
	t.Helper()

	st := testutil.NewTestStore(t)
	vault := testutil.NewMemoryVault()
	repo := session.NewRepository(st, vault)
	client := api.NewClient("http://127.0.0.1:1", time.Second)
	return New(client, repo, st, model.AppConfig{}), repo, vault
}

func TestSwitchAccountRestoresCachedSnapshotWithoutNetwork(t *testing.T) {
	m, repo, vault := newTestModel(t)
	testutil.SeedSession(t, m.store, vault, "a@example.com", "tok-a")
	testutil.SeedSession(t, m.store, vault, "b@example.com", "tok-b")
	m.account = "a@example.com"

	msg := m.switchAccount("b@example.com")()
	sw, ok := msg.(accountSwitchedMsg)
	if !ok {
		t.Fatalf("msg = %T, want accountSwitchedMsg", msg)
	}
	if sw.err != nil {
		t.Fatalf("switch failed: %v", sw.err)
	}
	if sw.needLogin {
		t.Fatal("needLogin = true, want switch from cached snapshot")
	}
	if sw.user == nil || sw.user.Email != "b@example.com" {
		t.Fatalf("user = %+v, want cached snapshot for b@example.com", sw.user)
	}
	if sw.token != "tok-b" {
		t.Errorf("token = %q, want tok-b", sw.token)
	}

	active, err := repo.Active(context.Background())
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if active == nil || active.Email != "b@example.com" {
		t.Fatalf("active = %+v, want b@example.com", active)
	}

	updated, _ := m.handleAccountSwitched(sw)
	um := updated.(Model)
	if um.account != "b@example.com" {
		t.Errorf("account = %q, want b@example.com", um.account)
	}
	if um.currentView != ViewList {
		t.Errorf("currentView = %v, want ViewList", um.currentView)
	}
	if um.user == nil || um.user.Email != "b@example.com" {
		t.Errorf("user = %+v, want b@example.com", um.user)
	}
	if got := um.client.Token(); got != "tok-b" {
		t.Errorf("client token = %q, want tok-b", got)
	}
}

func TestSwitchAccountUnknownAccountNeedsLogin(t *testing.T) {
	m, _, vault := newTestModel(t)
	testutil.SeedSession(t, m.store, vault, "a@example.com", "tok-a")
	m.account = "a@example.com"

	msg := m.switchAccount("ghost@example.com")()
	sw, ok := msg.(accountSwitchedMsg)
	if !ok {
		t.Fatalf("msg = %T, want accountSwitchedMsg", msg)
	}
	if !sw.needLogin {
		t.Fatalf("needLogin = false, want login for unknown account: %+v", sw)
	}
}

func TestSwitchAccountMissingTokenNeedsLogin(t *testing.T) {
	m, _, vault := newTestModel(t)
	testutil.SeedSession(t, m.store, vault, "a@example.com", "tok-a")
	testutil.SeedSession(t, m.store, vault, "b@example.com", "tok-b")
	delete(vault.Tokens, "b@example.com")
	m.account = "a@example.com"

	msg := m.switchAccount("b@example.com")()
	sw, ok := msg.(accountSwitchedMsg)
	if !ok {
		t.Fatalf("msg = %T, want accountSwitchedMsg", msg)
	}
	if !sw.needLogin {
		t.Fatalf("needLogin = false, want login when token is gone: %+v", sw)
	}
}

func TestSwitchAccountNoOpForCurrentAccount(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.account = "a@example.com"

	if cmd := m.switchAccount("a@example.com"); cmd != nil {
		t.Error("switching to the current account should be a no-op")
	}
	if cmd := m.switchAccount(""); cmd != nil {
		t.Error("switching to an empty email should be a no-op")
	}
}
