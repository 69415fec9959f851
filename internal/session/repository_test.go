package session

import (
	"context"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/tests/testutil"
)

type mapVault struct {
	tokens map[string]string
}

func newMapVault() *mapVault {
	return &mapVault{tokens: make(map[string]string)}
}

func (v *mapVault) GetToken(email string) (string, error) {
	tok, ok := v.tokens[email]
	if !ok {
		return "", nil
	}
	return tok, nil
}

func (v *mapVault) SetToken(email, token string) error {
	v.tokens[email] = token
	return nil
}

func (v *mapVault) DeleteToken(email string) error {
	delete(v.tokens, email)
	return nil
}

func newTestRepo(t *testing.T) (*Repository, *mapVault) {
	t.Helper()
	vault := newMapVault()
	return NewRepository(testutil.NewTestStore(t), vault), vault
}

func sessionAt(email string, loginAt time.Time) model.Session {
	return model.Session{
		Email:   email,
		User:    model.User{Email: email, Name: "Test"},
		LoginAt: loginAt,
	}
}

func TestUpsertMakesAccountActive(t *testing.T) {
	repo, vault := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sessionAt("a@example.com", time.Now()), "tok-a"); err != nil {
		t.Fatalf("upserting session: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active == nil || active.Email != "a@example.com" {
		t.Fatalf("active = %v, want a@example.com", active)
	}
	if vault.tokens["a@example.com"] != "tok-a" {
		t.Errorf("token = %q, want tok-a", vault.tokens["a@example.com"])
	}
}

func TestUpsertReplacesExistingAccount(t *testing.T) {
	repo, vault := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	if err := repo.Upsert(ctx, sessionAt("a@example.com", base), "tok-1"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, sessionAt("a@example.com", base.Add(time.Minute)), "tok-2"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	sessions, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("listing sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if vault.tokens["a@example.com"] != "tok-2" {
		t.Errorf("token = %q, want tok-2", vault.tokens["a@example.com"])
	}
}

func TestRemoveActiveClearsMarkerAndToken(t *testing.T) {
	repo, vault := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sessionAt("a@example.com", time.Now()), "tok-a"); err != nil {
		t.Fatalf("upserting session: %v", err)
	}
	if err := repo.Remove(ctx, "a@example.com"); err != nil {
		t.Fatalf("removing session: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active != nil {
		t.Errorf("active = %v, want nil", active)
	}
	if _, ok := vault.tokens["a@example.com"]; ok {
		t.Error("token still present after remove")
	}
}

func TestRemoveInactiveKeepsActiveMarker(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	if err := repo.Upsert(ctx, sessionAt("a@example.com", base), "tok-a"); err != nil {
		t.Fatalf("upserting a: %v", err)
	}
	if err := repo.Upsert(ctx, sessionAt("b@example.com", base.Add(time.Minute)), "tok-b"); err != nil {
		t.Fatalf("upserting b: %v", err)
	}

	if err := repo.Remove(ctx, "a@example.com"); err != nil {
		t.Fatalf("removing a: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active == nil || active.Email != "b@example.com" {
		t.Fatalf("active = %v, want b@example.com", active)
	}
}

func TestPromoteNextPicksMostRecentLogin(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	if err := repo.Upsert(ctx, sessionAt("old@example.com", base), "tok-old"); err != nil {
		t.Fatalf("upserting old: %v", err)
	}
	if err := repo.Upsert(ctx, sessionAt("new@example.com", base.Add(time.Hour)), "tok-new"); err != nil {
		t.Fatalf("upserting new: %v", err)
	}
	if err := repo.Upsert(ctx, sessionAt("active@example.com", base.Add(2*time.Hour)), "tok-act"); err != nil {
		t.Fatalf("upserting active: %v", err)
	}

	if err := repo.Remove(ctx, "active@example.com"); err != nil {
		t.Fatalf("removing active: %v", err)
	}

	next, err := repo.PromoteNext(ctx)
	if err != nil {
		t.Fatalf("promoting next: %v", err)
	}
	if next == nil || next.Email != "new@example.com" {
		t.Fatalf("promoted %v, want new@example.com", next)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active == nil || active.Email != "new@example.com" {
		t.Fatalf("active = %v, want new@example.com", active)
	}
}

func TestPromoteNextWithNoAccounts(t *testing.T) {
	repo, _ := newTestRepo(t)

	next, err := repo.PromoteNext(context.Background())
	if err != nil {
		t.Fatalf("promoting next: %v", err)
	}
	if next != nil {
		t.Errorf("promoted %v, want nil", next)
	}
}

func TestSetActiveRejectsUnknownAccount(t *testing.T) {
	repo, _ := newTestRepo(t)

	if err := repo.SetActive(context.Background(), "ghost@example.com"); err == nil {
		t.Fatal("expected error for unknown account")
	}
}

func TestSetActiveSwitchesAccounts(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	if err := repo.Upsert(ctx, sessionAt("a@example.com", base), "tok-a"); err != nil {
		t.Fatalf("upserting a: %v", err)
	}
	if err := repo.Upsert(ctx, sessionAt("b@example.com", base.Add(time.Minute)), "tok-b"); err != nil {
		t.Fatalf("upserting b: %v", err)
	}

	if err := repo.SetActive(ctx, "a@example.com"); err != nil {
		t.Fatalf("switching active: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active == nil || active.Email != "a@example.com" {
		t.Fatalf("active = %v, want a@example.com", active)
	}
}

func TestUpdateSnapshotKeepsTokenAndActive(t *testing.T) {
	repo, vault := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sessionAt("a@example.com", time.Now()), "tok-a"); err != nil {
		t.Fatalf("upserting session: %v", err)
	}

	updated := model.User{Email: "a@example.com", Name: "Renamed"}
	if err := repo.UpdateSnapshot(ctx, "a@example.com", updated); err != nil {
		t.Fatalf("updating snapshot: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("getting active session: %v", err)
	}
	if active == nil || active.User.Name != "Renamed" {
		t.Fatalf("active user = %+v, want Name Renamed", active)
	}
	if vault.tokens["a@example.com"] != "tok-a" {
		t.Errorf("token = %q, want tok-a", vault.tokens["a@example.com"])
	}
}
