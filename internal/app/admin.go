package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
	adminview "github.com/nvu/mailterm/internal/ui/admin"
	premiumview "github.com/nvu/mailterm/internal/ui/premium"
)

// adminPageSize is the user directory page length. The directory is
// small enough that a single page covers typical installs.
const adminPageSize = 100

func (m Model) loadUsers() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		users, total, err := client.ListUsers(ctx, 1, adminPageSize)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminview.UsersLoadedMsg{Users: users, Total: total}
	}
}

func (m Model) updateUserRole(id string, role model.Role) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := client.UpdateUserRole(ctx, id, role); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "role updated", reloadUsers: true}
	}
}

func (m Model) updateUserStatus(id string, status model.Status) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := client.UpdateUserStatus(ctx, id, status); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "status updated", reloadUsers: true}
	}
}

func (m Model) deleteUser(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteUser(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "user deleted", reloadUsers: true}
	}
}

func (m Model) loadPremium() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		domains, err := client.ListPremium(ctx)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return premiumview.DomainsLoadedMsg{Domains: domains}
	}
}

// createPremium generates a redemption code unique among the existing
// domains before registering the new one.
func (m Model) createPremium(domain model.PremiumDomain) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		existing, err := client.ListPremium(ctx)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		domain.Code = model.GenerateUniqueCode(existing)

		if _, err := client.CreatePremium(ctx, domain); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "plan created", reloadPremium: true}
	}
}

func (m Model) updatePremium(domain model.PremiumDomain) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := client.UpdatePremium(ctx, domain); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "plan updated", reloadPremium: true}
	}
}

func (m Model) togglePremium(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := client.TogglePremium(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{reloadPremium: true}
	}
}

func (m Model) deletePremium(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeletePremium(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{note: "plan deleted", reloadPremium: true}
	}
}

func (m Model) handleAdminDone(msg adminDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	if msg.note != "" {
		m.statusMsg = msg.note
	}

	switch {
	case msg.reloadUsers:
		return m, m.loadUsers()
	case msg.reloadPremium:
		return m, m.loadPremium()
	}
	return m, nil
}
