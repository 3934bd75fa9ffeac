// ABOUTME: Tests for root model routing, bootstrap, and forced sign-out
// ABOUTME: Drives Update with messages against an httptest backend

package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/auth"
	"github.com/krills/birthday-tracker/cli/internal/session"
)

const testToken = "token-abc"

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/me":
			json.NewEncoder(w).Encode(api.User{ID: "u1", Username: "kara", FirstName: "Kara"})
		case "/api/friends", "/api/friends/upcoming":
			json.NewEncoder(w).Encode([]api.Friend{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestApp(t *testing.T, token string) *App {
	t.Helper()
	server := newBackend(t)
	store := session.New(t.TempDir())
	if token != "" {
		if err := store.Save(token); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	client := api.New(server.URL, store)
	return NewApp(client, auth.NewManager(client, store))
}

func TestInitialScreenIsLoading(t *testing.T) {
	app := newTestApp(t, "")
	if app.screen != ScreenLoading {
		t.Errorf("screen = %v, want ScreenLoading", app.screen)
	}
	if app.View() == "" {
		t.Error("View should render during loading")
	}
}

func TestBootstrapWithoutTokenRoutesToLogin(t *testing.T) {
	app := newTestApp(t, "")

	msg := app.Init()()
	app.Update(msg)

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
}

func TestBootstrapWithValidTokenRoutesToDashboard(t *testing.T) {
	app := newTestApp(t, testToken)

	msg := app.Init()()
	_, cmd := app.Update(msg)

	if app.screen != ScreenDashboard {
		t.Errorf("screen = %v, want ScreenDashboard", app.screen)
	}
	if cmd == nil {
		t.Error("dashboard entry should trigger a friends load")
	}
}

func TestBootstrapWithStaleTokenRoutesToLogin(t *testing.T) {
	app := newTestApp(t, "stale-token")

	msg := app.Init()()
	app.Update(msg)

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
	if app.auth.User() != nil {
		t.Error("stale token should not leave a user behind")
	}
}

func TestDashboardLoadPopulatesData(t *testing.T) {
	app := newTestApp(t, testToken)
	app.Update(app.Init()())

	friends := []api.Friend{{ID: "f1", FirstName: "Amy", LastName: "B", BirthDate: "1990-01-01"}}
	app.Update(dashboardLoadedMsg{upcoming: friends, all: friends})

	if len(app.all) != 1 {
		t.Fatalf("all = %d, want 1", len(app.all))
	}
	if !app.dashScreen.Loaded() {
		t.Error("dashboard should be marked loaded")
	}
	if app.lastRefresh.IsZero() {
		t.Error("lastRefresh should be set")
	}
}

func TestUnauthorizedForcesSignIn(t *testing.T) {
	app := newTestApp(t, testToken)
	app.Update(app.Init()())
	if app.screen != ScreenDashboard {
		t.Fatalf("precondition: screen = %v, want ScreenDashboard", app.screen)
	}

	expired := &api.APIError{Kind: api.ErrBusiness, Message: "Unauthorized", Status: 401}
	app.Update(dashboardLoadedMsg{err: expired})

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
	if app.auth.User() != nil {
		t.Error("forced sign-out should clear the user")
	}
	if !strings.Contains(app.View(), sessionExpiredMessage) {
		t.Error("login screen should explain the expired session")
	}
}

func TestRepeatedUnauthorizedIsIdempotent(t *testing.T) {
	app := newTestApp(t, testToken)
	app.Update(app.Init()())

	expired := &api.APIError{Kind: api.ErrBusiness, Message: "Unauthorized", Status: 401}
	app.Update(dashboardLoadedMsg{err: expired})
	// A second in-flight request failing with 401 must not disturb the
	// login screen the user is already on.
	app.Update(dashboardLoadedMsg{err: expired})
	app.Update(friendDeletedMsg{err: expired})

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
}

func TestRegistrationSuccessShowsLoginNotice(t *testing.T) {
	app := newTestApp(t, "")
	app.Update(app.Init()())

	app.Update(registerResultMsg{username: "newuser"})

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
	if !strings.Contains(app.View(), "newuser") {
		t.Error("login screen should mention the created account")
	}
}

func TestFriendSavedReturnsToList(t *testing.T) {
	app := newTestApp(t, testToken)
	app.Update(app.Init()())

	_, cmd := app.Update(friendSavedMsg{created: true})

	if app.screen != ScreenFriends {
		t.Errorf("screen = %v, want ScreenFriends", app.screen)
	}
	if cmd == nil {
		t.Error("a successful save should trigger a reload")
	}
	if !strings.Contains(app.View(), "Friend added") {
		t.Error("list should show the added notice")
	}
}

func TestAccountDeletionSignsOut(t *testing.T) {
	app := newTestApp(t, testToken)
	app.Update(app.Init()())

	app.Update(accountDeletedMsg{})

	if app.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", app.screen)
	}
	if app.auth.User() != nil {
		t.Error("deleting the account should clear the user")
	}
	if app.all != nil || app.upcoming != nil {
		t.Error("cached friend lists should be dropped")
	}
}

func TestScreenConstantsAreDistinct(t *testing.T) {
	screens := []Screen{
		ScreenLoading, ScreenLogin, ScreenRegister,
		ScreenDashboard, ScreenFriends, ScreenFriendForm, ScreenProfile,
	}
	seen := make(map[Screen]bool)
	for _, s := range screens {
		if seen[s] {
			t.Fatalf("duplicate screen constant %v", s)
		}
		seen[s] = true
	}
}
