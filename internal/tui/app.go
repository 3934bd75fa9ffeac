// ABOUTME: Root bubbletea model wiring screens, auth state, and backend calls
// ABOUTME: Owns navigation, session bootstrap, and forced sign-out on expired tokens

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/auth"
	"github.com/krills/birthday-tracker/cli/internal/tui/dashboard"
	"github.com/krills/birthday-tracker/cli/internal/tui/debuglog"
	"github.com/krills/birthday-tracker/cli/internal/tui/friendform"
	"github.com/krills/birthday-tracker/cli/internal/tui/friends"
	"github.com/krills/birthday-tracker/cli/internal/tui/icons"
	"github.com/krills/birthday-tracker/cli/internal/tui/login"
	"github.com/krills/birthday-tracker/cli/internal/tui/profile"
	"github.com/krills/birthday-tracker/cli/internal/tui/register"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
)

// Screen identifies the active screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenDashboard
	ScreenFriends
	ScreenFriendForm
	ScreenProfile
)

const sessionExpiredMessage = "Your session has expired. Please sign in again."

// Internal messages carrying backend results
type bootstrappedMsg struct{}

type loginResultMsg struct {
	err *api.APIError
}

type registerResultMsg struct {
	username string
	err      *api.APIError
}

type dashboardLoadedMsg struct {
	upcoming []api.Friend
	all      []api.Friend
	err      *api.APIError
}

type friendSavedMsg struct {
	created bool
	err     *api.APIError
}

type friendDeletedMsg struct {
	err *api.APIError
}

type profileSavedMsg struct {
	err *api.APIError
}

type passwordChangedMsg struct {
	err *api.APIError
}

type accountDeletedMsg struct {
	err *api.APIError
}

// App is the root TUI model
type App struct {
	client *api.Client
	auth   *auth.Manager

	screen Screen

	loginScreen    *login.Model
	registerScreen *register.Model
	dashScreen     *dashboard.Model
	friendsScreen  *friends.Model
	formScreen     *friendform.Model
	profileScreen  *profile.Model

	// friend lists shared between dashboard and friends screens
	upcoming []api.Friend
	all      []api.Friend

	lastRefresh time.Time
	width       int
	height      int
}

// NewApp creates the root model
func NewApp(client *api.Client, authMgr *auth.Manager) *App {
	return &App{
		client: client,
		auth:   authMgr,
		screen: ScreenLoading,
		width:  100,
		height: 30,
	}
}

// Init kicks off the session bootstrap
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		a.auth.Bootstrap(context.Background())
		return bootstrappedMsg{}
	}
}

// Update handles all messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case bootstrappedMsg:
		if user := a.auth.User(); user != nil {
			debuglog.Log("bootstrap: signed in as %s", user.Username)
			return a, a.showDashboard()
		}
		debuglog.Log("bootstrap: no valid session")
		return a, a.showLogin("")

	case loginResultMsg:
		if msg.err != nil {
			debuglog.Error("login", msg.err)
			a.loginScreen.SetError(msg.err)
			return a, nil
		}
		return a, a.showDashboard()

	case registerResultMsg:
		if msg.err != nil {
			debuglog.Error("register", msg.err)
			a.registerScreen.SetError(msg.err)
			return a, nil
		}
		cmd := a.showLogin(fmt.Sprintf("Account %s created. Please sign in.", msg.username))
		return a, cmd

	case dashboardLoadedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			debuglog.Error("load friends", msg.err)
			if a.screen == ScreenFriends {
				a.friendsScreen.SetError(msg.err.Message)
			}
			return a, nil
		}
		a.upcoming = msg.upcoming
		a.all = msg.all
		a.lastRefresh = time.Now()
		if a.dashScreen != nil {
			a.dashScreen.SetData(a.upcoming, a.all)
		}
		if a.friendsScreen != nil {
			a.friendsScreen.SetFriends(a.all)
		}
		return a, nil

	case friendSavedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			a.formScreen.SetError(msg.err)
			return a, nil
		}
		notice := "Friend updated"
		if msg.created {
			notice = "Friend added"
		}
		a.screen = ScreenFriends
		a.ensureFriendsScreen()
		a.friendsScreen.SetNotice(notice)
		return a, a.loadFriends()

	case friendDeletedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			a.friendsScreen.SetError(msg.err.Message)
			return a, nil
		}
		a.friendsScreen.SetNotice("Friend deleted")
		return a, a.loadFriends()

	case profileSavedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			a.profileScreen.SetError(msg.err)
			return a, nil
		}
		a.profileScreen.SetUser(a.auth.User(), "Profile updated")
		return a, nil

	case passwordChangedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			a.profileScreen.SetError(msg.err)
			return a, nil
		}
		a.profileScreen.Done("Password changed")
		return a, nil

	case accountDeletedMsg:
		if msg.err != nil {
			if cmd, handled := a.handleUnauthorized(msg.err); handled {
				return a, cmd
			}
			a.profileScreen.SetError(msg.err)
			return a, nil
		}
		a.auth.Logout()
		a.reset()
		return a, a.showLogin("Your account has been deleted.")

	// Screen-emitted messages
	case login.SubmittedMsg:
		return a, a.loginCmd(msg.Username, msg.Password)
	case login.SwitchToRegisterMsg:
		return a, a.showRegister()
	case register.SubmittedMsg:
		return a, a.registerCmd(msg.Req)
	case register.SwitchToLoginMsg:
		return a, a.showLogin("")
	case friends.AddMsg:
		a.screen = ScreenFriendForm
		a.formScreen = friendform.New(a.width)
		return a, a.formScreen.Init()
	case friends.EditMsg:
		a.screen = ScreenFriendForm
		a.formScreen = friendform.NewEdit(msg.Friend, a.width)
		return a, a.formScreen.Init()
	case friends.DeleteMsg:
		return a, a.deleteFriendCmd(msg.ID)
	case friends.RefreshMsg:
		return a, a.loadFriends()
	case friends.BackMsg:
		return a, a.showDashboard()
	case friendform.CompletedMsg:
		return a, a.saveFriendCmd(msg.ID, msg.Req)
	case friendform.CancelledMsg:
		a.screen = ScreenFriends
		a.ensureFriendsScreen()
		return a, nil
	case profile.SaveProfileMsg:
		return a, a.saveProfileCmd(msg.Req)
	case profile.ChangePasswordMsg:
		return a, a.changePasswordCmd(msg.Req)
	case profile.DeleteAccountMsg:
		return a, a.deleteAccountCmd()
	case profile.BackMsg:
		return a, a.showDashboard()
	}

	return a.updateScreen(msg)
}

// updateScreen forwards input to the active screen
func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		a.loginScreen, cmd = a.loginScreen.Update(msg)
	case ScreenRegister:
		a.registerScreen, cmd = a.registerScreen.Update(msg)
	case ScreenDashboard:
		return a.updateDashboard(msg)
	case ScreenFriends:
		a.friendsScreen, cmd = a.friendsScreen.Update(msg)
	case ScreenFriendForm:
		a.formScreen, cmd = a.formScreen.Update(msg)
	case ScreenProfile:
		a.profileScreen, cmd = a.profileScreen.Update(msg)
	}
	return a, cmd
}

// updateDashboard handles dashboard navigation keys
func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q":
		return a, tea.Quit
	case "f":
		a.screen = ScreenFriends
		a.ensureFriendsScreen()
		if a.all == nil {
			return a, a.loadFriends()
		}
		return a, nil
	case "p":
		a.screen = ScreenProfile
		a.profileScreen = profile.New(a.auth.User(), a.width)
		return a, nil
	case "r":
		return a, a.loadFriends()
	case "L":
		a.auth.Logout()
		a.reset()
		return a, a.showLogin("Signed out.")
	}
	return a, nil
}

// Navigation helpers

func (a *App) showLogin(notice string) tea.Cmd {
	a.screen = ScreenLogin
	a.loginScreen = login.New(a.width)
	if notice != "" {
		a.loginScreen.SetNotice(notice)
	}
	return a.loginScreen.Init()
}

func (a *App) showRegister() tea.Cmd {
	a.screen = ScreenRegister
	a.registerScreen = register.New(a.width)
	return a.registerScreen.Init()
}

func (a *App) showDashboard() tea.Cmd {
	a.screen = ScreenDashboard
	a.dashScreen = dashboard.New(a.auth.User(), a.width, a.height)
	if a.all != nil {
		a.dashScreen.SetData(a.upcoming, a.all)
	}
	return a.loadFriends()
}

func (a *App) ensureFriendsScreen() {
	if a.friendsScreen == nil {
		a.friendsScreen = friends.New(a.all, a.width, a.height)
	}
}

// reset drops all authenticated state after sign-out
func (a *App) reset() {
	a.upcoming = nil
	a.all = nil
	a.dashScreen = nil
	a.friendsScreen = nil
	a.formScreen = nil
	a.profileScreen = nil
}

// handleUnauthorized routes an expired session to the sign-in screen.
// Repeated 401s while already on an auth screen are ignored.
func (a *App) handleUnauthorized(err *api.APIError) (tea.Cmd, bool) {
	if !err.Unauthorized() {
		return nil, false
	}
	if a.screen == ScreenLogin || a.screen == ScreenRegister {
		return nil, true
	}
	debuglog.Warn("session expired, forcing sign-in")
	a.auth.Logout()
	a.reset()
	cmd := a.showLogin("")
	a.loginScreen.SetError(&api.APIError{
		Kind:    api.ErrBusiness,
		Message: sessionExpiredMessage,
		Status:  401,
	})
	return cmd, true
}

// Backend commands

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := a.client.Login(ctx, &api.LoginRequest{
			Username: username,
			Password: password,
		})
		if err != nil {
			return loginResultMsg{err: api.NormalizeError(err)}
		}
		if err := a.auth.Login(ctx, resp.Token); err != nil {
			return loginResultMsg{err: api.NormalizeError(err)}
		}
		if a.auth.User() == nil {
			return loginResultMsg{err: &api.APIError{
				Kind:    api.ErrBusiness,
				Message: "Signed in, but the profile could not be loaded. Please try again.",
				Status:  401,
			}}
		}
		return loginResultMsg{}
	}
}

func (a *App) registerCmd(req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.Register(context.Background(), &req)
		if err != nil {
			return registerResultMsg{err: api.NormalizeError(err)}
		}
		return registerResultMsg{username: req.Username}
	}
}

// loadFriends fetches the upcoming and full lists in parallel
func (a *App) loadFriends() tea.Cmd {
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())

		var upcoming, all []api.Friend
		g.Go(func() error {
			var err error
			upcoming, err = a.client.UpcomingFriends(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			all, err = a.client.Friends(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			return dashboardLoadedMsg{err: api.NormalizeError(err)}
		}
		return dashboardLoadedMsg{upcoming: upcoming, all: all}
	}
}

func (a *App) saveFriendCmd(id string, req api.FriendRequest) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == "" {
			_, err = a.client.CreateFriend(context.Background(), &req)
		} else {
			_, err = a.client.UpdateFriend(context.Background(), id, &req)
		}
		if err != nil {
			return friendSavedMsg{created: id == "", err: api.NormalizeError(err)}
		}
		return friendSavedMsg{created: id == ""}
	}
}

func (a *App) deleteFriendCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteFriend(context.Background(), id); err != nil {
			return friendDeletedMsg{err: api.NormalizeError(err)}
		}
		return friendDeletedMsg{}
	}
}

func (a *App) saveProfileCmd(req api.ProfileRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := a.client.UpdateProfile(ctx, &req); err != nil {
			return profileSavedMsg{err: api.NormalizeError(err)}
		}
		// Refetch so the cached user reflects what the backend stored
		a.auth.RefreshUser(ctx)
		return profileSavedMsg{}
	}
}

func (a *App) changePasswordCmd(req api.ChangePasswordRequest) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.ChangePassword(context.Background(), &req); err != nil {
			return passwordChangedMsg{err: api.NormalizeError(err)}
		}
		return passwordChangedMsg{}
	}
}

func (a *App) deleteAccountCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteAccount(context.Background()); err != nil {
			return accountDeletedMsg{err: api.NormalizeError(err)}
		}
		return accountDeletedMsg{}
	}
}

func (a *App) propagateSize() {
	if a.loginScreen != nil {
		a.loginScreen.SetSize(a.width)
	}
	if a.registerScreen != nil {
		a.registerScreen.SetSize(a.width)
	}
	if a.dashScreen != nil {
		a.dashScreen.SetSize(a.width, a.height)
	}
	if a.friendsScreen != nil {
		a.friendsScreen.SetSize(a.width, a.height)
	}
	if a.formScreen != nil {
		a.formScreen.SetSize(a.width)
	}
	if a.profileScreen != nil {
		a.profileScreen.SetSize(a.width)
	}
}

// View renders the active screen inside the application frame
func (a *App) View() string {
	var body string
	switch a.screen {
	case ScreenLoading:
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			styles.Subtitle.Render("Checking your session..."))
	case ScreenLogin:
		body = a.loginScreen.View()
	case ScreenRegister:
		body = a.registerScreen.View()
	case ScreenDashboard:
		body = a.dashScreen.View()
	case ScreenFriends:
		body = a.friendsScreen.View()
	case ScreenFriendForm:
		body = a.formScreen.View()
	case ScreenProfile:
		body = a.profileScreen.View()
	}

	return a.renderHeader() + "\n" + body + "\n" + a.renderFooter()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf(" %s Birthday Tracker", icons.App)
	right := ""
	if user := a.auth.User(); user != nil {
		right = fmt.Sprintf("%s %s ", icons.Person, user.Username)
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	bar := title + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(styles.Surface).
		Foreground(styles.Text).
		Bold(true).
		Width(a.width).
		Render(bar)
}

func (a *App) renderFooter() string {
	left := " ctrl+c quit"
	if a.screen == ScreenDashboard {
		left = " f friends • p profile • r refresh • L sign out • q quit"
	}
	right := ""
	if !a.lastRefresh.IsZero() {
		right = fmt.Sprintf("refreshed %s ", formatTimeSince(a.lastRefresh))
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Foreground(styles.Muted).
		Width(a.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the TUI and blocks until the user quits
func Run(client *api.Client, authMgr *auth.Manager) error {
	p := tea.NewProgram(NewApp(client, authMgr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// formatTimeSince renders a compact elapsed-time label
func formatTimeSince(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
