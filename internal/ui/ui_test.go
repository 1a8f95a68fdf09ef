package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/DaanHessen/survey-demo-tui/internal/sdk"
)

type call struct {
	name string
	args []string
}

type recordingClient struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (c *recordingClient) add(name string, args ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call{name: name, args: args})
	return c.err
}

func (c *recordingClient) Logout(ctx context.Context) error { return c.add(sdk.CallLogout) }
func (c *recordingClient) Track(ctx context.Context, a string) error {
	return c.add(sdk.CallTrack, a)
}
func (c *recordingClient) SetAttribute(ctx context.Context, k, v string) error {
	return c.add(sdk.CallSetAttribute, k, v)
}
func (c *recordingClient) SetEmail(ctx context.Context, e string) error {
	return c.add(sdk.CallSetEmail, e)
}
func (c *recordingClient) SetUserID(ctx context.Context, u string) error {
	return c.add(sdk.CallSetUserID, u)
}

type recordingHost struct{ states []bool }

func (h *recordingHost) SetDarkMode(on bool) { h.states = append(h.states, on) }

func testModel(t *testing.T, client sdk.Client, host StyleHost) model {
	t.Helper()
	return newModel(context.Background(), Options{
		EnvironmentID: "clmyenv0000demo",
		Client:        client,
		Journal:       sdk.NewJournal(10),
		Renderer:      lipgloss.NewRenderer(io.Discard),
		Host:          host,
		Logger:        log.New(io.Discard),
	})
}

func runeKey(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestHostStartsLight(t *testing.T) {
	host := &recordingHost{}
	m := testModel(t, &recordingClient{}, host)
	if m.darkMode {
		t.Fatal("darkMode should start false")
	}
	if len(host.states) != 1 || host.states[0] {
		t.Fatalf("host should be told light once on construction, got %v", host.states)
	}
}

func TestDarkModeToggleParity(t *testing.T) {
	for n := 0; n <= 5; n++ {
		host := &recordingHost{}
		m := testModel(t, &recordingClient{}, host)
		for i := 0; i < n; i++ {
			m, _ = update(t, m, runeKey("d"))
		}
		wantDark := n%2 == 1
		if m.darkMode != wantDark {
			t.Fatalf("after %d toggles darkMode=%v, want %v", n, m.darkMode, wantDark)
		}
		if got := host.states[len(host.states)-1]; got != wantDark {
			t.Fatalf("after %d toggles host=%v, want %v", n, got, wantDark)
		}
		if len(host.states) != n+1 {
			t.Fatalf("host notified %d times, want %d", len(host.states), n+1)
		}
	}
}

func TestRendererHostFollowsToggle(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	m := newModel(context.Background(), Options{EnvironmentID: "env", Client: &recordingClient{}, Renderer: r, Logger: log.New(io.Discard)})
	if r.HasDarkBackground() {
		t.Fatal("renderer should start light")
	}
	m, _ = update(t, m, runeKey("d"))
	if !r.HasDarkBackground() {
		t.Fatal("renderer should be dark after one toggle")
	}
	_, _ = update(t, m, runeKey("d"))
	if r.HasDarkBackground() {
		t.Fatal("renderer should be light after two toggles")
	}
}

func TestEachButtonDispatchesExactlyOneCall(t *testing.T) {
	tests := []struct {
		key  string
		name string
		args []string
	}{
		{"1", sdk.CallLogout, nil},
		{"2", sdk.CallTrack, []string{"Code Action"}},
		{"3", sdk.CallSetAttribute, []string{"Plan", "Free"}},
		{"4", sdk.CallSetAttribute, []string{"Plan", "Paid"}},
		{"5", sdk.CallSetEmail, []string{"test@web.com"}},
		{"6", sdk.CallSetUserID, []string{"THIS-IS-A-VERY-LONG-USER-ID-FOR-TESTING"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			client := &recordingClient{}
			m := testModel(t, client, &recordingHost{})
			_, cmd := update(t, m, runeKey(tt.key))
			if cmd == nil {
				t.Fatal("expected a dispatch command")
			}
			if len(client.calls) != 0 {
				t.Fatal("call must not run inside Update")
			}
			msg := cmd()
			if _, ok := msg.(dispatchedMsg); !ok {
				t.Fatalf("unexpected message %T", msg)
			}
			if len(client.calls) != 1 {
				t.Fatalf("got %d calls, want exactly 1", len(client.calls))
			}
			got := client.calls[0]
			if got.name != tt.name || strings.Join(got.args, "|") != strings.Join(tt.args, "|") {
				t.Fatalf("got %s(%v), want %s(%v)", got.name, got.args, tt.name, tt.args)
			}
		})
	}
}

func TestEnterPressesFocusedButton(t *testing.T) {
	client := &recordingClient{}
	m := testModel(t, client, &recordingHost{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != 2 {
		t.Fatalf("focus = %d, want 2", m.focus)
	}
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	cmd()
	if len(client.calls) != 1 || client.calls[0].name != sdk.CallSetAttribute || client.calls[0].args[1] != "Free" {
		t.Fatalf("unexpected calls %+v", client.calls)
	}
}

func TestFocusWraps(t *testing.T) {
	m := testModel(t, &recordingClient{}, &recordingHost{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.focus != len(actions)-1 {
		t.Fatalf("focus = %d, want %d", m.focus, len(actions)-1)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Fatalf("focus = %d, want 0", m.focus)
	}
}

func TestDispatchIgnoresSDKFailure(t *testing.T) {
	client := &recordingClient{err: errors.New("network down")}
	m := testModel(t, client, &recordingHost{})
	_, cmd := update(t, m, runeKey("2"))
	msg := cmd()
	m, _ = update(t, m, msg)
	if m.status != "sent: Code Action" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestDisplaysEnvironmentIDVerbatim(t *testing.T) {
	for _, id := range []string{"clmyenv0000demo", "Env-With-MixedCase_42"} {
		m := newModel(context.Background(), Options{EnvironmentID: id, Client: &recordingClient{}, Renderer: lipgloss.NewRenderer(io.Discard), Host: &recordingHost{}, Logger: log.New(io.Discard)})
		for _, width := range []int{0, 60, 140} {
			if width > 0 {
				m, _ = update(t, m, tea.WindowSizeMsg{Width: width, Height: 40})
			}
			if view := m.View(); !strings.Contains(view, id) {
				t.Fatalf("width %d: view does not contain %q:\n%s", width, id, view)
			}
		}
	}
}

func TestWidgetLogsShowJournal(t *testing.T) {
	client := &recordingClient{}
	journal := sdk.NewJournal(10)
	logged := sdk.NewLogged(client, log.New(io.Discard), journal)
	m := newModel(context.Background(), Options{EnvironmentID: "env", Client: logged, Journal: journal, Renderer: lipgloss.NewRenderer(io.Discard), Host: &recordingHost{}, Logger: log.New(io.Discard)})
	if !strings.Contains(m.View(), "(no calls yet)") {
		t.Fatal("expected empty widget log")
	}
	_, cmd := update(t, m, runeKey("5"))
	m, _ = update(t, m, cmd())
	if !strings.Contains(m.View(), `setEmail("test@web.com")`) {
		t.Fatalf("widget log missing call:\n%s", m.View())
	}
}

func TestPaletteCycleKeepsKnownTheme(t *testing.T) {
	m := testModel(t, &recordingClient{}, &recordingHost{})
	seen := map[string]bool{}
	for i := 0; i < len(palettes); i++ {
		m, _ = update(t, m, runeKey("t"))
		if _, ok := palettes[m.themeName]; !ok {
			t.Fatalf("unknown theme %q", m.themeName)
		}
		seen[m.themeName] = true
	}
	if len(seen) != len(palettes) {
		t.Fatalf("cycle visited %d palettes, want %d", len(seen), len(palettes))
	}
}

func TestQuit(t *testing.T) {
	m := testModel(t, &recordingClient{}, &recordingHost{})
	_, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
