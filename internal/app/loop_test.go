package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirview/internal/config"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	renderui "github.com/kk-code-lab/dirview/internal/ui/render"
)

func TestBuildBreadcrumbPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		idx      int
		expect   string
	}{
		{
			name:     "windows drive root",
			segments: []string{"C:"},
			idx:      0,
			expect:   "C:" + string(filepath.Separator),
		},
		{
			name:     "windows drive nested",
			segments: []string{"C:", "Users", "me"},
			idx:      2,
			expect:   filepath.Join("C:"+string(filepath.Separator), "Users", "me"),
		},
		{
			name:     "posix root",
			segments: []string{"/", "home", "me"},
			idx:      2,
			expect:   filepath.Join(string(filepath.Separator), "home", "me"),
		},
		{
			name:     "posix root only",
			segments: []string{"/", "home"},
			idx:      0,
			expect:   string(filepath.Separator),
		},
		{
			name:     "out of range",
			segments: []string{"/"},
			idx:      3,
			expect:   "",
		},
	}

	for _, tt := range tests {
		if got := buildBreadcrumbPath(tt.segments, tt.idx); got != tt.expect {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.expect, got)
		}
	}
}

func newMouseTestApp(t *testing.T) *Application {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(80, 20)

	state := statepkg.NewAppState("/home/user/docs")
	state.Entries = []statepkg.FileEntry{
		{Name: "a.txt", Path: "/home/user/docs/a.txt", IsFile: true},
		{Name: "b.txt", Path: "/home/user/docs/b.txt", IsFile: true},
	}
	state.ScreenWidth = 80
	state.ScreenHeight = 20

	renderer := renderui.NewRenderer(scr)
	renderer.Render(state)

	return &Application{
		screen:         scr,
		renderer:       renderer,
		state:          state,
		actionCh:       make(chan statepkg.Action, 4),
		lastClickIndex: -1,
	}
}

func drainActions(ch chan statepkg.Action) []statepkg.Action {
	var out []statepkg.Action
	for {
		select {
		case a := <-ch:
			out = append(out, a)
		default:
			return out
		}
	}
}

func TestHandleMouseSelectsListRow(t *testing.T) {
	app := newMouseTestApp(t)
	layout, ok := app.renderer.LastLayout()
	if !ok {
		t.Fatalf("expected a layout after render")
	}

	app.handleMouse(tcell.NewEventMouse(5, layout.ListStart+1, tcell.Button1, tcell.ModNone))

	actions := drainActions(app.actionCh)
	if len(actions) != 1 {
		t.Fatalf("expected one action, got %v", actions)
	}
	if sel, ok := actions[0].(statepkg.SelectIndexAction); !ok || sel.Index != 1 {
		t.Fatalf("expected SelectIndexAction{1}, got %#v", actions[0])
	}
}

func TestHandleMouseDoubleClickOpens(t *testing.T) {
	app := newMouseTestApp(t)
	layout, _ := app.renderer.LastLayout()
	y := layout.ListStart

	app.handleMouse(tcell.NewEventMouse(5, y, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(5, y, tcell.Button1, tcell.ModNone))

	actions := drainActions(app.actionCh)
	if len(actions) != 3 {
		t.Fatalf("expected select, select, open; got %v", actions)
	}
	if _, ok := actions[2].(statepkg.OpenAction); !ok {
		t.Fatalf("expected OpenAction last, got %#v", actions[2])
	}
}

func TestHandleMouseIgnoresRowsPastListing(t *testing.T) {
	app := newMouseTestApp(t)
	layout, _ := app.renderer.LastLayout()

	app.handleMouse(tcell.NewEventMouse(5, layout.ListStart+5, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(5, layout.ListEnd, tcell.Button1, tcell.ModNone))

	if actions := drainActions(app.actionCh); len(actions) != 0 {
		t.Fatalf("expected no actions, got %v", actions)
	}
}

func TestHandleMouseWheelNavigates(t *testing.T) {
	app := newMouseTestApp(t)

	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))

	actions := drainActions(app.actionCh)
	if len(actions) != 2 {
		t.Fatalf("expected two actions, got %v", actions)
	}
	if _, ok := actions[0].(statepkg.NavigateDownAction); !ok {
		t.Fatalf("expected NavigateDownAction, got %#v", actions[0])
	}
	if _, ok := actions[1].(statepkg.NavigateUpAction); !ok {
		t.Fatalf("expected NavigateUpAction, got %#v", actions[1])
	}
}

func TestHandleMouseClickClosesHelp(t *testing.T) {
	app := newMouseTestApp(t)
	app.state.HelpVisible = true

	app.handleMouse(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))

	actions := drainActions(app.actionCh)
	if len(actions) != 1 {
		t.Fatalf("expected one action, got %v", actions)
	}
	if _, ok := actions[0].(statepkg.HelpHideAction); !ok {
		t.Fatalf("expected HelpHideAction, got %#v", actions[0])
	}
}

func TestBreadcrumbClickJumpsToAncestor(t *testing.T) {
	app := newMouseTestApp(t)

	// "dirview / › home › user › docs": "home" starts after "dirview " + "/" + " › ".
	x := len("dirview ") + 1 + 3 + 1
	app.handleMouse(tcell.NewEventMouse(x, 0, tcell.Button1, tcell.ModNone))

	actions := drainActions(app.actionCh)
	if len(actions) != 1 {
		t.Fatalf("expected one action, got %v", actions)
	}
	jump, ok := actions[0].(statepkg.GoToPathAction)
	want := filepath.Join(string(filepath.Separator), "home")
	if !ok || jump.Path != want {
		t.Fatalf("expected GoToPathAction{%q}, got %#v", want, actions[0])
	}
}

func TestBreadcrumbClickOnAppNameIsIgnored(t *testing.T) {
	app := newMouseTestApp(t)
	if app.handleBreadcrumbClick(2) {
		t.Fatalf("expected click on app name to be ignored")
	}
}

func newLoadedApp(t *testing.T) (*Application, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	state := statepkg.NewAppState(dir)
	if err := statepkg.LoadDirectory(state); err != nil {
		t.Fatalf("load: %v", err)
	}
	return &Application{
		state:    state,
		reducer:  statepkg.NewStateReducer(),
		actionCh: make(chan statepkg.Action, 4),
	}, dir
}

func TestOpenEntersSelectedDirectory(t *testing.T) {
	app, dir := newLoadedApp(t)

	file := app.state.CurrentFile()
	if file == nil || !file.IsDir() {
		t.Fatalf("expected the folder to be selected first, got %#v", file)
	}
	if !app.handleAction(statepkg.OpenAction{}) {
		t.Fatalf("expected a redraw")
	}
	if app.state.CurrentPath != filepath.Join(dir, "sub") {
		t.Fatalf("expected to enter sub, got %q", app.state.CurrentPath)
	}
}

func TestHandleActionRecordsReducerErrors(t *testing.T) {
	app, dir := newLoadedApp(t)

	app.handleAction(statepkg.GoToPathAction{Path: filepath.Join(dir, "missing")})
	if app.state.LastError == nil {
		t.Fatalf("expected LastError for a missing directory")
	}

	app.handleAction(statepkg.NavigateDownAction{})
	if app.state.LastError != nil {
		t.Fatalf("expected the next action to clear the error, got %v", app.state.LastError)
	}
}

func TestHandleActionQuit(t *testing.T) {
	app, _ := newLoadedApp(t)
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a redraw")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
}

func TestNewInitialStateAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.View.Perspective = "list"
	cfg.View.SortBy = "byFileSize"
	cfg.View.Ascending = false
	cfg.View.HideHiddenFiles = false
	cfg.Search.MaxResults = 42

	state := newInitialState("/tmp", cfg, nil, true, false)

	if state.Perspective != settings.PerspectiveList {
		t.Fatalf("expected list perspective, got %q", state.Perspective)
	}
	if state.HideHiddenFiles {
		t.Fatalf("expected hidden files shown")
	}
	if state.SearchOptions.MaxResults != 42 || state.SearchOptions.HideHidden {
		t.Fatalf("unexpected search options %+v", state.SearchOptions)
	}
	if !state.ClipboardAvailable || state.EditorAvailable {
		t.Fatalf("capabilities not applied: clipboard=%v editor=%v", state.ClipboardAvailable, state.EditorAvailable)
	}
	if got := state.DefaultSettings.SortBy; got != string(sorting.ByFileSize) {
		t.Fatalf("expected byFileSize default, got %q", got)
	}
}

func TestNewApplicationWithSimulationScreen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	app, err := NewApplication(Options{
		StartPath: dir,
		Screen:    tcell.NewSimulationScreen(""),
	})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	defer app.Close()

	files := app.State().DisplayFiles()
	if len(files) != 2 || files[0].Name != "a.txt" || files[1].Name != "b.txt" {
		t.Fatalf("expected sorted listing, got %v", files)
	}
	if app.State().DirectoryLoader == nil {
		t.Fatalf("expected an async directory loader after startup")
	}
}
