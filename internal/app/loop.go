package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirview/internal/config"
	"github.com/kk-code-lab/dirview/internal/logging"
	search "github.com/kk-code-lab/dirview/internal/search"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"github.com/kk-code-lab/dirview/internal/textutil"
	"github.com/kk-code-lab/dirview/internal/ui/input"
	renderui "github.com/kk-code-lab/dirview/internal/ui/render"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const doubleClickThreshold = 300 * time.Millisecond

const breadcrumbSeparator = " › "

func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	startPath := opts.StartPath
	if startPath == "" {
		cwd, err := GetCwd()
		if err != nil {
			return nil, err
		}
		startPath = cwd
	}
	startPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf("resolve start path: %w", err)
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	clipboardCmd, clipboardAvail := detectClipboard()
	editorCmd, editorAvail := detectEditorCommand()

	state := newInitialState(startPath, cfg, opts.Settings, clipboardAvail, editorAvail)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	reducer := statepkg.NewStateReducer()
	renderer := renderui.NewRenderer(screen)
	inputHandler := input.NewInputHandler(actionCh)

	if err := statepkg.LoadDirectory(state); err != nil {
		screen.Fini()
		return nil, err
	}
	state.DirectoryLoader = statepkg.NewAsyncDirectoryLoader()

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderer,
		input:          inputHandler,
		actionCh:       actionCh,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		editorCmd:      editorCmd,
		lastClickIndex: -1,
	}

	inputHandler.SetState(state)
	logging.Info("application started",
		zap.String("path", startPath),
		zap.Bool("clipboard", clipboardAvail),
		zap.Bool("editor", editorAvail),
	)
	return app, nil
}

func newInitialState(path string, cfg *config.Config, store settings.Store, clipboardAvail, editorAvail bool) *statepkg.AppState {
	state := statepkg.NewAppState(path)
	if p, ok := settings.ParsePerspective(cfg.View.Perspective); ok {
		state.Perspective = p
	}
	state.HideHiddenFiles = cfg.View.HideHiddenFiles
	state.Settings = store
	state.DefaultSettings = cfg.DefaultViewSettings()
	state.SearchOptions = search.Options{
		HideHidden: cfg.View.HideHiddenFiles,
		MaxResults: cfg.Search.MaxResults,
	}
	state.ClipboardAvailable = clipboardAvail
	state.EditorAvailable = editorAvail
	sorter := &sorting.Sorter{FoldersFirst: cfg.View.FoldersFirst, Language: language.Und}
	state.SetSortFunc(sorter.Func())
	return state
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	// The yank confirmation needs one more frame once it expires.
	var flashTimer *time.Timer
	var flashCh <-chan time.Time
	armFlash := func() {
		remaining := renderui.YankFlashDuration - time.Since(app.state.LastYankTime)
		if remaining <= 0 {
			return
		}
		if flashTimer == nil {
			flashTimer = time.NewTimer(remaining)
		} else {
			if !flashTimer.Stop() {
				select {
				case <-flashTimer.C:
				default:
				}
			}
			flashTimer.Reset(remaining)
		}
		flashCh = flashTimer.C
	}
	defer func() {
		if flashTimer != nil {
			flashTimer.Stop()
		}
	}()

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		yankedAt := app.state.LastYankTime

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-flashCh:
			flashCh = nil
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
		if !app.state.LastYankTime.Equal(yankedAt) {
			armFlash()
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel scrolling, primary clicks on rows and the breadcrumb.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil {
		return
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.NavigateUpAction{}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.NavigateDownAction{}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	if app.state.HelpVisible {
		app.actionCh <- statepkg.HelpHideAction{}
		return
	}

	x, y := ev.Position()
	if y == 0 {
		app.handleBreadcrumbClick(x)
		return
	}

	layout, ok := app.renderer.LastLayout()
	if !ok {
		return
	}
	row := layout.RowAt(y)
	if row < 0 {
		return
	}
	idx := app.state.ScrollOffset + row
	if idx >= len(app.state.DisplayFiles()) {
		return
	}

	doubleClick := app.lastClickIndex == idx && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickIndex = idx
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.OpenAction{}
	}
}

// handleBreadcrumbClick jumps to the ancestor under x in the header.
func (app *Application) handleBreadcrumbClick(x int) bool {
	if x < 0 || app.state == nil {
		return false
	}
	pos := textutil.DisplayWidth(renderui.AppName) + 1
	if x < pos {
		return false
	}

	segments := renderui.FormatBreadcrumbSegments(app.state.CurrentPath)
	if len(segments) == 0 {
		return false
	}

	// A truncated breadcrumb would map clicks to the wrong segment.
	sepW := textutil.DisplayWidth(breadcrumbSeparator)
	widths := make([]int, len(segments))
	total := 0
	for i, s := range segments {
		widths[i] = textutil.DisplayWidth(textutil.SanitizeName(s))
		total += widths[i]
		if i > 0 {
			total += sepW
		}
	}
	if total > app.state.ScreenWidth-pos {
		return false
	}

	currentX := pos
	for i := range segments {
		if i > 0 {
			if x >= currentX && x < currentX+sepW {
				app.jumpToBreadcrumb(segments, i-1)
				return true
			}
			currentX += sepW
		}
		if x >= currentX && x < currentX+widths[i] {
			app.jumpToBreadcrumb(segments, i)
			return true
		}
		currentX += widths[i]
	}
	return false
}

func (app *Application) jumpToBreadcrumb(segments []string, idx int) {
	if path := buildBreadcrumbPath(segments, idx); path != "" {
		app.actionCh <- statepkg.GoToPathAction{Path: path}
	}
}

// buildBreadcrumbPath rebuilds the path of segments[0..idx].
func buildBreadcrumbPath(segments []string, idx int) string {
	if idx < 0 || idx >= len(segments) {
		return ""
	}

	path := ""
	for i := 0; i <= idx; i++ {
		seg := segments[i]
		switch {
		case seg == "/":
			path = string(filepath.Separator)
		case i == 0 && strings.HasSuffix(seg, ":"):
			// Drive letters need a trailing separator to mean the root.
			path = seg + string(filepath.Separator)
		default:
			path = filepath.Join(path, seg)
		}
	}
	if path == "" {
		path = string(filepath.Separator)
	}
	return path
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard()
	case statepkg.OpenAction:
		return app.handleOpen()
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	}

	app.reduce(action)
	return true
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.setError(err)
		return
	}
	// Any successful action clears a stale error, except the async
	// deliveries which the user did not trigger.
	switch action.(type) {
	case statepkg.DirectoryLoadResultAction, statepkg.SearchResultsAction:
	default:
		app.state.LastError = nil
	}
}

func (app *Application) setError(err error) {
	app.state.LastError = err
	logging.Warn("action failed", zap.Error(err))
}
