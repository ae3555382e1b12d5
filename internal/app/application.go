package app

import (
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirview/internal/config"
	"github.com/kk-code-lab/dirview/internal/settings"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	inputui "github.com/kk-code-lab/dirview/internal/ui/input"
	renderui "github.com/kk-code-lab/dirview/internal/ui/render"
)

// Options configure a new Application.
type Options struct {
	Config    *config.Config
	Settings  settings.Store
	StartPath string       // defaults to the working directory
	Screen    tcell.Screen // nil opens the terminal
}

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	shouldQuit     bool
	clipboardCmd   []string
	clipboardAvail bool
	editorCmd      []string

	lastClickIndex int
	lastClickTime  time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// State exposes the current application state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}
