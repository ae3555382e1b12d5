package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirview/internal/sorting"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into actions. It returns false once
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.emit(statepkg.ResizeAction{Width: w, Height: h})
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) {
	ih.actionChan <- action
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	state := ih.state
	if state == nil {
		state = &statepkg.AppState{}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.emit(statepkg.QuitAction{})
		return false
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
		return true
	}

	switch {
	case state.HelpVisible:
		return ih.processHelpKey(ev)
	case state.SearchActive:
		return ih.processSearchPromptKey(ev)
	case state.FilterActive:
		return ih.processFilterPromptKey(ev)
	default:
		return ih.processNormalKey(ev, state)
	}
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.HelpHideAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			ih.emit(statepkg.HelpHideAction{})
		}
	}
	return true
}

func (ih *InputHandler) processSearchPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.SearchCancelPromptAction{})
	case tcell.KeyEnter:
		ih.emit(statepkg.SearchSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		ih.emit(statepkg.SearchBackspaceAction{})
	case tcell.KeyRune:
		ih.emit(statepkg.SearchCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processFilterPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.FilterClearAction{})
	case tcell.KeyEnter:
		ih.emit(statepkg.FilterConfirmAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		ih.emit(statepkg.FilterBackspaceAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.NavigateUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.NavigateDownAction{})
	case tcell.KeyRune:
		ih.emit(statepkg.FilterCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey, state *statepkg.AppState) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		// Peel one layer at a time: filter text first, then search results.
		if state.FilterQuery != "" {
			ih.emit(statepkg.FilterClearAction{})
		} else if state.InSearchMode() || state.SearchInProgress {
			ih.emit(statepkg.SearchClearAction{})
		}
	case tcell.KeyUp:
		ih.emit(statepkg.NavigateUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.NavigateDownAction{})
	case tcell.KeyPgUp:
		ih.emit(statepkg.ScrollPageUpAction{})
	case tcell.KeyPgDn:
		ih.emit(statepkg.ScrollPageDownAction{})
	case tcell.KeyHome:
		ih.emit(statepkg.ScrollToStartAction{})
	case tcell.KeyEnd:
		ih.emit(statepkg.ScrollToEndAction{})
	case tcell.KeyEnter, tcell.KeyRight:
		ih.emit(statepkg.OpenAction{})
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.GoUpAction{})
	case tcell.KeyRune:
		return ih.processNormalRune(ev, state)
	}
	return true
}

func (ih *InputHandler) processNormalRune(ev *tcell.EventKey, state *statepkg.AppState) bool {
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModShift != 0 {
		// Normalize shifted alphabetic runes to reflect user intent (Shift+S => 'S')
		r = unicode.ToUpper(r)
	}

	switch r {
	case 'q':
		ih.emit(statepkg.QuitAction{})
		return false
	case 'k':
		ih.emit(statepkg.NavigateUpAction{})
	case 'j':
		ih.emit(statepkg.NavigateDownAction{})
	case 'g':
		ih.emit(statepkg.ScrollToStartAction{})
	case 'G':
		ih.emit(statepkg.ScrollToEndAction{})
	case 'l':
		ih.emit(statepkg.OpenAction{})
	case 'h':
		ih.emit(statepkg.GoUpAction{})
	case '~':
		ih.emit(statepkg.GoHomeAction{})
	case '/':
		ih.emit(statepkg.FilterStartAction{})
	case 'f':
		ih.emit(statepkg.SearchStartAction{})
	case 's':
		ih.emit(statepkg.CycleSortAction{})
	case 'S':
		ih.emit(statepkg.SetSortByAction{Criterion: sorting.ByRelevance})
	case 'o':
		ih.emit(statepkg.ToggleOrderAction{})
	case 'v':
		ih.emit(statepkg.CyclePerspectiveAction{})
	case '.':
		ih.emit(statepkg.ToggleHiddenFilesAction{})
	case 'd':
		ih.emit(statepkg.ToggleDirectoriesAction{})
	case 'r', 'R':
		ih.emit(statepkg.RefreshAction{})
	case 'y':
		ih.emit(statepkg.YankPathAction{})
	case 'e', 'E':
		if state.EditorAvailable {
			ih.emit(statepkg.OpenEditorAction{})
		}
	case '?':
		ih.emit(statepkg.HelpToggleAction{})
	}
	return true
}
