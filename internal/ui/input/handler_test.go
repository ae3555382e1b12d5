package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dirview/internal/sorting"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
)

func newHandler(state *statepkg.AppState) (*InputHandler, chan statepkg.Action) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)
	return handler, actionChan
}

func expectAction[T statepkg.Action](t *testing.T, actionChan chan statepkg.Action) T {
	t.Helper()
	select {
	case action := <-actionChan:
		got, ok := action.(T)
		if !ok {
			var want T
			t.Fatalf("Expected %T, got %T", want, action)
		}
		return got
	default:
		var want T
		t.Fatalf("Expected %T to be emitted", want)
	}
	var zero T
	return zero
}

func expectNoAction(t *testing.T, actionChan chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		t.Fatalf("Expected no action, got %T", action)
	default:
	}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestQuestionMarkTogglesHelpInNormalMode(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(runeKey('?'))
	expectAction[statepkg.HelpToggleAction](t, actionChan)
}

func TestEscapeHidesHelpBeforeOtherModes(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{HelpVisible: true, FilterActive: true})
	handler.ProcessEvent(key(tcell.KeyEscape))
	expectAction[statepkg.HelpHideAction](t, actionChan)
}

func TestQClosesHelpWithoutQuitting(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{HelpVisible: true})
	if !handler.ProcessEvent(runeKey('q')) {
		t.Fatal("q in help should not quit")
	}
	expectAction[statepkg.HelpHideAction](t, actionChan)
}

func TestQQuitsInNormalMode(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})
	if handler.ProcessEvent(runeKey('q')) {
		t.Fatal("q should quit")
	}
	expectAction[statepkg.QuitAction](t, actionChan)
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	for _, state := range []*statepkg.AppState{{}, {FilterActive: true}, {SearchActive: true}, {HelpVisible: true}} {
		handler, actionChan := newHandler(state)
		if handler.ProcessEvent(key(tcell.KeyCtrlC)) {
			t.Fatal("Ctrl+C should quit")
		}
		expectAction[statepkg.QuitAction](t, actionChan)
	}
}

func TestFilterPromptCapturesRunes(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{FilterActive: true})

	if !handler.ProcessEvent(runeKey('q')) {
		t.Fatal("q while filtering must not quit")
	}
	if got := expectAction[statepkg.FilterCharAction](t, actionChan); got.Char != 'q' {
		t.Fatalf("Expected 'q', got %q", got.Char)
	}

	handler.ProcessEvent(key(tcell.KeyBackspace2))
	expectAction[statepkg.FilterBackspaceAction](t, actionChan)

	handler.ProcessEvent(key(tcell.KeyEnter))
	expectAction[statepkg.FilterConfirmAction](t, actionChan)

	handler.ProcessEvent(key(tcell.KeyEscape))
	expectAction[statepkg.FilterClearAction](t, actionChan)

	handler.ProcessEvent(key(tcell.KeyDown))
	expectAction[statepkg.NavigateDownAction](t, actionChan)
}

func TestSearchPromptKeys(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{SearchActive: true})

	handler.ProcessEvent(runeKey('s'))
	if got := expectAction[statepkg.SearchCharAction](t, actionChan); got.Char != 's' {
		t.Fatalf("Expected 's', got %q", got.Char)
	}
	handler.ProcessEvent(key(tcell.KeyEnter))
	expectAction[statepkg.SearchSubmitAction](t, actionChan)
	handler.ProcessEvent(key(tcell.KeyEscape))
	expectAction[statepkg.SearchCancelPromptAction](t, actionChan)
}

func TestEscapePeelsFilterThenSearch(t *testing.T) {
	state := &statepkg.AppState{FilterQuery: "rep", LastSearchTimestamp: time.Now()}
	handler, actionChan := newHandler(state)

	handler.ProcessEvent(key(tcell.KeyEscape))
	expectAction[statepkg.FilterClearAction](t, actionChan)

	state.FilterQuery = ""
	handler.ProcessEvent(key(tcell.KeyEscape))
	expectAction[statepkg.SearchClearAction](t, actionChan)

	state.LastSearchTimestamp = time.Time{}
	handler.ProcessEvent(key(tcell.KeyEscape))
	expectNoAction(t, actionChan)
}

func TestViewKeys(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})

	handler.ProcessEvent(runeKey('s'))
	expectAction[statepkg.CycleSortAction](t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModShift))
	if got := expectAction[statepkg.SetSortByAction](t, actionChan); got.Criterion != sorting.ByRelevance {
		t.Fatalf("Expected relevance, got %s", got.Criterion)
	}

	handler.ProcessEvent(runeKey('o'))
	expectAction[statepkg.ToggleOrderAction](t, actionChan)

	handler.ProcessEvent(runeKey('v'))
	expectAction[statepkg.CyclePerspectiveAction](t, actionChan)

	handler.ProcessEvent(runeKey('.'))
	expectAction[statepkg.ToggleHiddenFilesAction](t, actionChan)

	handler.ProcessEvent(runeKey('d'))
	expectAction[statepkg.ToggleDirectoriesAction](t, actionChan)
}

func TestNavigationKeys(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})

	cases := []struct {
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{key(tcell.KeyUp), statepkg.NavigateUpAction{}},
		{runeKey('j'), statepkg.NavigateDownAction{}},
		{key(tcell.KeyPgDn), statepkg.ScrollPageDownAction{}},
		{key(tcell.KeyEnd), statepkg.ScrollToEndAction{}},
		{key(tcell.KeyEnter), statepkg.OpenAction{}},
		{key(tcell.KeyLeft), statepkg.GoUpAction{}},
		{runeKey('~'), statepkg.GoHomeAction{}},
		{runeKey('r'), statepkg.RefreshAction{}},
	}
	for _, tc := range cases {
		handler.ProcessEvent(tc.ev)
		select {
		case got := <-actionChan:
			if got != tc.want {
				t.Fatalf("Expected %T, got %T", tc.want, got)
			}
		default:
			t.Fatalf("Expected %T to be emitted", tc.want)
		}
	}
}

func TestEditorKeyRequiresEditor(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(runeKey('e'))
	expectNoAction(t, actionChan)

	handler.SetState(&statepkg.AppState{EditorAvailable: true})
	handler.ProcessEvent(runeKey('e'))
	expectAction[statepkg.OpenEditorAction](t, actionChan)
}

func TestResizeEmitsDimensions(t *testing.T) {
	handler, actionChan := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(tcell.NewEventResize(100, 30))
	got := expectAction[statepkg.ResizeAction](t, actionChan)
	if got.Width != 100 || got.Height != 30 {
		t.Fatalf("Expected 100x30, got %dx%d", got.Width, got.Height)
	}
}
