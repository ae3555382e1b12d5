package app

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kk-code-lab/dirview/internal/logging"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"go.uber.org/zap"
)

// commandBuilder is swapped in tests to avoid spawning real programs.
var commandBuilder = exec.Command

func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		return true
	}
	target := app.state.CurrentFilePath()

	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(normalizeClipboardPath(target, runtime.GOOS))
	if err := cmd.Run(); err != nil {
		app.setError(fmt.Errorf("clipboard %s: %w", filepath.Base(app.clipboardCmd[0]), err))
		return true
	}
	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	logging.Debug("copied path", zap.String("path", target))
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

// handleOpen enters the selected directory or edits the selected file.
// Search results may live below the current directory, so the entry's own
// path is used rather than a join with CurrentPath.
func (app *Application) handleOpen() bool {
	file := app.state.CurrentFile()
	if file == nil {
		return true
	}
	if file.IsDir() {
		app.reduce(statepkg.EnterDirectoryAction{})
		return true
	}
	return app.handleEditorOpen()
}

func (app *Application) handleEditorOpen() bool {
	if !app.state.EditorAvailable || len(app.editorCmd) == 0 {
		return false
	}

	file := app.state.CurrentFile()
	if file == nil || file.IsDir() {
		return false
	}

	if err := app.openFileInEditor(file.Path); err != nil {
		app.setError(err)
		return true
	}
	// The file may have been renamed or retagged in the editor.
	app.reduce(statepkg.RefreshAction{})
	return true
}

func (app *Application) openFileInEditor(filePath string) error {
	if len(app.editorCmd) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorArgs := app.editorArgsWithFile(filePath)
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	if err := flushConsoleInput(); err != nil {
		logging.Debug("flush console input", zap.Error(err))
	}

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("editor %s: %w", filepath.Base(editorArgs[0]), runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
