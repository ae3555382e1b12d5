package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

type lookPathFunc func(string) (string, error)

// clipboardCandidates are tried in order; the first resolvable one wins.
func clipboardCandidates(goos string) [][]string {
	var out [][]string
	if strings.EqualFold(goos, "windows") {
		out = append(out,
			[]string{"clip.exe"},
			[]string{"clip"},
			[]string{"powershell", "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"},
			[]string{"powershell.exe", "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"},
			[]string{"pwsh", "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"},
		)
	}
	return append(out,
		[]string{"pbcopy"},
		[]string{"wl-copy"},
		[]string{"xclip", "-selection", "clipboard"},
		[]string{"xsel", "--clipboard", "--input"},
	)
}

func editorDefaults(goos string) [][]string {
	if strings.EqualFold(goos, "windows") {
		return [][]string{{"code", "--wait"}, {"notepad++.exe"}, {"notepad.exe"}}
	}
	return [][]string{{"vim"}, {"nano"}, {"vi"}}
}

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath lookPathFunc) ([]string, bool) {
	return firstResolvable(clipboardCandidates(goos), lookPath)
}

func detectEditorCommand() ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectEditorCommandInternal prefers $VISUAL, then $EDITOR, then a
// platform default.
func detectEditorCommandInternal(goos string, getenv func(string) string, lookPath lookPathFunc) ([]string, bool) {
	var candidates [][]string
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if args := parseEditorCommand(getenv(env)); len(args) > 0 {
			candidates = append(candidates, args)
		}
	}
	candidates = append(candidates, editorDefaults(goos)...)
	return firstResolvable(candidates, lookPath)
}

func firstResolvable(candidates [][]string, lookPath lookPathFunc) ([]string, bool) {
	for _, candidate := range candidates {
		if len(candidate) == 0 || candidate[0] == "" {
			continue
		}
		resolved, err := lookPath(expandUserPath(candidate[0]))
		if err != nil || resolved == "" {
			continue
		}
		args := make([]string, len(candidate))
		copy(args, candidate)
		args[0] = resolved
		return args, true
	}
	return nil, false
}

// parseEditorCommand splits a shell-like command line honoring single and
// double quotes.
func parseEditorCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}

	for _, r := range cmd {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

// expandUserPath resolves a leading "~" or "~/".
func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
