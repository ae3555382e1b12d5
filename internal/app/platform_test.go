package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func fakeLookPath(available map[string]string) lookPathFunc {
	return func(name string) (string, error) {
		if path, ok := available[name]; ok {
			return path, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectClipboardPrefersPbcopyOnUnix(t *testing.T) {
	cmd, ok := detectClipboardInternal("darwin", fakeLookPath(map[string]string{
		"pbcopy": "/usr/bin/pbcopy",
		"xclip":  "/usr/bin/xclip",
	}))
	if !ok || !reflect.DeepEqual(cmd, []string{"/usr/bin/pbcopy"}) {
		t.Fatalf("expected pbcopy, got %v (ok=%v)", cmd, ok)
	}
}

func TestDetectClipboardKeepsXclipArguments(t *testing.T) {
	cmd, ok := detectClipboardInternal("linux", fakeLookPath(map[string]string{
		"xclip": "/usr/bin/xclip",
	}))
	want := []string{"/usr/bin/xclip", "-selection", "clipboard"}
	if !ok || !reflect.DeepEqual(cmd, want) {
		t.Fatalf("expected %v, got %v (ok=%v)", want, cmd, ok)
	}
}

func TestDetectClipboardPrefersClipOnWindows(t *testing.T) {
	cmd, ok := detectClipboardInternal("windows", fakeLookPath(map[string]string{
		"clip.exe":   `C:\Windows\System32\clip.exe`,
		"powershell": `C:\ps.exe`,
	}))
	if !ok || !reflect.DeepEqual(cmd, []string{`C:\Windows\System32\clip.exe`}) {
		t.Fatalf("expected clip.exe, got %v (ok=%v)", cmd, ok)
	}
}

func TestDetectClipboardFallsBackToPowershell(t *testing.T) {
	cmd, ok := detectClipboardInternal("windows", fakeLookPath(map[string]string{
		"pwsh": `C:\pwsh.exe`,
	}))
	want := []string{`C:\pwsh.exe`, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}
	if !ok || !reflect.DeepEqual(cmd, want) {
		t.Fatalf("expected %v, got %v (ok=%v)", want, cmd, ok)
	}
}

func TestDetectClipboardNoneAvailable(t *testing.T) {
	if cmd, ok := detectClipboardInternal("linux", fakeLookPath(nil)); ok || cmd != nil {
		t.Fatalf("expected no clipboard, got %v", cmd)
	}
}

func TestDetectEditorCommandPrefersVisual(t *testing.T) {
	env := map[string]string{"VISUAL": "code --wait", "EDITOR": "nano"}
	cmd, ok := detectEditorCommandInternal("linux", func(k string) string { return env[k] }, fakeLookPath(map[string]string{
		"code": "/usr/bin/code",
		"nano": "/usr/bin/nano",
	}))
	want := []string{"/usr/bin/code", "--wait"}
	if !ok || !reflect.DeepEqual(cmd, want) {
		t.Fatalf("expected %v, got %v (ok=%v)", want, cmd, ok)
	}
}

func TestDetectEditorCommandSkipsUnresolvableEnv(t *testing.T) {
	env := map[string]string{"VISUAL": "missing-editor", "EDITOR": "nano -w"}
	cmd, ok := detectEditorCommandInternal("linux", func(k string) string { return env[k] }, fakeLookPath(map[string]string{
		"nano": "/usr/bin/nano",
	}))
	want := []string{"/usr/bin/nano", "-w"}
	if !ok || !reflect.DeepEqual(cmd, want) {
		t.Fatalf("expected %v, got %v (ok=%v)", want, cmd, ok)
	}
}

func TestDetectEditorCommandWindowsFallbacks(t *testing.T) {
	cmd, ok := detectEditorCommandInternal("windows", func(string) string { return "" }, fakeLookPath(map[string]string{
		"notepad.exe": `C:\Windows\notepad.exe`,
	}))
	if !ok || !reflect.DeepEqual(cmd, []string{`C:\Windows\notepad.exe`}) {
		t.Fatalf("expected notepad fallback, got %v (ok=%v)", cmd, ok)
	}
}

func TestDetectEditorCommandUnixFallbacks(t *testing.T) {
	cmd, ok := detectEditorCommandInternal("linux", func(string) string { return "" }, fakeLookPath(map[string]string{
		"vi": "/bin/vi",
	}))
	if !ok || !reflect.DeepEqual(cmd, []string{"/bin/vi"}) {
		t.Fatalf("expected vi fallback, got %v (ok=%v)", cmd, ok)
	}
}

func TestParseEditorCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  vim  ", []string{"vim"}},
		{`code --wait`, []string{"code", "--wait"}},
		{`"/Applications/Sublime Text.app/subl" -w`, []string{"/Applications/Sublime Text.app/subl", "-w"}},
		{`emacs -eval '(setq x "y")'`, []string{"emacs", "-eval", `(setq x "y")`}},
	}
	for _, tt := range tests {
		if got := parseEditorCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseEditorCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandUserPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandUserPath("~"); got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
	if got := expandUserPath("~/bin/ed"); got != filepath.Join(home, "bin", "ed") {
		t.Fatalf("expected path under home, got %q", got)
	}
	if got := expandUserPath("~other/bin"); got != "~other/bin" {
		t.Fatalf("expected ~user form untouched, got %q", got)
	}
}
