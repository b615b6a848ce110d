package rainbowcat

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorMode selects which escape sequences, if any, color the output.
type ColorMode int

const (
	// NoColor copies input to output untouched.
	NoColor ColorMode = iota
	// Color256 uses the xterm 256-color palette, ESC[38;5;Nm.
	Color256
	// TrueColor uses 24-bit colors, ESC[38;2;R;G;Bm.
	TrueColor
)

func (cm ColorMode) String() string {
	switch cm {
	case NoColor:
		return "none"
	case Color256:
		return "256"
	case TrueColor:
		return "truecolor"
	default:
		return "ColorMode(" + strconv.Itoa(int(cm)) + ")"
	}
}

// Environment is what color detection looks at.
type Environment struct {
	LookupEnv  func(key string) (string, bool)
	IsTerminal bool
}

// OSEnvironment describes the current process writing to w.
func OSEnvironment(w io.Writer) Environment {
	return Environment{
		LookupEnv:  os.LookupEnv,
		IsTerminal: IsTerminal(w),
	}
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	truecolorTermPrograms = []string{"iterm", "wezterm", "warp", "alacritty", "ghostty", "apple_terminal"}
	truecolorTerms        = []string{"xterm-kitty", "alacritty", "wezterm", "ghostty", "konsole", "gnome", "vte", "foot", "iterm"}
)

// DetectColorMode picks a color mode from the environment. In order:
// NO_COLOR disables color; FORCE_COLOR=0 disables it, FORCE_COLOR=3 asks for
// truecolor and any other FORCE_COLOR value for 256 colors; forceColor asks
// for truecolor; a non-terminal output or TERM=dumb disables color;
// terminals known for 24-bit support get truecolor and every other terminal
// gets 256 colors.
func DetectColorMode(env Environment, forceColor bool) ColorMode {
	lookup := env.LookupEnv
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.ToLower(v)
	}
	has := func(key string) bool {
		_, ok := lookup(key)
		return ok
	}

	if has("NO_COLOR") {
		return NoColor
	}
	if v, ok := lookup("FORCE_COLOR"); ok {
		if v == "0" {
			return NoColor
		}
		if level, err := strconv.ParseUint(v, 10, 8); err == nil && level == 3 {
			return TrueColor
		}
		return Color256
	}
	if forceColor {
		return TrueColor
	}
	if !env.IsTerminal {
		return NoColor
	}

	term := get("TERM")
	if term == "dumb" || term == "unknown" {
		return NoColor
	}

	colorterm := get("COLORTERM")
	switch {
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		return TrueColor
	case containsAny(get("TERM_PROGRAM"), truecolorTermPrograms):
		return TrueColor
	case has("WT_SESSION"), has("VSCODE_INJECTION"):
		return TrueColor
	case containsAny(term, truecolorTerms):
		return TrueColor
	}

	// 256color, tmux, screen, xterm, CI or nothing at all: we know we're on
	// a terminal and nearly all of them do 256 colors
	return Color256
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
