// Package preview shows rendered scenes inline in the terminal. Detection is
// environment-only: no terminal queries are sent.
package preview

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermGeneric Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermVSCode
	TermTmux
)

var terminalNames = [...]string{
	TermGeneric: "generic",
	TermGhostty: "ghostty",
	TermKitty:   "kitty",
	TermWezTerm: "wezterm",
	TermITerm2:  "iterm2",
	TermVSCode:  "vscode",
	TermTmux:    "tmux",
}

func (t Terminal) String() string {
	if int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(string) string

// Detect identifies the terminal from env. TERM_PROGRAM wins over TERM,
// which wins over emulator-specific variables; multiplexers are checked
// last so the outer emulator is reported when it is known.
func Detect(env Env) Terminal {
	if env == nil {
		env = os.Getenv
	}
	switch strings.ToLower(env("TERM_PROGRAM")) {
	case "ghostty":
		return TermGhostty
	case "kitty":
		return TermKitty
	case "wezterm":
		return TermWezTerm
	case "iterm.app":
		return TermITerm2
	case "vscode":
		return TermVSCode
	case "tmux":
		return TermTmux
	}
	switch env("TERM") {
	case "xterm-ghostty":
		return TermGhostty
	case "xterm-kitty":
		return TermKitty
	}
	switch {
	case env("KITTY_WINDOW_ID") != "":
		return TermKitty
	case env("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case env("ITERM_SESSION_ID") != "", env("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case env("TMUX") != "":
		return TermTmux
	}
	return TermGeneric
}

// overSSH reports whether the session runs over SSH.
func overSSH(env Env) bool {
	return env("SSH_TTY") != "" || env("SSH_CONNECTION") != "" || env("SSH_CLIENT") != ""
}
