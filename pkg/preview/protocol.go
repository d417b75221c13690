package preview

import (
	"fmt"
	"os"
	"strings"
)

// Protocol is the inline graphics protocol used for previews.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolKitty
	ProtocolITerm2
	ProtocolSixel
	ProtocolHalfblocks
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// ParseProtocol accepts the names used in configuration. "auto" and ""
// return ok=false so the caller falls back to detection.
func ParseProtocol(name string) (p Protocol, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ProtocolNone, false, nil
	case "kitty":
		return ProtocolKitty, true, nil
	case "iterm2":
		return ProtocolITerm2, true, nil
	case "sixel":
		return ProtocolSixel, true, nil
	case "halfblocks", "half-blocks", "unicode":
		return ProtocolHalfblocks, true, nil
	case "none", "off":
		return ProtocolNone, true, nil
	}
	return ProtocolNone, false, fmt.Errorf("unknown graphics protocol %q", name)
}

// SelectProtocol picks the best protocol for a terminal. Image protocols
// are unreliable through SSH, so remote sessions get halfblocks.
func SelectProtocol(t Terminal, ssh bool) Protocol {
	if ssh {
		return ProtocolHalfblocks
	}
	switch t {
	case TermGhostty, TermKitty, TermWezTerm:
		return ProtocolKitty
	case TermITerm2:
		return ProtocolITerm2
	}
	return ProtocolHalfblocks
}

// ResolveProtocol applies a configured override, detecting from env when the
// override is "auto".
func ResolveProtocol(override string, env Env) (Protocol, error) {
	p, ok, err := ParseProtocol(override)
	if err != nil {
		return ProtocolNone, err
	}
	if ok {
		return p, nil
	}
	if env == nil {
		env = os.Getenv
	}
	return SelectProtocol(Detect(env), overSSH(env)), nil
}
