package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
)

// commandPrefixes mark Go identifiers that name commands: CmdFoo, cmdFoo, cmd_foo.
var commandPrefixes = []string{"cmd_", "Cmd", "cmd"}

// TrimCommandPrefix strips a leading command marker from a Go identifier.
// "cmd" and "Cmd" only count when an upper case letter follows, so cmdline
// stays as it is.
func TrimCommandPrefix(name string) string {
	for _, p := range commandPrefixes {
		rest, ok := strings.CutPrefix(name, p)
		if !ok || rest == "" {
			continue
		}
		if p == "cmd_" {
			return rest
		}
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			return rest
		}
	}
	return name
}

// Slugify turns a Go identifier into a command line token:
// CmdFooBar and cmd_foo_bar both become foo-bar.
func Slugify(name string) string {
	return strcase.ToKebab(TrimCommandPrefix(name))
}

// IsValidName reports whether name is a usable command token: lower case
// letters, digits and hyphens, not starting with a hyphen.
func IsValidName(name string) bool {
	if name == "" || name[0] == '-' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// FuncBaseName reduces a runtime function name such as
// "main.(*tool).CmdFoo-fm" or "github.com/x/y.cmdBar" to its last identifier.
func FuncBaseName(full string) string {
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		full = full[i+1:]
	}
	return full
}

// IsAnonymousFunc reports whether a base name returned by FuncBaseName
// belongs to a function literal (func1, func2, ...).
func IsAnonymousFunc(base string) bool {
	rest, ok := strings.CutPrefix(base, "func")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
