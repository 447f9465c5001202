package utils

import (
	"math"
	"testing"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"CmdFoo", "foo", "Method prefix"},
		{"CmdFooBar", "foo-bar", "Camel case method"},
		{"cmd_foo_bar", "foo-bar", "Snake case function"},
		{"cmdStart", "start", "Lower camel prefix"},
		{"someCrazyName", "some-crazy-name", "No prefix"},
		{"cmdline", "cmdline", "Prefix needs an upper case letter after it"},
		{"Cmd", "cmd", "Bare prefix is kept"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := Slugify(tc.input); got != tc.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"foo", "foo-bar", "abc12", "v2"}
	invalid := []string{"", "-foo", "Foo", "foo bar", "foo_bar", "föo"}

	for _, name := range valid {
		if !IsValidName(name) {
			t.Errorf("IsValidName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if IsValidName(name) {
			t.Errorf("IsValidName(%q) = true, want false", name)
		}
	}
}

func TestFuncBaseName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"main.foo", "foo"},
		{"github.com/bastiangx/argcmd/cmd/argcmd-sub.cmdBar", "cmdBar"},
		{"main.(*tool).CmdBar-fm", "CmdBar"},
		{"main.main.func1", "func1"},
	}

	for _, tc := range testCases {
		if got := FuncBaseName(tc.input); got != tc.expected {
			t.Errorf("FuncBaseName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}

	if !IsAnonymousFunc("func12") || IsAnonymousFunc("funcs") || IsAnonymousFunc("func") {
		t.Error("IsAnonymousFunc misclassified a name")
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v, want empty", got)
	}

	ranks := CreateRankList(3)
	for i, r := range ranks {
		if int(r) != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, r, i+1)
		}
	}

	big := CreateRankList(math.MaxUint16 + 5)
	if last := big[len(big)-1]; last != math.MaxUint16 {
		t.Errorf("last rank = %d, want saturation at %d", last, math.MaxUint16)
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("Stat")
	if f.ShouldInclude("stat") {
		t.Error("input itself should be filtered")
	}
	if !f.ShouldInclude("start") {
		t.Error("first start should be included")
	}
	if f.ShouldInclude("START") {
		t.Error("duplicate start should be filtered")
	}
}
