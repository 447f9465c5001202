package argcmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// RunFunc executes a command. Returning an *ExitError picks the exit status,
// any other error exits with 1.
type RunFunc func(cmd *cobra.Command, args []string) error

// ArgsFunc declares a command's flags and positional arguments on its cobra
// command. It may set Args, flags and a Use line that starts with the
// command's name.
type ArgsFunc func(cmd *cobra.Command)

// Command is one registered subcommand.
type Command struct {
	Name        string
	Aliases     []string
	Help        string
	Description string
	Args        ArgsFunc
	Run         RunFunc

	exec *executor
}

// Option configures a command registered with Register.
type Option func(*Command)

// WithName overrides the name derived from the function.
func WithName(name string) Option {
	return func(c *Command) { c.Name = name }
}

// WithAliases adds alternative names, each completes like the name itself.
func WithAliases(aliases ...string) Option {
	return func(c *Command) { c.Aliases = append(c.Aliases, aliases...) }
}

// WithArgs sets the function that declares the command's arguments.
func WithArgs(fn ArgsFunc) Option {
	return func(c *Command) { c.Args = fn }
}

// WithHelp sets the command's doc string, see SplitDoc.
func WithHelp(doc string) Option {
	return func(c *Command) { c.Help, c.Description = SplitDoc(doc) }
}

const noDocumentation = "*no documentation*"

// SplitDoc splits a doc string into a one line help and a description.
//
// The first line is the help. The remaining lines form the description and
// lose the indentation of the first indented line among them, so docs can be
// written indented inside Go source:
//
//	SplitDoc(`Deploy a release
//
//	    Builds the artifact and pushes it.
//	      --force skips checks`)
//
// gives "Deploy a release" and "Builds the artifact and pushes it.\n  --force skips checks".
func SplitDoc(doc string) (help, description string) {
	doc = strings.TrimRight(strings.TrimLeft(doc, "\r\n"), " \t\r\n")
	if doc == "" {
		doc = noDocumentation
	}

	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	for _, line := range lines[1:] {
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if indent == "" {
			continue
		}
		for i := 1; i < len(lines); i++ {
			lines[i] = strings.TrimPrefix(lines[i], indent)
		}
		break
	}

	help = strings.TrimSpace(lines[0])
	description = strings.Trim(strings.Join(lines[1:], "\n"), "\n")
	return help, description
}

// names returns the name followed by the aliases.
func (c *Command) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}
