/*
Package argcmd builds subcommand based command line programs from plain Go
functions and methods.

Commands are registered on a Registry, or on DefaultRegistry through the
package level helpers, and an App turns the registry into a cobra command
tree for every command line it runs.

# Registering functions

The command name comes from the function's Go name unless WithName is
given. A leading cmd, Cmd or cmd_ marker is dropped and the rest is turned
into a lower case hyphenated token:

	func cmdDeployRelease(cmd *cobra.Command, args []string) error { ... }

	argcmd.Handle(cmdDeployRelease, argcmd.WithHelp("Deploy a release"))

registers deploy-release. WithArgs declares flags and positional arguments
on the cobra command before it is parsed:

	argcmd.Handle(cmdFoo, argcmd.WithArgs(func(cmd *cobra.Command) {
		cmd.Flags().StringP("arg", "a", "1", "value to print")
	}))

# Registering methods

HandleMethods registers every exported Cmd<Name> method of a value. Args<Name>
and Help<Name> methods, when present, play the part of WithArgs and WithHelp:

	type tool struct{ db *sql.DB }

	func (t *tool) CmdBar(cmd *cobra.Command, args []string) error { ... }
	func (t *tool) ArgsBar(cmd *cobra.Command) { cmd.Args = cobra.ExactArgs(1) }
	func (t *tool) HelpBar() string { return "Print the argument" }

	argcmd.HandleMethods(&tool{})

If the value implements Starter it is started right before the first of its
commands runs, and if it implements Stopper it is stopped when the App
finishes.

# Running

	func main() {
		argcmd.Main("mytool", argcmd.WithVersion("1.0.0"))
	}

Main runs one command line and exits with its status: 0 on success, the
code of an ExitError returned by the command, 2 for usage errors such as an
unknown command (with close names suggested) and 1 for other errors. Started
without arguments it opens an interactive shell that completes command names
on tab.

Command names and aliases are kept in a counted prefix trie (package trie),
which also backs the shell completion and the hidden ipc command used by
editors.
*/
package argcmd
