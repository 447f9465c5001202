// Copyright 2025 The argcmd Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main is a small program built with argcmd, with one command
registered from a function and one from a method.

# Usage

Run a command:

	argcmd-sub foo -a 5
	argcmd-sub bar hello

Run without arguments for an interactive shell, where Tab completes command
names and history is kept under $XDG_STATE_HOME/argcmd-sub:

	argcmd-sub
	> f<Tab>
	> foo --arg 2

An unknown command exits with status 2 and lists the closest names:

	argcmd-sub baz

# Configuration

Read from $XDG_CONFIG_HOME/argcmd-sub/config.toml, created with defaults on
first run:

	[shell]
	prompt = "> "
	history = true
	ctrl_c_aborts = true
	banner = true

	[server]
	max_limit = 64

	[log]
	level = "warn"

# IPC

The hidden ipc command serves command name completions as MessagePack over
stdin/stdout for editors, see examples/ipc_client:

	{"id": "req1", "p": "f"}
	{"id": "req1", "s": [{"w": "foo", "r": 1}], "c": 1, "t": 12}
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/argcmd/pkg/argcmd"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	AppName = "argcmd-sub"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func someCrazyName(cmd *cobra.Command) {
	cmd.Flags().StringP("arg", "a", "1", "arg help")
}

func foo(cmd *cobra.Command, args []string) error {
	arg, err := cmd.Flags().GetString("arg")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), arg)
	return nil
}

// sub holds the commands registered by method name.
type sub struct{}

func (sub) CmdBar(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), args[0])
	return nil
}

func (sub) ArgsBar(cmd *cobra.Command) {
	cmd.Use = "bar ARG"
	cmd.Args = cobra.ExactArgs(1)
}

func (sub) HelpBar() string {
	return "Registered via method name"
}

func main() {
	sigHandler()

	argcmd.Handle(foo, argcmd.WithArgs(someCrazyName), argcmd.WithHelp("Registered via function"))
	argcmd.HandleMethods(sub{})

	argcmd.Main(AppName,
		argcmd.WithDescription("Example argcmd program"),
		argcmd.WithVersion(Version),
		argcmd.WithIPC(true),
	)
}
