package argcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bastiangx/argcmd/internal/logger"
	"github.com/bastiangx/argcmd/internal/shell"
	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/bastiangx/argcmd/pkg/server"
	"github.com/bastiangx/argcmd/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// maxHints caps the "did you mean" list printed for unknown commands.
const maxHints = 3

// App turns a Registry into a command line program.
type App struct {
	name        string
	description string
	version     string
	registry    *Registry
	cfg         *config.Config
	configPath  string
	shell       bool
	ipc         bool
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      *log.Logger

	once sync.Once
}

// AppOption configures an App.
type AppOption func(*App)

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *Registry) AppOption {
	return func(a *App) { a.registry = r }
}

func WithDescription(desc string) AppOption {
	return func(a *App) { a.description = desc }
}

// WithVersion enables the --version flag.
func WithVersion(version string) AppOption {
	return func(a *App) { a.version = version }
}

// WithConfig uses cfg as is, no config file is read.
func WithConfig(cfg *config.Config) AppOption {
	return func(a *App) { a.cfg = cfg }
}

// WithConfigPath reads the config from path before the xdg location.
func WithConfigPath(path string) AppOption {
	return func(a *App) { a.configPath = path }
}

// WithShell controls whether Main starts the interactive shell when it gets
// no arguments. It is on by default.
func WithShell(enabled bool) AppOption {
	return func(a *App) { a.shell = enabled }
}

// WithIPC adds the hidden ipc command serving completions to editors.
func WithIPC(enabled bool) AppOption {
	return func(a *App) { a.ipc = enabled }
}

// WithIO sets the streams given to commands and the ipc server. The
// interactive shell always reads the terminal through liner, only its output
// goes to out.
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.stdin = in
		a.stdout = out
		a.stderr = errOut
	}
}

func WithLogger(l *log.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// New returns an App named name, the program name shown in usage.
func New(name string, opts ...AppOption) *App {
	a := &App{
		name:     name,
		registry: DefaultRegistry,
		shell:    true,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) init() {
	a.once.Do(func() {
		if a.cfg == nil {
			cfg, path := config.LoadConfigWithPriority(a.name, a.configPath)
			a.cfg = cfg
			a.configPath = path
			logger.SetGlobal(cfg.Log)
		}
		if a.logger == nil {
			a.logger = logger.NewWithConfig(a.name, a.cfg.Log, a.stderr)
		}
		a.logger.Debug("App ready", "commands", len(a.registry.Commands()),
			"config", config.GetActiveConfigPath(a.name, a.configPath))
	})
}

// Registry returns the registry the App dispatches to.
func (a *App) Registry() *Registry {
	return a.registry
}

// Run parses args as one command line, runs the selected command and
// returns the exit status: 0 on success, the code of an *ExitError, 2 for
// usage errors and 1 for any other error.
func (a *App) Run(args []string) int {
	a.init()
	if args == nil {
		args = []string{}
	}

	root := a.buildRoot()
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if cmd == nil {
		cmd = root
	}
	return a.exitStatus(cmd, err)
}

// Main runs the interactive shell when args is empty and the shell is
// enabled, and Run(args) otherwise. Owners started by commands are torn
// down before it returns.
func (a *App) Main(args []string) int {
	a.init()

	var status int
	if len(args) == 0 && a.shell {
		status = a.runShell()
	} else {
		status = a.Run(args)
	}

	if err := a.registry.TearDown(); err != nil {
		a.logger.Error("Teardown failed", "err", err)
		if status == 0 {
			status = 1
		}
	}
	return status
}

func (a *App) runShell() int {
	sh := shell.New(a, a.registry.Completer(), shell.Options{
		Name:   a.name,
		Config: a.cfg.Shell,
		Out:    a.stdout,
		Logger: a.logger,
	})
	if err := sh.Run(); err != nil {
		a.logger.Error("Shell failed", "err", err)
		return 1
	}
	return sh.Status()
}

func (a *App) buildRoot() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           a.name,
		Short:         a.description,
		Version:       a.version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				a.logger.SetLevel(log.DebugLevel)
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Err: ErrNoCommand}
			}
			return &UsageError{Err: fmt.Errorf("%w: %q", ErrUnknownCommand, args[0]), Name: args[0]}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Toggle debug logging")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	for _, c := range a.registry.Commands() {
		root.AddCommand(a.subcommand(c))
	}
	if _, taken := a.registry.Lookup("ipc"); a.ipc && !taken {
		root.AddCommand(a.ipcCommand())
	}
	return root
}

func (a *App) subcommand(c *Command) *cobra.Command {
	cc := &cobra.Command{
		Use:     c.Name,
		Aliases: c.Aliases,
		Short:   c.Help,
		Long:    c.Description,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("Running command", "name", c.Name, "args", args)
			return a.registry.invoke(c, cmd, args)
		},
	}
	if c.Args != nil {
		c.Args(cc)
		if cc.Name() != c.Name {
			a.logger.Warn("Args function changed the command name, keeping it", "name", c.Name, "use", cc.Use)
			cc.Use = c.Name
		}
	}
	wrapArgs(cc)
	return cc
}

// wrapArgs makes positional argument errors usage errors.
func wrapArgs(cc *cobra.Command) {
	validate := cc.Args
	if validate == nil {
		return
	}
	cc.Args = func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func (a *App) ipcCommand() *cobra.Command {
	cc := &cobra.Command{
		Use:    "ipc",
		Short:  "Serve command name completions as msgpack over stdin/stdout",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.NewServerWithIO(a.registry.Completer(), a.cfg.Server, a.stdin, a.stdout)
			return srv.Start()
		},
	}
	wrapArgs(cc)
	return cc
}

func (a *App) exitStatus(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	var usageErr *UsageError
	switch {
	case errors.As(err, &exitErr):
		if exitErr.Err != nil {
			a.logger.Error("Command failed", "command", cmd.CommandPath(), "status", exitErr.Code, "err", exitErr.Err)
		}
		return exitErr.Code
	case errors.As(err, &usageErr):
		a.printUsageError(cmd, usageErr)
		return 2
	default:
		a.logger.Error("Command failed", "command", cmd.CommandPath(), "err", err)
		return 1
	}
}

func (a *App) printUsageError(cmd *cobra.Command, err *UsageError) {
	fmt.Fprint(a.stderr, cmd.UsageString())
	fmt.Fprintf(a.stderr, "%s: error: %v\n", cmd.CommandPath(), err)
	if err.Name == "" {
		return
	}
	if hints := suggest.DidYouMean(err.Name, a.registry.Names(), maxHints); len(hints) > 0 {
		fmt.Fprintln(a.stderr, "\nDid you mean this?")
		for _, h := range hints {
			fmt.Fprintf(a.stderr, "\t%s\n", h)
		}
	}
}
