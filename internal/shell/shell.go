// Package shell runs an interactive prompt that hands each line to a Runner
// and completes command names on tab.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/argcmd/internal/logger"
	"github.com/bastiangx/argcmd/internal/utils"
	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/bastiangx/argcmd/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/shlex"
	"github.com/peterh/liner"
)

const defaultPrompt = "> "

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	hintStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// Runner executes one split command line and returns its exit status.
type Runner interface {
	Run(args []string) int
}

// LineReader is the part of *liner.State the shell uses.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	SetCompleter(f liner.Completer)
	Close() error
}

// Options configure a Shell. Name is used for the banner and the default
// history location.
type Options struct {
	Name   string
	Config config.ShellConfig
	Out    io.Writer
	Logger *log.Logger
}

// Shell reads command lines until exit, quit, Ctrl+D or an aborted prompt.
type Shell struct {
	runner    Runner
	completer suggest.ICompleter
	line      LineReader
	opts      Options
	status    int
}

// New returns a Shell reading from the terminal.
func New(runner Runner, completer suggest.ICompleter, opts Options) *Shell {
	line := liner.NewLiner()
	line.SetCtrlCAborts(opts.Config.CtrlCAborts)
	return NewWithReader(runner, completer, line, opts)
}

// NewWithReader returns a Shell reading lines from line.
func NewWithReader(runner Runner, completer suggest.ICompleter, line LineReader, opts Options) *Shell {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.New(opts.Name)
	}
	if opts.Config.Prompt == "" {
		opts.Config.Prompt = defaultPrompt
	}

	s := &Shell{
		runner:    runner,
		completer: completer,
		line:      line,
		opts:      opts,
	}
	line.SetCompleter(s.complete)
	return s
}

// Status returns the exit status of the last command run.
func (s *Shell) Status() int {
	return s.status
}

// Run is the read loop. It closes the line reader before returning.
func (s *Shell) Run() error {
	var historyPath string
	if s.opts.Config.History {
		historyPath = s.opts.Config.HistoryPath(s.opts.Name)
		s.loadHistory(historyPath)
	}
	if s.opts.Config.Banner {
		s.printBanner()
	}

	err := s.loop()
	if historyPath != "" {
		err = errors.Join(err, s.saveHistory(historyPath))
	}
	return errors.Join(err, s.line.Close())
}

func (s *Shell) loop() error {
	for {
		input, err := s.line.Prompt(s.opts.Config.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.opts.Out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		s.line.AppendHistory(input)

		args, err := shlex.Split(input)
		if err != nil {
			s.opts.Logger.Error("Cannot split line", "line", input, "err", err)
			s.status = 2
			continue
		}
		if len(args) == 1 && (args[0] == "exit" || args[0] == "quit") {
			return nil
		}

		s.status = s.runner.Run(args)
		s.opts.Logger.Debug("Command done", "args", args, "status", s.status)
	}
}

// complete offers command names while the line is still its first token.
func (s *Shell) complete(line string) []string {
	if strings.ContainsAny(line, " \t") {
		return nil
	}
	return suggest.Words(s.completer, line)
}

func (s *Shell) printBanner() {
	names := s.completer.Stats()["words"]
	fmt.Fprintln(s.opts.Out, titleStyle.Render(fmt.Sprintf("[ %s ]", s.opts.Name)))
	fmt.Fprintln(s.opts.Out, hintStyle.Render(fmt.Sprintf("%d command names, Tab completes, exit or Ctrl+D leaves", names)))
}

func (s *Shell) loadHistory(path string) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.opts.Logger.Warn("Cannot open history", "path", path, "err", err)
		}
		return
	}
	defer f.Close()

	n, err := s.line.ReadHistory(f)
	if err != nil {
		s.opts.Logger.Warn("Cannot read history", "path", path, "err", err)
	}
	s.opts.Logger.Debug("History loaded", "path", path, "entries", n)
}

func (s *Shell) saveHistory(path string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	if _, err := s.line.WriteHistory(f); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
