package argcmd

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"sync"

	"github.com/bastiangx/argcmd/internal/utils"
	"github.com/bastiangx/argcmd/pkg/suggest"
	"github.com/spf13/cobra"
)

// Starter is implemented by method owners that need setup before the first
// of their commands runs.
type Starter interface {
	Start() error
}

// Stopper is implemented by method owners that need cleanup on TearDown.
type Stopper interface {
	Stop() error
}

// executor tracks the lifecycle of one owner registered with RegisterMethods.
// It is not safe for concurrent command execution.
type executor struct {
	owner   any
	started bool
}

func (e *executor) start() error {
	if e == nil || e.started {
		return nil
	}
	if s, ok := e.owner.(Starter); ok {
		if err := s.Start(); err != nil {
			return err
		}
	}
	e.started = true
	return nil
}

func (e *executor) tearDown() error {
	if e == nil || !e.started {
		return nil
	}
	e.started = false
	if s, ok := e.owner.(Stopper); ok {
		return s.Stop()
	}
	return nil
}

// Registry holds the registered commands and feeds their names and aliases
// to a completion trie.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]*Command
	executors []*executor
	// completer is set once by NewRegistry, it locks on its own.
	completer *suggest.Completer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]*Command),
		completer: suggest.NewCompleter(),
	}
}

// Add registers c under its name and aliases.
//
// When c.Help is empty, c.Description is taken as a doc string and split
// with SplitDoc into Help and Description once c is registered. A command
// that Add rejects is left as it was.
func (r *Registry) Add(c *Command) error {
	if c.Run == nil {
		return fmt.Errorf("%w: %q has no run function", ErrInvalidSignature, c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.addLocked(c); err != nil {
		return err
	}
	if c.Help == "" {
		c.Help, c.Description = SplitDoc(c.Description)
	}
	return nil
}

func (r *Registry) addLocked(c *Command) error {
	names := c.names()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !utils.IsValidName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if _, taken := r.commands[name]; taken || seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicate, name)
		}
		seen[name] = true
	}

	for _, name := range names {
		r.commands[name] = c
		r.completer.AddWord(name)
	}
	return nil
}

// Remove unregisters the command known by name, together with its other
// names. It returns an error wrapping ErrNotFound for unknown names.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r.removeLocked(c)
}

func (r *Registry) removeLocked(c *Command) error {
	var errs []error
	for _, name := range c.names() {
		delete(r.commands, name)
		errs = append(errs, r.completer.RemoveWord(name))
	}
	return errors.Join(errs...)
}

// Lookup finds a command by name or alias.
func (r *Registry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cmds []*Command
	for name, c := range r.commands {
		if name == c.Name {
			cmds = append(cmds, c)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Names returns every name and alias in ascending order.
func (r *Registry) Names() []string {
	return suggest.Words(r.completer, "")
}

// Completer returns the completion service over the registered names. It is
// the same value for the life of the Registry.
func (r *Registry) Completer() *suggest.Completer {
	return r.completer
}

// Register adds run as a command. Unless WithName is given, the name is
// derived from the Go name of run: cmdFooBar, cmd_foo_bar and fooBar all
// become foo-bar. Function literals need WithName.
func (r *Registry) Register(run RunFunc, opts ...Option) (*Command, error) {
	if run == nil {
		return nil, fmt.Errorf("%w: nil run function", ErrInvalidSignature)
	}

	c := &Command{Run: run}
	for _, opt := range opts {
		opt(c)
	}
	if c.Name == "" {
		base := utils.FuncBaseName(runtime.FuncForPC(reflect.ValueOf(run).Pointer()).Name())
		if utils.IsAnonymousFunc(base) {
			return nil, fmt.Errorf("%w: function literal %s needs WithName", ErrInvalidName, base)
		}
		c.Name = utils.Slugify(base)
	}

	if err := r.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	runFuncType  = reflect.TypeOf((func(*cobra.Command, []string) error)(nil))
	argsFuncType = reflect.TypeOf((func(*cobra.Command))(nil))
	helpFuncType = reflect.TypeOf((func() string)(nil))
)

// RegisterMethods registers every exported method of owner named Cmd<Name>
// as command slug(<Name>). Matching Args<Name> and Help<Name> methods supply
// its arguments and doc string. The owner is started (Starter) before the
// first of its commands runs and stopped (Stopper) by TearDown.
//
// Either all of owner's commands are registered or none is.
func (r *Registry) RegisterMethods(owner any) error {
	v := reflect.ValueOf(owner)
	if !v.IsValid() {
		return fmt.Errorf("%w: nil owner", ErrInvalidSignature)
	}
	t := v.Type()
	exec := &executor{owner: owner}

	var cmds []*Command
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		suffix := utils.TrimCommandPrefix(m.Name)
		if suffix == m.Name {
			continue
		}

		method := v.Method(i)
		if method.Type() != runFuncType {
			return fmt.Errorf("%w: %s.%s is %s", ErrInvalidSignature, t, m.Name, method.Type())
		}
		c := &Command{
			Name: utils.Slugify(m.Name),
			Run:  method.Interface().(func(*cobra.Command, []string) error),
			exec: exec,
		}

		if am := v.MethodByName("Args" + suffix); am.IsValid() {
			if am.Type() != argsFuncType {
				return fmt.Errorf("%w: %s.Args%s is %s", ErrInvalidSignature, t, suffix, am.Type())
			}
			c.Args = am.Interface().(func(*cobra.Command))
		}

		var doc string
		if hm := v.MethodByName("Help" + suffix); hm.IsValid() {
			if hm.Type() != helpFuncType {
				return fmt.Errorf("%w: %s.Help%s is %s", ErrInvalidSignature, t, suffix, hm.Type())
			}
			doc = hm.Interface().(func() string)()
		}
		c.Help, c.Description = SplitDoc(doc)
		cmds = append(cmds, c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range cmds {
		if err := r.addLocked(c); err != nil {
			for _, added := range cmds[:i] {
				_ = r.removeLocked(added)
			}
			return err
		}
	}
	if len(cmds) > 0 {
		r.executors = append(r.executors, exec)
	}
	return nil
}

// invoke starts the command's owner if needed, then runs it.
func (r *Registry) invoke(c *Command, cmd *cobra.Command, args []string) error {
	if err := c.exec.start(); err != nil {
		return fmt.Errorf("starting %s: %w", c.Name, err)
	}
	return c.Run(cmd, args)
}

// TearDown stops every started owner once, in registration order. Owners
// are started again by their next command.
func (r *Registry) TearDown() error {
	r.mu.RLock()
	executors := append([]*executor(nil), r.executors...)
	r.mu.RUnlock()

	var errs []error
	for _, e := range executors {
		errs = append(errs, e.tearDown())
	}
	return errors.Join(errs...)
}

// Reset forgets every command and owner. The Completer keeps its identity,
// so shells and servers already holding it see the empty vocabulary.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = make(map[string]*Command)
	r.executors = nil
	r.completer.Reset()
}
