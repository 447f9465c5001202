package argcmd

import "os"

// DefaultRegistry is the registry used by Handle, HandleMethods and Main.
var DefaultRegistry = NewRegistry()

// Handle registers run on DefaultRegistry and panics if that fails, as
// http.Handle does for bad patterns.
func Handle(run RunFunc, opts ...Option) *Command {
	c, err := DefaultRegistry.Register(run, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// HandleMethods registers owner's Cmd methods on DefaultRegistry and panics
// if that fails.
func HandleMethods(owner any) {
	if err := DefaultRegistry.RegisterMethods(owner); err != nil {
		panic(err)
	}
}

// Main runs an App over DefaultRegistry with the process arguments and exits
// with its status.
func Main(name string, opts ...AppOption) {
	os.Exit(New(name, opts...).Main(os.Args[1:]))
}
