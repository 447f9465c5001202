package argcmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/bastiangx/argcmd/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type tool struct {
	started, stopped int
	stopErr          error
}

func (t *tool) Start() error {
	t.started++
	return nil
}

func (t *tool) Stop() error {
	t.stopped++
	return t.stopErr
}

func (t *tool) CmdBar(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), args[0])
	return nil
}

func (t *tool) ArgsBar(cmd *cobra.Command) {
	cmd.Use = "bar ARG"
	cmd.Args = cobra.ExactArgs(1)
}

type testApp struct {
	*App
	out, err bytes.Buffer
	owner    *tool
}

func newTestApp(t *testing.T, in io.Reader, opts ...AppOption) *testApp {
	t.Helper()

	r := NewRegistry()
	_, err := r.Register(func(cmd *cobra.Command, args []string) error {
		arg, _ := cmd.Flags().GetString("arg")
		fmt.Fprintln(cmd.OutOrStdout(), arg)
		return nil
	}, WithName("foo"), WithAliases("f"), WithArgs(func(cmd *cobra.Command) {
		cmd.Flags().StringP("arg", "a", "1", "value to print")
	}))
	require.NoError(t, err)

	_, err = r.Register(func(*cobra.Command, []string) error {
		return errors.New("disk full")
	}, WithName("fail"))
	require.NoError(t, err)

	_, err = r.Register(func(*cobra.Command, []string) error {
		return Exit(3)
	}, WithName("exit-three"))
	require.NoError(t, err)

	_, err = r.Register(func(*cobra.Command, []string) error {
		return &ExitError{Code: 4, Err: errors.New("partial")}
	}, WithName("exit-four"))
	require.NoError(t, err)

	owner := &tool{}
	require.NoError(t, r.RegisterMethods(owner))

	if in == nil {
		in = strings.NewReader("")
	}
	ta := &testApp{owner: owner}
	opts = append([]AppOption{
		WithRegistry(r),
		WithConfig(config.DefaultConfig()),
		WithIO(in, &ta.out, &ta.err),
		WithLogger(log.New(io.Discard)),
		WithShell(false),
	}, opts...)
	ta.App = New("demo", opts...)
	return ta
}

func TestRunSuccess(t *testing.T) {
	testCases := []struct {
		args     []string
		expected string
		name     string
	}{
		{[]string{"foo"}, "1\n", "Flag default"},
		{[]string{"foo", "-a", "5"}, "5\n", "Short flag"},
		{[]string{"f", "--arg=x"}, "x\n", "Alias and long flag"},
		{[]string{"bar", "hello"}, "hello\n", "Method command"},
		{[]string{"--debug", "foo"}, "1\n", "Root flag"},
	}

	t.Cleanup(func() { log.SetLevel(log.WarnLevel) })

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, nil)
			assert.Equal(t, 0, app.Run(tc.args))
			assert.Equal(t, tc.expected, app.out.String())
			assert.Empty(t, app.err.String())
		})
	}
}

func TestRunExitStatus(t *testing.T) {
	testCases := []struct {
		args     []string
		expected int
		name     string
	}{
		{[]string{"fail"}, 1, "Command error"},
		{[]string{"exit-three"}, 3, "Exit"},
		{[]string{"exit-four"}, 4, "ExitError with cause"},
		{[]string{"bar"}, 2, "Missing positional argument"},
		{[]string{"bar", "a", "b"}, 2, "Extra positional argument"},
		{[]string{"foo", "--bogus"}, 2, "Unknown flag"},
		{[]string{"fooo"}, 2, "Unknown command"},
		{nil, 2, "No command"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, nil)
			assert.Equal(t, tc.expected, app.Run(tc.args))
		})
	}
}

func TestUsageErrorOutput(t *testing.T) {
	app := newTestApp(t, nil)
	require.Equal(t, 2, app.Run([]string{"fooo"}))

	stderr := app.err.String()
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, `demo: error: unknown command: "fooo"`)
	assert.Contains(t, stderr, "Did you mean this?\n\tfoo\n")

	app = newTestApp(t, nil)
	require.Equal(t, 2, app.Run([]string{"bar"}))
	assert.Contains(t, app.err.String(), "bar ARG")
	assert.Contains(t, app.err.String(), "demo bar: error:")
	assert.NotContains(t, app.err.String(), "Did you mean")
}

func TestHelpListsCommands(t *testing.T) {
	app := newTestApp(t, nil, WithDescription("Demo tool"))
	require.Equal(t, 0, app.Run([]string{"--help"}))

	out := app.out.String()
	assert.Contains(t, out, "Demo tool")
	for _, name := range []string{"foo", "bar", "fail", "exit-three"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "completion")
}

func TestVersion(t *testing.T) {
	app := newTestApp(t, nil, WithVersion("1.2.3"))
	require.Equal(t, 0, app.Run([]string{"--version"}))
	assert.Contains(t, app.out.String(), "1.2.3")
}

func TestMainTearsDown(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, 0, app.Main([]string{"bar", "x"}))
	assert.Equal(t, 1, app.owner.started)
	assert.Equal(t, 1, app.owner.stopped)

	assert.Equal(t, 0, app.Main([]string{"bar", "y"}))
	assert.Equal(t, 2, app.owner.started)
	assert.Equal(t, 2, app.owner.stopped)

	assert.Equal(t, 0, app.Main([]string{"foo"}))
	assert.Equal(t, 2, app.owner.stopped, "owner not started by foo")
}

func TestMainTearDownFailure(t *testing.T) {
	app := newTestApp(t, nil)
	app.owner.stopErr = errors.New("flush failed")

	assert.Equal(t, 1, app.Main([]string{"bar", "x"}))
	assert.Equal(t, 1, app.owner.stopped)

	assert.Equal(t, 3, app.Main([]string{"exit-three"}), "owner not started, nothing to tear down")
}

func TestMainWithoutShell(t *testing.T) {
	app := newTestApp(t, nil)
	assert.Equal(t, 2, app.Main(nil))
}

func TestIPC(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(server.Request{ID: "r1", Prefix: "ex"}))

	app := newTestApp(t, &in, WithIPC(true))
	require.Equal(t, 0, app.Run([]string{"ipc"}))

	dec := msgpack.NewDecoder(&app.out)
	var ready server.StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)

	var resp server.CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, []server.CompletionSuggestion{{Word: "exit-four", Rank: 1}, {Word: "exit-three", Rank: 2}}, resp.Suggestions)
}

func TestIPCDisabled(t *testing.T) {
	app := newTestApp(t, nil)
	assert.Equal(t, 2, app.Run([]string{"ipc"}))
}

func TestHandle(t *testing.T) {
	saved := DefaultRegistry
	DefaultRegistry = NewRegistry()
	t.Cleanup(func() { DefaultRegistry = saved })

	c := Handle(cmdFooBar, WithHelp("Foo and bar"))
	assert.Equal(t, "foo-bar", c.Name)
	assert.Panics(t, func() { Handle(cmdFooBar) })

	HandleMethods(&lifecycle{})
	assert.Equal(t, []string{"alpha", "beta-gamma", "foo-bar"}, DefaultRegistry.Names())
	assert.Panics(t, func() { HandleMethods(badSignature{}) })

	app := New("demo")
	assert.Same(t, DefaultRegistry, app.Registry())
}

func TestConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nmax_limit = 1\n"), 0o644))

	var in bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(server.Request{ID: "r1", Prefix: "ex"}))

	app := newTestApp(t, &in, WithConfig(nil), WithConfigPath(path), WithIPC(true))
	require.Equal(t, 0, app.Run([]string{"ipc"}))

	dec := msgpack.NewDecoder(&app.out)
	var ready server.StatusResponse
	require.NoError(t, dec.Decode(&ready))

	var resp server.CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, []server.CompletionSuggestion{{Word: "exit-four", Rank: 1}}, resp.Suggestions)
}
