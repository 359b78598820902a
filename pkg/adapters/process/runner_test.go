package process

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
}

func TestRunner_Execute(t *testing.T) {
	skipOnWindows(t)

	runner := NewRunner()
	runner.Register("greet", "echo", "hello")

	t.Run("Executes Registered Command", func(t *testing.T) {
		out, err := runner.Execute(context.Background(), Call{Name: "greet", Args: []string{"world"}})
		require.NoError(t, err)
		assert.Equal(t, "hello world", out)
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		_, err := runner.Execute(context.Background(), Call{Name: "hacker_script"})
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("Passes Variables via Env", func(t *testing.T) {
		runner.Register("echo_env", "sh", "-c", "echo $REEL_ARG_MSG")
		out, err := runner.Execute(context.Background(), Call{
			Name: "echo_env",
			Vars: map[string]string{"msg": "SecretMessage"},
		})
		require.NoError(t, err)
		assert.Equal(t, "SecretMessage", out)
	})

	t.Run("Reports Stderr On Failure", func(t *testing.T) {
		runner.Register("fail", "sh", "-c", "echo boom >&2; exit 3")
		_, err := runner.Execute(context.Background(), Call{Name: "fail"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Feeds Stdin", func(t *testing.T) {
		runner.Register("cat", "cat")
		out, err := runner.Execute(context.Background(), Call{Name: "cat", Stdin: strings.NewReader("piped")})
		require.NoError(t, err)
		assert.Equal(t, "piped", out)
	})
}

func TestRunner_Registry(t *testing.T) {
	runner := NewRunner(WithRegistry(DefaultCommands()))
	assert.True(t, runner.Registered(ViewerCommand))
	assert.Equal(t, []string{EncoderCommand, ViewerCommand}, runner.Names())
}

func TestViewer_PipesPNG(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	out := filepath.Join(dir, "shown.png")
	runner := NewRunner()
	runner.Register(ViewerCommand, "sh", "-c", "cat > "+out)

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	require.NoError(t, NewViewer(runner).Display(context.Background(), img))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
}

func TestEncoder_PassesFramesThenTarget(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	runner := NewRunner(WithBaseDir(dir))
	runner.Register(EncoderCommand, "sh", "-c", `echo "$@" > args.txt`, "encoder")

	err := NewEncoder(runner).Encode(context.Background(), []string{"anim/a000.png", "anim/a001.png"}, "a")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "anim/a000.png anim/a001.png a.gif", strings.TrimSpace(string(data)))
}

func TestEncoder_NoFrames(t *testing.T) {
	err := NewEncoder(NewRunner()).Encode(context.Background(), nil, "a")
	assert.Error(t, err)
}

func TestLoadCommands(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "commands.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
commands:
  - name: viewer
    command: feh
    args: ["-"]
  - command: nameless
`), 0644))
	cmds, err := LoadCommands(yamlPath)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "feh", cmds["viewer"].Command)

	jsonPath := filepath.Join(dir, "commands.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"commands":[{"name":"encoder","command":"ffmpeg"}]}`), 0644))
	cmds, err = LoadCommands(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg", cmds["encoder"].Command)

	cmds, err = LoadCommands(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}
