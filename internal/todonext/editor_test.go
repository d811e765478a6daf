package todonext

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todonext/pkg/executil"
)

func TestEditor_Edit(t *testing.T) {
	rec := &executil.RecordingExecutor{
		OnRun: func(cmd string, args []string) error {
			path := args[len(args)-1]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if string(data) != "call bob\n" {
				return errors.New("unexpected initial text")
			}
			return os.WriteFile(path, []byte("call bob\n  @phone due:tomorrow\n\n"), 0o644)
		},
	}
	e := NewEditor("code --wait", rec)

	got, err := e.Edit(context.Background(), "call bob")
	require.NoError(t, err)
	assert.Equal(t, "call bob @phone due:tomorrow", got)

	require.Len(t, rec.Commands, 1)
	assert.Equal(t, "code", rec.Commands[0].Cmd)
	assert.Equal(t, "--wait", rec.Commands[0].Args[0])
	assert.True(t, rec.Commands[0].Interactive)

	_, err = os.Stat(rec.Commands[0].Args[1])
	assert.True(t, os.IsNotExist(err), "temp file must be removed")
}

func TestEditor_Failure(t *testing.T) {
	rec := &executil.RecordingExecutor{Errors: map[string]error{"vi": errors.New("exit status 1")}}
	e := NewEditor("vi", rec)

	_, err := e.Edit(context.Background(), "x")
	assert.Error(t, err)
}

func TestOpenTarget(t *testing.T) {
	env := newTestApp(t, "")

	require.NoError(t, env.app.OpenTarget(context.Background(), "https://example.com"))

	require.Len(t, env.exec.Commands, 1)
	assert.Equal(t, executil.OpenCommand(), env.exec.Commands[0].Cmd)
	assert.Equal(t, []string{"https://example.com"}, env.exec.Commands[0].Args)
	assert.False(t, env.exec.Commands[0].Interactive)
}
