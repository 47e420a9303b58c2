package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptMissingCommand(t *testing.T) {
	inv := &ScriptInvoker{}
	err := inv.Invoke(context.Background(), testEvent(t, `{}`), map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHandlerInvalid))
}

func TestScriptReceivesEventOnStdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stdin.json")

	inv := &ScriptInvoker{}
	err := inv.Invoke(context.Background(), testEvent(t, `{"hook_event_name": "Stop"}`), map[string]interface{}{
		"command": "cat > " + out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hook_event_name": "Stop"}`, string(data))
}

func TestScriptReceivesConfigEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "env.txt")

	inv := &ScriptInvoker{}
	err := inv.Invoke(context.Background(), testEvent(t, `{}`), map[string]interface{}{
		"command":    "printf '%s' \"$BOOP_CHANNEL\" > " + out,
		"channel":    "alerts",
		"retries":    float64(3), // non-strings are not exported
		"some-thing": "dashed",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "alerts", string(data))
}

func TestScriptFailurePropagates(t *testing.T) {
	inv := &ScriptInvoker{}
	err := inv.Invoke(context.Background(), testEvent(t, `{}`), map[string]interface{}{
		"command": "exit 3",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHandlerExecute))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "CHANNEL", envName("channel"))
	assert.Equal(t, "SOME_THING", envName("some-thing"))
	assert.Equal(t, "A_B_2", envName("a.b 2"))
}
