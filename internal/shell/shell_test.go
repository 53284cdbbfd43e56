package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMkdirAndRmrf(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, Mkdir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	require.NoError(t, Rmrf(filepath.Join(dir, "..", "..")))
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	// Removing a path that is already gone is fine.
	require.NoError(t, Rmrf(dir))
}

func TestExec_NonZeroExit(t *testing.T) {
	t.Parallel()

	err := Exec(context.Background(), "sh", "-c", "exit 3")
	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, 3, execErr.Code)
	require.Contains(t, execErr.Error(), "sh -c exit 3")
}

func TestExec_Success(t *testing.T) {
	t.Parallel()

	require.NoError(t, Exec(context.Background(), "sh", "-c", "exit 0"))
}

func TestExecEnv_PassesExtraEnvironment(t *testing.T) {
	t.Parallel()

	// Fails unless the extra variable reaches the child.
	err := ExecEnv(context.Background(), []string{"MASON_PROBE=ok"},
		"sh", "-c", `test "$MASON_PROBE" = ok`)
	require.NoError(t, err)
}

func TestExec_MissingBinary(t *testing.T) {
	t.Parallel()

	err := Exec(context.Background(), "definitely-not-a-real-binary-xyz")
	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, -1, execErr.Code)
}
