package vision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trackbench/internal/domain/entity"
)

func TestTextColor(t *testing.T) {
	require.Equal(t, AlertColor, TextColor(entity.TextAlert))
	require.Equal(t, InfoColor, TextColor(entity.TextInfo))
}

func TestBound(t *testing.T) {
	for _, a := range []entity.Algorithm{entity.AlgorithmMIL, entity.AlgorithmGOTURN, entity.AlgorithmKCF, entity.AlgorithmCSRT} {
		require.True(t, Bound(a), a)
	}
	for _, a := range []entity.Algorithm{entity.AlgorithmBoosting, entity.AlgorithmTLD, entity.AlgorithmMedianFlow, entity.AlgorithmMOSSE} {
		require.False(t, Bound(a), a)
	}
}

func TestGoturnModelPresent(t *testing.T) {
	dir := t.TempDir()
	require.False(t, goturnModelPresent(dir))

	for _, name := range goturnModelFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.True(t, goturnModelPresent(dir))
}

func TestHeadlessDisplay(t *testing.T) {
	d := NewHeadlessDisplay()
	require.NoError(t, d.Show(nil, entity.Overlay{}))
	require.Equal(t, -1, d.WaitKey(0))
	require.Equal(t, 1, d.Shown())
	require.NoError(t, d.Close())
}

func TestResolveModelDir(t *testing.T) {
	dir, err := resolveModelDir("/opt/models/goturn")
	require.NoError(t, err)
	require.Equal(t, "/opt/models/goturn", dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir, err = resolveModelDir("")
	require.NoError(t, err)
	require.Equal(t, wd, dir)
}
