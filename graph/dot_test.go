package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minersim/simulation"
)

func buildTestChain(t *testing.T) *simulation.Chain {
	t.Helper()
	c := simulation.NewChain()
	a, err := c.AddBlock(0, "H1", simulation.GroupHonest)
	require.NoError(t, err)
	_, err = c.AddBlock(0, "C1", simulation.GroupColluding)
	require.NoError(t, err)
	_, err = c.AddBlock(a.ID(), "H2", simulation.GroupHonest)
	require.NoError(t, err)
	return c
}

func TestRender(t *testing.T) {
	out := Render(buildTestChain(t).Export())

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "genesis")
	// Edges carry the winning miner's label.
	assert.Contains(t, out, `"H1"`)
	assert.Contains(t, out, `"C1"`)
	assert.Contains(t, out, `"H2"`)
	// Colluding blocks are filled pink.
	assert.Contains(t, out, "lightpink")
	// The abandoned colluding block is dashed, the canonical path is blue.
	assert.Contains(t, out, "dashed")
	assert.Contains(t, out, `"blue"`)
}

func TestRenderStraightChainHasNoDashedNodes(t *testing.T) {
	c := simulation.NewChain()
	b, err := c.AddBlock(0, "H1", simulation.GroupHonest)
	require.NoError(t, err)
	_, err = c.AddBlock(b.ID(), "H1", simulation.GroupHonest)
	require.NoError(t, err)

	out := Render(c.Export())
	assert.NotContains(t, out, "dashed")
	assert.NotContains(t, out, "lightpink")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.dot")
	require.NoError(t, WriteFile(path, buildTestChain(t).Export()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph"))
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "chain.dot"), buildTestChain(t).Export())
	assert.Error(t, err)
}
