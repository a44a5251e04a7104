package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

func newTestEditor() *Editor {
	g := maplib.NewGrid(8, 8, maplib.TerrainBase)
	return NewEditor(g, maplib.MustDefaultBucketSet())
}

func count(g *maplib.Grid, t maplib.TerrainType) int {
	return g.Histogram()[t]
}

func TestPaintBrushSizes(t *testing.T) {
	e := newTestEditor()
	assert.Equal(t, maplib.TerrainType(3), e.Brush)

	e.Paint(4, 4)
	assert.Equal(t, 1, count(e.Grid, 3))

	e.SetBrushSize(3)
	e.Paint(1, 1)
	assert.Equal(t, 10, count(e.Grid, 3))

	e.SetBrushSize(2)
	e.Paint(6, 6)
	assert.Equal(t, 14, count(e.Grid, 3))
	assert.Equal(t, maplib.TerrainType(3), e.Grid.At(7, 7))
}

func TestPaintClipsAtEdges(t *testing.T) {
	e := newTestEditor()
	e.SetBrushSize(3)
	e.Paint(0, 0)
	assert.Equal(t, 4, count(e.Grid, 3))
	assert.Len(t, e.UndoStack, 1)
	assert.Len(t, e.UndoStack[0], 4)
}

func TestPaintTouchesGrid(t *testing.T) {
	e := newTestEditor()
	rev := e.Grid.Revision()
	e.Paint(2, 2)
	assert.Greater(t, e.Grid.Revision(), rev)

	rev = e.Grid.Revision()
	e.Paint(2, 2)
	assert.Equal(t, rev, e.Grid.Revision(), "no-op paint")
	assert.Len(t, e.UndoStack, 1)
}

func TestUndoRedo(t *testing.T) {
	e := newTestEditor()
	e.Paint(1, 1)
	e.Brush = 2
	e.Paint(1, 1)
	assert.Equal(t, maplib.TerrainType(2), e.Grid.At(1, 1))

	assert.True(t, e.Undo())
	assert.Equal(t, maplib.TerrainType(3), e.Grid.At(1, 1))
	assert.True(t, e.Undo())
	assert.Equal(t, maplib.TerrainBase, e.Grid.At(1, 1))
	assert.False(t, e.Undo())

	assert.True(t, e.Redo())
	assert.Equal(t, maplib.TerrainType(3), e.Grid.At(1, 1))

	e.Paint(5, 5)
	assert.Empty(t, e.RedoStack, "new paint clears redo")
	assert.False(t, e.Redo())
}

func TestStrokeIsOneUndoStep(t *testing.T) {
	e := newTestEditor()
	e.BeginStroke()
	assert.True(t, e.Stroking())
	e.Paint(1, 1)
	e.Paint(2, 1)
	e.Paint(3, 1)
	assert.Empty(t, e.UndoStack, "not committed mid-stroke")
	e.EndStroke()

	assert.Len(t, e.UndoStack, 1)
	assert.Equal(t, 3, count(e.Grid, 3))
	e.Undo()
	assert.Equal(t, 64, count(e.Grid, maplib.TerrainBase))
}

func TestStrokeOverlapRestoresOriginal(t *testing.T) {
	e := newTestEditor()
	e.BeginStroke()
	e.Paint(1, 1)
	e.Brush = 1
	e.Paint(1, 1)
	e.EndStroke()

	e.Undo()
	assert.Equal(t, maplib.TerrainBase, e.Grid.At(1, 1))
}

func TestEmptyStrokeNotCommitted(t *testing.T) {
	e := newTestEditor()
	e.BeginStroke()
	e.EndStroke()
	e.EndStroke()
	assert.Empty(t, e.UndoStack)
	assert.False(t, e.Modified)
}

func TestCycleBrushAndSize(t *testing.T) {
	e := newTestEditor()
	e.CycleBrush(1)
	assert.Equal(t, maplib.TerrainType(0), e.Brush)
	e.CycleBrush(-1)
	assert.Equal(t, maplib.TerrainType(3), e.Brush)
	e.CycleBrush(-5)
	assert.Equal(t, maplib.TerrainType(2), e.Brush)

	e.SetBrushSize(0)
	assert.Equal(t, 1, e.BrushSize)
	e.SetBrushSize(50)
	assert.Equal(t, MaxBrushSize, e.BrushSize)
}

func TestReset(t *testing.T) {
	e := newTestEditor()
	e.Paint(1, 1)
	e.Undo()
	e.BeginStroke()
	e.Reset()
	assert.Empty(t, e.UndoStack)
	assert.Empty(t, e.RedoStack)
	assert.False(t, e.Stroking())
	assert.False(t, e.Modified)
}
