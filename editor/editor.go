// Package editor paints terrain onto a live grid with undo and redo.
package editor

import (
	"github.com/1siamBot/dualgrid/engine/maplib"
)

// MaxBrushSize bounds the square brush edge.
const MaxBrushSize = 9

// Action represents one undoable cell write
type Action struct {
	X, Y int
	Old  maplib.TerrainType
	New  maplib.TerrainType
}

// Editor holds brush state for a grid
type Editor struct {
	Grid      *maplib.Grid
	Buckets   *maplib.BucketSet
	Brush     maplib.TerrainType
	BrushSize int
	UndoStack [][]Action
	RedoStack [][]Action
	Modified  bool

	stroke   []Action
	stroking bool
}

// NewEditor creates an editor painting the highest terrain type first.
func NewEditor(g *maplib.Grid, buckets *maplib.BucketSet) *Editor {
	return &Editor{
		Grid:      g,
		Buckets:   buckets,
		Brush:     maplib.TerrainType(buckets.Len() - 1),
		BrushSize: 1,
	}
}

// Reset forgets history after the grid was replaced.
func (e *Editor) Reset() {
	e.UndoStack = nil
	e.RedoStack = nil
	e.stroke = nil
	e.stroking = false
	e.Modified = false
}

// CycleBrush moves the brush by delta terrain types, wrapping around.
func (e *Editor) CycleBrush(delta int) {
	n := e.Buckets.Len()
	e.Brush = maplib.TerrainType(((int(e.Brush)+delta)%n + n) % n)
}

// SetBrushSize clamps the brush edge to [1, MaxBrushSize].
func (e *Editor) SetBrushSize(size int) {
	e.BrushSize = max(1, min(size, MaxBrushSize))
}

// BeginStroke groups subsequent Paint calls into one undo step.
func (e *Editor) BeginStroke() {
	e.stroking = true
	e.stroke = nil
}

// EndStroke commits the current stroke.
func (e *Editor) EndStroke() {
	if !e.stroking {
		return
	}
	e.stroking = false
	e.commit(e.stroke)
	e.stroke = nil
}

// Stroking reports whether a stroke is open.
func (e *Editor) Stroking() bool { return e.stroking }

// Paint applies the current brush centered at (cx, cy). Outside a stroke
// each call is its own undo step.
func (e *Editor) Paint(cx, cy int) {
	var actions []Action
	r := (e.BrushSize - 1) / 2
	for dy := -r; dy <= e.BrushSize-1-r; dy++ {
		for dx := -r; dx <= e.BrushSize-1-r; dx++ {
			x, y := cx+dx, cy+dy
			if !e.Grid.InBounds(x, y) {
				continue
			}
			old := e.Grid.At(x, y)
			if old == e.Brush {
				continue
			}
			e.Grid.Set(x, y, e.Brush)
			actions = append(actions, Action{X: x, Y: y, Old: old, New: e.Brush})
		}
	}
	if len(actions) == 0 {
		return
	}
	e.Grid.Touch()
	if e.stroking {
		e.stroke = append(e.stroke, actions...)
		return
	}
	e.commit(actions)
}

func (e *Editor) commit(actions []Action) {
	if len(actions) == 0 {
		return
	}
	e.UndoStack = append(e.UndoStack, actions)
	e.RedoStack = nil
	e.Modified = true
}

// Undo reverts the last action
func (e *Editor) Undo() bool {
	if len(e.UndoStack) == 0 {
		return false
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	// Reverse order so overlapping writes in one stroke restore correctly.
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		e.Grid.Set(a.X, a.Y, a.Old)
	}
	e.Grid.Touch()
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
	return true
}

// Redo re-applies the last undone action
func (e *Editor) Redo() bool {
	if len(e.RedoStack) == 0 {
		return false
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	for _, a := range actions {
		e.Grid.Set(a.X, a.Y, a.New)
	}
	e.Grid.Touch()
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
	return true
}
