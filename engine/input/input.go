// Package input turns mouse and keyboard state into camera movement.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/dualgrid/engine/render"
)

// Sample is the raw device state of one frame.
type Sample struct {
	MouseX, MouseY  int
	LeftDown        bool
	LeftJustPressed bool
	RightDown       bool
	WheelY          float64
	Keys            map[ebiten.Key]bool
}

// State tracks mouse and keyboard state per frame.
type State struct {
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	LeftPressed      bool
	ScrollY          float64

	// Right button paints
	RightPressed      bool
	RightJustPressed  bool
	RightJustReleased bool

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	// ZoomStep is the zoom change per wheel notch.
	ZoomStep float64

	KeysPressed map[ebiten.Key]bool
}

// NewState creates an input state.
func NewState() *State {
	return &State{
		DragThreshold: 5,
		ZoomStep:      0.1,
		KeysPressed:   make(map[ebiten.Key]bool),
	}
}

// panKeys are polled every frame for keyboard panning.
var panKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
}

// Poll reads the current ebiten device state.
func Poll() Sample {
	s := Sample{Keys: make(map[ebiten.Key]bool, len(panKeys))}
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	_, s.WheelY = ebiten.Wheel()
	for _, k := range panKeys {
		s.Keys[k] = ebiten.IsKeyPressed(k)
	}
	return s
}

// Update should be called every frame.
func (s *State) Update() {
	s.Step(Poll())
}

// Step advances the state by one frame of device input.
func (s *State) Step(in Sample) {
	s.MouseDX = in.MouseX - s.MouseX
	s.MouseDY = in.MouseY - s.MouseY
	s.MouseX, s.MouseY = in.MouseX, in.MouseY
	s.LeftPressed = in.LeftDown
	s.ScrollY = in.WheelY
	s.RightJustPressed = in.RightDown && !s.RightPressed
	s.RightJustReleased = !in.RightDown && s.RightPressed
	s.RightPressed = in.RightDown

	if in.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if in.LeftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
			// The threshold distance counts as movement.
			s.MouseDX, s.MouseDY = dx, dy
		}
	}
	if !in.LeftDown {
		s.Dragging = false
	}

	for k := range s.KeysPressed {
		delete(s.KeysPressed, k)
	}
	for k, down := range in.Keys {
		if down {
			s.KeysPressed[k] = true
		}
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame.
func (s *State) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// DriveCamera applies drag panning, wheel zoom about the cursor and
// keyboard panning for a frame of dt seconds. It reports whether the
// camera changed.
func (s *State) DriveCamera(cam *render.Camera, dt float64) bool {
	x, y, z := cam.X, cam.Y, cam.Zoom

	if s.Dragging && (s.MouseDX != 0 || s.MouseDY != 0) {
		cam.Pan(float64(s.MouseDX), float64(s.MouseDY))
	}
	if s.ScrollY != 0 {
		cam.ZoomAt(s.ScrollY*s.ZoomStep*cam.Zoom, float64(s.MouseX), float64(s.MouseY))
	}

	step := cam.Speed * dt
	var dx, dy float64
	if s.KeysPressed[ebiten.KeyA] || s.KeysPressed[ebiten.KeyLeft] {
		dx += step
	}
	if s.KeysPressed[ebiten.KeyD] || s.KeysPressed[ebiten.KeyRight] {
		dx -= step
	}
	if s.KeysPressed[ebiten.KeyW] || s.KeysPressed[ebiten.KeyUp] {
		dy += step
	}
	if s.KeysPressed[ebiten.KeyS] || s.KeysPressed[ebiten.KeyDown] {
		dy -= step
	}
	if dx != 0 || dy != 0 {
		cam.Pan(dx, dy)
	}

	return cam.X != x || cam.Y != y || cam.Zoom != z
}
