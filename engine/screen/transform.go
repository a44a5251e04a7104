package screen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// transformStack keeps canvas transform semantics on top of ebiten.GeoM:
// each Translate or Scale applies before the transforms already in place.
type transformStack struct {
	geo   ebiten.GeoM
	saved []ebiten.GeoM
}

func (t *transformStack) Save() {
	t.saved = append(t.saved, t.geo)
}

// Restore pops the last Save. Unbalanced calls are ignored.
func (t *transformStack) Restore() {
	if len(t.saved) == 0 {
		return
	}
	t.geo = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
}

func (t *transformStack) Translate(dx, dy float64) {
	var m ebiten.GeoM
	m.Translate(dx, dy)
	t.prepend(m)
}

func (t *transformStack) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	t.prepend(m)
}

// prepend makes m run before the current transform.
func (t *transformStack) prepend(m ebiten.GeoM) {
	m.Concat(t.geo)
	t.geo = m
}

func (t *transformStack) apply(x, y float64) (float32, float32) {
	dx, dy := t.geo.Apply(x, y)
	return float32(dx), float32(dy)
}

// lineScale returns the factor applied to stroke widths.
func (t *transformStack) lineScale() float64 {
	a := t.geo.Element(0, 0)
	b := t.geo.Element(0, 1)
	c := t.geo.Element(1, 0)
	d := t.geo.Element(1, 1)
	det := a*d - b*c
	if det < 0 {
		det = -det
	}
	if det == 0 {
		return 1
	}
	return math.Sqrt(det)
}
