package canvas

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/matzehuels/flowtower/pkg/flow"
)

const (
	sketchFont      = "'xkcd Script', 'Comic Neue', 'Comic Sans MS', cursive"
	sketchRoughness = 1.8
)

// Sketch draws shapes with slightly wobbly hand-drawn strokes. The wobble is
// derived from the seed and each element's id, so the same layout always
// renders to the same bytes.
type Sketch struct {
	seed uint64
}

// NewSketch returns a sketch style for the given seed.
func NewSketch(seed uint64) *Sketch {
	return &Sketch{seed: seed}
}

func (s *Sketch) rng(id string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	return rand.New(rand.NewPCG(s.seed, h.Sum64()))
}

func jitter(r *rand.Rand) float64 {
	return (r.Float64()*2 - 1) * sketchRoughness
}

// stroke writes a quadratic segment from (x1,y1) to (x2,y2) with a displaced
// control point.
func stroke(buf *bytes.Buffer, r *rand.Rand, x1, y1, x2, y2 float64) {
	mx, my := (x1+x2)/2+jitter(r), (y1+y2)/2+jitter(r)
	fmt.Fprintf(buf, "M %.2f %.2f Q %.2f %.2f %.2f %.2f ", x1+jitter(r)/2, y1+jitter(r)/2, mx, my, x2, y2)
}

func (s *Sketch) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	arrowDefs(buf)
	buf.WriteString("  </defs>\n")
}

func (s *Sketch) polygon(buf *bytes.Buffer, r *rand.Rand, pts [][2]float64) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		stroke(buf, r, a[0], a[1], b[0], b[1])
	}
}

func (s *Sketch) RenderBox(buf *bytes.Buffer, b Box) {
	r := s.rng(b.ID)
	id := EscapeXML(b.ID)

	switch b.Kind {
	case flow.KindLoopStart, flow.KindLoopEnd:
		fill := fillOf(b)
		if b.Kind == flow.KindLoopEnd {
			fill = strokeColor
		}
		rad := min(b.W, b.H) / 2
		fmt.Fprintf(buf, `  <ellipse id="box-%s" class="box %s" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			id, b.Kind, b.CX, b.CY, rad+jitter(r)/4, rad+jitter(r)/4, fill, strokeColor)
		return
	}

	var pts [][2]float64
	kind := "element"
	if b.Kind == flow.KindChoice {
		kind = "choice"
		pts = [][2]float64{{b.CX, b.Y}, {b.X + b.W, b.CY}, {b.CX, b.Y + b.H}, {b.X, b.CY}}
	} else {
		pts = [][2]float64{{b.X, b.Y}, {b.X + b.W, b.Y}, {b.X + b.W, b.Y + b.H}, {b.X, b.Y + b.H}}
	}

	// Fill with a clean shape underneath the wobbly outline.
	fmt.Fprintf(buf, `  <path id="box-%s" class="box %s" d="`, id, kind)
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(buf, "%s %.2f %.2f ", cmd, p[0], p[1])
	}
	fmt.Fprintf(buf, `Z" fill="%s" stroke="none"/>`+"\n", fillOf(b))

	buf.WriteString(`  <path class="outline" d="`)
	s.polygon(buf, r, pts)
	fmt.Fprintf(buf, `" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"/>`+"\n", strokeColor)
}

func (s *Sketch) RenderEdge(buf *bytes.Buffer, e Edge) {
	r := s.rng(e.ID)
	fmt.Fprintf(buf, `  <path id="edge-%s" class="edge" d="`, EscapeXML(e.ID))
	stroke(buf, r, e.X1, e.Y1, e.X2, e.Y2)
	fmt.Fprintf(buf, `" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"%s/>`+"\n", strokeColor, edgeAttrs(e))
	renderEdgeText(buf, e, sketchFont)
}

func (s *Sketch) RenderText(buf *bytes.Buffer, b Box) {
	renderLines(buf, b, sketchFont)
}

// Seed returns the style's seed.
func (s *Sketch) Seed() uint64 { return s.seed }
