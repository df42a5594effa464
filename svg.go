package tagger

import (
	"fmt"
	"strconv"
	"strings"
)

// Points writes the value of an SVG points attribute: "x,y " per point.
type Points struct {
	a    *Attrs
	done bool
}

func (p *Points) enter(op string) bool {
	if p.a.d.failed() {
		return false
	}
	if p.done {
		panic(protocolf("%s on finished points value of <%s>", op, p.a.tag))
	}
	return true
}

// Add appends one point.
func (p *Points) Add(x, y float64) *Points {
	if !p.enter("Add") {
		return p
	}
	esc := &p.a.d.esc
	esc.WriteString(formatFloat(x))
	esc.WriteString(",")
	esc.WriteString(formatFloat(y))
	esc.WriteString(" ")
	return p
}

// Finish writes the closing quote and returns the attribute list.
func (p *Points) Finish() *Attrs {
	if !p.enter("Finish") {
		return p.a
	}
	p.a.d.out.WriteString(`"`)
	p.a.d.value = ""
	p.done = true
	return p.a
}

// Path writes the value of an SVG d attribute, one command at a time, in
// the order given.
type Path struct {
	a    *Attrs
	n    int
	done bool
}

func (p *Path) enter(op string) bool {
	if p.a.d.failed() {
		return false
	}
	if p.done {
		panic(protocolf("%s on finished path value of <%s>", op, p.a.tag))
	}
	return true
}

// Draw appends commands.
func (p *Path) Draw(cmds ...PathCommand) *Path {
	if !p.enter("Draw") {
		return p
	}
	esc := &p.a.d.esc
	for _, c := range cmds {
		if p.n > 0 {
			esc.WriteString(" ")
		}
		esc.WriteString(c.String())
		p.n++
	}
	return p
}

// MoveTo appends an absolute move.
func (p *Path) MoveTo(x, y float64) *Path { return p.Draw(MoveTo(x, y)) }

// LineTo appends an absolute line.
func (p *Path) LineTo(x, y float64) *Path { return p.Draw(LineTo(x, y)) }

// Close appends a close path command.
func (p *Path) Close() *Path { return p.Draw(ClosePath()) }

// Finish writes the closing quote and returns the attribute list.
func (p *Path) Finish() *Attrs {
	if !p.enter("Finish") {
		return p.a
	}
	p.a.d.out.WriteString(`"`)
	p.a.d.value = ""
	p.done = true
	return p.a
}

// PathCommand is one SVG path data command. Values are made by the
// constructors below; the coordinates are written as given, without any
// geometric validation.
//
// See https://www.w3.org/TR/SVG/paths.html#PathData.
type PathCommand struct {
	op   byte
	args []float64
}

// arity is the number of arguments each command letter takes.
var arity = map[byte]int{
	'M': 2, 'm': 2,
	'L': 2, 'l': 2,
	'H': 1, 'h': 1,
	'V': 1, 'v': 1,
	'C': 6, 'c': 6,
	'S': 4, 's': 4,
	'Q': 4, 'q': 4,
	'T': 2, 't': 2,
	'A': 7, 'a': 7,
	'Z': 0, 'z': 0,
}

func cmd(op byte, args ...float64) PathCommand { return PathCommand{op: op, args: args} }

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MoveTo is "M x y".
func MoveTo(x, y float64) PathCommand { return cmd('M', x, y) }

// MoveBy is "m dx dy".
func MoveBy(dx, dy float64) PathCommand { return cmd('m', dx, dy) }

// LineTo is "L x y".
func LineTo(x, y float64) PathCommand { return cmd('L', x, y) }

// LineBy is "l dx dy".
func LineBy(dx, dy float64) PathCommand { return cmd('l', dx, dy) }

// HorizontalTo is "H x".
func HorizontalTo(x float64) PathCommand { return cmd('H', x) }

// HorizontalBy is "h dx".
func HorizontalBy(dx float64) PathCommand { return cmd('h', dx) }

// VerticalTo is "V y".
func VerticalTo(y float64) PathCommand { return cmd('V', y) }

// VerticalBy is "v dy".
func VerticalBy(dy float64) PathCommand { return cmd('v', dy) }

// CurveTo is the cubic Bézier "C x1 y1 x2 y2 x y".
func CurveTo(x1, y1, x2, y2, x, y float64) PathCommand { return cmd('C', x1, y1, x2, y2, x, y) }

// CurveBy is the relative cubic Bézier "c dx1 dy1 dx2 dy2 dx dy".
func CurveBy(dx1, dy1, dx2, dy2, dx, dy float64) PathCommand {
	return cmd('c', dx1, dy1, dx2, dy2, dx, dy)
}

// SmoothCurveTo is "S x2 y2 x y".
func SmoothCurveTo(x2, y2, x, y float64) PathCommand { return cmd('S', x2, y2, x, y) }

// SmoothCurveBy is "s dx2 dy2 dx dy".
func SmoothCurveBy(dx2, dy2, dx, dy float64) PathCommand { return cmd('s', dx2, dy2, dx, dy) }

// QuadTo is the quadratic Bézier "Q x1 y1 x y".
func QuadTo(x1, y1, x, y float64) PathCommand { return cmd('Q', x1, y1, x, y) }

// QuadBy is "q dx1 dy1 dx dy".
func QuadBy(dx1, dy1, dx, dy float64) PathCommand { return cmd('q', dx1, dy1, dx, dy) }

// SmoothQuadTo is "T x y".
func SmoothQuadTo(x, y float64) PathCommand { return cmd('T', x, y) }

// SmoothQuadBy is "t dx dy".
func SmoothQuadBy(dx, dy float64) PathCommand { return cmd('t', dx, dy) }

// ArcTo is the elliptical arc "A rx ry rotation large-arc sweep x y".
func ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) PathCommand {
	return cmd('A', rx, ry, rotation, flag(largeArc), flag(sweep), x, y)
}

// ArcBy is "a rx ry rotation large-arc sweep dx dy".
func ArcBy(rx, ry, rotation float64, largeArc, sweep bool, dx, dy float64) PathCommand {
	return cmd('a', rx, ry, rotation, flag(largeArc), flag(sweep), dx, dy)
}

// ClosePath is "Z".
func ClosePath() PathCommand { return cmd('Z') }

// Op returns the command letter.
func (c PathCommand) Op() byte { return c.op }

// String returns the command as it appears in path data, e.g. "C 1 2 3 4 5 6".
func (c PathCommand) String() string {
	var b strings.Builder
	b.WriteByte(c.op)
	for _, v := range c.args {
		b.WriteByte(' ')
		b.WriteString(formatFloat(v))
	}
	return b.String()
}

// ParsePathCommand parses a single command in the form written by
// [PathCommand.String]: a command letter followed by its arguments,
// separated by spaces or commas.
func ParsePathCommand(s string) (PathCommand, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 0 || len(fields[0]) != 1 {
		return PathCommand{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	op := fields[0][0]
	n, ok := arity[op]
	if !ok {
		return PathCommand{}, fmt.Errorf("%w: unknown command %q", ErrInvalidPath, fields[0])
	}
	if len(fields)-1 != n {
		return PathCommand{}, fmt.Errorf("%w: %q takes %d arguments, got %d", ErrInvalidPath, op, n, len(fields)-1)
	}
	var args []float64
	if n > 0 {
		args = make([]float64, n)
	}
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return PathCommand{}, fmt.Errorf("%w: %q: %s", ErrInvalidPath, s, err)
		}
		args[i] = v
	}
	return cmd(op, args...), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
