package ev3

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ev3go/ev3"
	"github.com/ev3go/ev3dev"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Display draws on the brick LCD through its framebuffer. The background is
// painted white; text and glyphs are painted black.
type Display struct {
	fb ev3dev.FrameBuffer
}

// OpenDisplay initializes the brick framebuffer and clears it.
func OpenDisplay() (*Display, error) {
	if err := ev3.LCD.Init(true); err != nil {
		return nil, fmt.Errorf("open lcd: %w", err)
	}
	d := &Display{fb: ev3.LCD}
	if err := d.Clear(); err != nil {
		ev3.LCD.Close()
		return nil, fmt.Errorf("open lcd: %w", err)
	}
	return d, nil
}

// newDisplay wraps an already initialized framebuffer.
func newDisplay(fbuf ev3dev.FrameBuffer) *Display {
	return &Display{fb: fbuf}
}

// Close blanks the display and releases the framebuffer.
func (d *Display) Close() error {
	if err := d.Clear(); err != nil {
		d.fb.Close()
		return err
	}
	return d.fb.Close()
}

func (d *Display) Size() (int, int) {
	b := d.fb.Bounds()
	return b.Dx(), b.Dy()
}

func (d *Display) Clear() error {
	draw.Draw(d.fb, d.fb.Bounds(), image.White, image.Point{}, draw.Src)
	return nil
}

// Text draws s with its top-left corner at (x, y).
func (d *Display) Text(x, y int, s string) error {
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  d.fb,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	dr.DrawString(s)
	return nil
}

func (d *Display) FillCircle(x, y, r int) error {
	d.drawMask(&disc{p: image.Pt(x, y), r: r})
	return nil
}

func (d *Display) StrokeCircle(x, y, r int) error {
	d.drawMask(&ring{p: image.Pt(x, y), outer: r, inner: r - 1})
	return nil
}

func (d *Display) drawMask(m image.Image) {
	draw.DrawMask(d.fb, d.fb.Bounds(), image.Black, image.Point{}, m, image.Point{}, draw.Over)
}

// disc is an alpha mask covering a filled circle.
type disc struct {
	p image.Point
	r int
}

func (c *disc) ColorModel() color.Model { return color.AlphaModel }

func (c *disc) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r+1, c.p.Y+c.r+1)
}

func (c *disc) At(x, y int) color.Color {
	dx, dy := x-c.p.X, y-c.p.Y
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// ring is an alpha mask covering a one-pixel-wide circle outline.
type ring struct {
	p            image.Point
	outer, inner int
}

func (c *ring) ColorModel() color.Model { return color.AlphaModel }

func (c *ring) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.outer, c.p.Y-c.outer, c.p.X+c.outer+1, c.p.Y+c.outer+1)
}

func (c *ring) At(x, y int) color.Color {
	dx, dy := x-c.p.X, y-c.p.Y
	d2 := dx*dx + dy*dy
	if d2 <= c.outer*c.outer && d2 > c.inner*c.inner {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}
