// Package render draws a calendar.Layout. The engine only produces
// geometry; these renderers turn it into a PNG preview and a terminal view.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"goalcal/internal/calendar"
	"goalcal/internal/goals"
)

var weekdayNames = [calendar.Cols]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var (
	colorBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorGridLine   = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorText       = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	colorMuted      = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	colorLabel      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Image rasterizes the layout onto a new NRGBA canvas sized from the
// layout's geometry. Bars are painted in layout order so the topmost bar
// matches what HitTest returns.
func Image(l *calendar.Layout) *image.NRGBA {
	geo := l.Geometry
	img := image.NewNRGBA(image.Rect(0, 0, geo.Width(), geo.Height()))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()

	for col, name := range weekdayNames {
		x := geo.Pad + col*geo.CellWidth + 4
		y := geo.Pad + (geo.WeekdayHeaderHeight+ascent)/2
		drawText(img, name, x, y, colorText)
	}

	for row := 0; row < calendar.Rows; row++ {
		for col := 0; col < calendar.Cols; col++ {
			cell := geo.CellBox(row, col)
			strokeRect(img, cell, colorGridLine)

			gd := l.Grid.At(row, col)
			c := colorText
			if !gd.InCurrentMonth {
				c = colorMuted
			}
			drawText(img, strconv.Itoa(gd.Day), cell.X0+4, cell.Y0+4+ascent, c)
		}
	}

	for _, b := range l.Bars {
		fill := goals.ColorOf(b.Goal)
		rect := image.Rect(b.Box.X0, b.Box.Y0, b.Box.X1+1, b.Box.Y1+1)
		draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Over)

		if b.IsLabelAnchor && b.Box.Y1-b.Box.Y0+1 >= ascent {
			clip := img.SubImage(rect).(*image.NRGBA)
			baseline := b.Box.Y0 + (b.Box.Y1-b.Box.Y0+1+ascent)/2 - 1
			drawText(clip, b.Goal.Name, b.Box.X0+3, baseline, colorLabel)
		}
	}
	return img
}

// WritePNG encodes the layout as PNG.
func WritePNG(w io.Writer, l *calendar.Layout) error {
	if err := png.Encode(w, Image(l)); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func strokeRect(img *image.NRGBA, b calendar.Box, c color.NRGBA) {
	for x := b.X0; x <= b.X1; x++ {
		img.SetNRGBA(x, b.Y0, c)
		img.SetNRGBA(x, b.Y1, c)
	}
	for y := b.Y0; y <= b.Y1; y++ {
		img.SetNRGBA(b.X0, y, c)
		img.SetNRGBA(b.X1, y, c)
	}
}
