package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Formats lists the supported output formats.
var Formats = []string{"png", "svg", "pdf", "eps"}

// tightPad is the margin kept around raster content, in inches.
const tightPad = 0.1

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (d *Diagram) figureSize() (vg.Length, vg.Length) {
	return vg.Length(d.Options.FigSize[0]) * vg.Inch, vg.Length(d.Options.FigSize[1]) * vg.Inch
}

// Encode draws the diagram to w. Raster output is cropped to its content.
func (d *Diagram) Encode(w io.Writer, format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	p, err := d.Plot()
	if err != nil {
		return err
	}
	width, height := d.figureSize()

	switch format {
	case "png":
		dpi := d.Options.DPI
		if dpi <= 0 {
			dpi = vgimg.DefaultDPI
		}
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		img := CropToContent(c.Image(), color.White, int(tightPad*float64(dpi)))
		return png.Encode(w, img)
	case "svg":
		c := vgsvg.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	case "pdf":
		c := vgpdf.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	case "eps":
		c := vgeps.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	}
	return err
}

// Save encodes the diagram into path. The file only appears once encoding
// has succeeded; a failed save leaves nothing behind.
func (d *Diagram) Save(path, format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return writeAtomic(path, func(w io.Writer) error {
		return d.Encode(w, format)
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	committed = true
	return nil
}

// CropToContent trims rows and columns that only hold bg, keeping pad
// pixels of margin. An image with no content is returned unchanged.
func CropToContent(img image.Image, bg color.Color, pad int) image.Image {
	b := img.Bounds()
	br, bgc, bb, ba := bg.RGBA()
	isBg := func(x, y int) bool {
		r, g, bl, a := img.At(x, y).RGBA()
		return r == br && g == bgc && bl == bb && a == ba
	}
	if rgba, ok := img.(*image.RGBA); ok {
		c := color.RGBAModel.Convert(bg).(color.RGBA)
		isBg = func(x, y int) bool {
			i := rgba.PixOffset(x, y)
			px := rgba.Pix[i : i+4 : i+4]
			return px[0] == c.R && px[1] == c.G && px[2] == c.B && px[3] == c.A
		}
	}

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isBg(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return img
	}

	r := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Copy(dst, image.Point{}, img, r, xdraw.Src, nil)
	return dst
}
