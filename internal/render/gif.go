package render

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
)

// Each character cell rasterizes to an 8x16 pixel block, so every braille dot
// fills a 4x4 patch.
const (
	cellPxW = 8
	cellPxH = 16
)

// Rasterize captures the canvas as a two-color paletted image.
func Rasterize(c *Canvas) *image.Paletted {
	imgW, imgH := c.Width*cellPxW, c.Height*cellPxH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := cellPxW/2, cellPxH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col]) - brailleBase
			if pattern <= 0 {
				continue
			}
			baseX, baseY := col*cellPxW, row*cellPxH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

// EncodeGIF writes frames as an endlessly looping animation. delayCS is the
// per-frame delay in hundredths of a second.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delayCS int) error {
	if len(frames) == 0 {
		return errors.New("encode gif: no frames")
	}
	if delayCS < 1 {
		delayCS = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delayCS)
	}
	return gif.EncodeAll(w, &anim)
}
