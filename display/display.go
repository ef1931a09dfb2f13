// Package display presents a running console in a pixelgl window.
package display

import (
	"fmt"
	"image"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/n-ulricksen/nescore/nes"
)

type Display struct {
	window     *pixelgl.Window
	gameMatrix pixel.Matrix // Scale and position to render the running NES game.

	scale   float64
	screenW float64
	screenH float64

	debug bool
	text  *text.Text
}

const (
	// Main NES display settings
	nesResW    float64 = nes.FrameWidth
	nesResH    float64 = nes.FrameHeight
	screenPosX float64 = 600 // Where to render the display on the user's monitor.
	screenPosY float64 = 400

	// Debug display settings
	debugResW    float64 = 256
	patternTblWH float64 = 128
)

// Panel is the debug information drawn beside the game.
type Panel struct {
	Registers     string
	Disassembly   []string
	PatternTables [2]*image.RGBA
}

func NewDisplay(title string, scale float64, debug bool) (*Display, error) {
	if scale < 1 {
		scale = 1
	}
	screenW := nesResW * scale
	screenH := nesResH * scale

	bounds := pixel.R(0, 0, screenW, screenH)
	if debug {
		bounds = pixel.R(0, 0, screenW+debugResW, screenH)
	}

	config := pixelgl.WindowConfig{
		Title:    title,
		Bounds:   bounds,
		Position: pixel.V(screenPosX, screenPosY),
		VSync:    true,
	}
	window, err := pixelgl.NewWindow(config)
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}

	// Calculate matrix recquired to render game to display based on the set scale.
	center := pixel.V(nesResW/2, nesResH/2)
	matrix := pixel.IM.Moved(center.Scaled(scale))
	matrix = matrix.Scaled(center.Scaled(scale), scale)

	d := &Display{
		window:     window,
		gameMatrix: matrix,
		scale:      scale,
		screenW:    screenW,
		screenH:    screenH,
		debug:      debug,
	}

	if debug {
		atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
		d.text = text.New(pixel.V(screenW+8, screenH-16), atlas)
		d.text.Color = colornames.White
	}

	return d, nil
}

func (d *Display) Closed() bool { return d.window.Closed() }

func (d *Display) Close() { d.window.SetClosed(true) }

// UpdateScreen draws game, and panel when the debug panel is enabled, then
// presents the window.
func (d *Display) UpdateScreen(game *image.RGBA, panel *Panel) {
	d.window.Clear(colornames.Black)

	pic := pixel.PictureDataFromImage(game)
	sprite := pixel.NewSprite(pic, pic.Bounds())
	sprite.Draw(d.window, d.gameMatrix)

	if d.debug && panel != nil {
		d.drawPanel(panel)
	}

	d.window.Update()
}

func (d *Display) drawPanel(panel *Panel) {
	d.text.Clear()
	fmt.Fprintln(d.text, panel.Registers)
	fmt.Fprintln(d.text)
	for _, line := range panel.Disassembly {
		fmt.Fprintln(d.text, line)
	}
	d.text.Draw(d.window, pixel.IM)

	// Pattern tables side by side along the bottom of the panel.
	for i, img := range panel.PatternTables {
		if img == nil {
			continue
		}
		pic := pixel.PictureDataFromImage(img)
		pos := pixel.V(d.screenW+patternTblWH/2+float64(i)*patternTblWH, patternTblWH/2)
		pixel.NewSprite(pic, pic.Bounds()).Draw(d.window, pixel.IM.Moved(pos))
	}
}
