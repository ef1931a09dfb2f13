package display

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/n-ulricksen/nescore/nes"
)

// Frames per second
const fps float64 = 60.0

// Config holds the window options chosen on the command line.
type Config struct {
	Title   string
	Scale   float64
	Debug   bool
	Palette *nes.SystemPalette
	Logger  *log.Logger
}

// Host runs a console on its own goroutine and presents its frames. The
// console is only touched with mu held.
type Host struct {
	mu      sync.Mutex
	console *nes.Console
	cfg     Config

	paused bool
	err    error
	image  *image.RGBA // Last completed frame
	frames uint64
}

func NewHost(console *nes.Console, cfg Config) *Host {
	if cfg.Palette == nil {
		cfg.Palette = &nes.DefaultPalette
	}
	return &Host{
		console: console,
		cfg:     cfg,
		image:   image.NewRGBA(image.Rect(0, 0, nes.FrameWidth, nes.FrameHeight)),
	}
}

// Run opens the window and runs until it is closed or the console stops
// with an error. It must be called from the function passed to pixelgl.Run.
func (h *Host) Run() error {
	disp, err := NewDisplay(h.cfg.Title, h.cfg.Scale, h.cfg.Debug)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go h.emulate(done)

	for !disp.Closed() {
		for _, a := range pressedActions(disp.window) {
			h.handle(a, disp)
		}

		h.mu.Lock()
		err := h.err
		game := h.snapshotImage()
		var panel *Panel
		if h.cfg.Debug {
			panel = h.panel()
		}
		h.mu.Unlock()

		if err != nil {
			return err
		}
		disp.UpdateScreen(game, panel)
	}

	return nil
}

// Use a time ticker to keep frames rendered steadily at a set FPS.
func (h *Host) emulate(done <-chan struct{}) {
	interval := time.Duration(float64(time.Second) / fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		h.mu.Lock()
		if !h.paused && h.err == nil {
			h.stepFrame()
		}
		h.mu.Unlock()
	}
}

// Caller holds mu.
func (h *Host) stepFrame() {
	if err := h.console.StepFrame(); err != nil {
		h.err = err
		return
	}
	h.console.Frame().Draw(h.image, h.cfg.Palette)
	h.frames++
	if h.cfg.Logger != nil && h.frames%600 == 0 {
		h.cfg.Logger.Printf("frame %d", h.frames)
	}
}

func (h *Host) handle(a action, disp *Display) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch a {
	case actionQuit:
		disp.Close()
	case actionPause:
		h.paused = !h.paused
	case actionStepFrame:
		if h.paused && h.err == nil {
			h.stepFrame()
		}
	case actionReset:
		h.console.Reset()
		h.err = nil
	}
}

// Copy of the last frame, safe to hand to the window. Caller holds mu.
func (h *Host) snapshotImage() *image.RGBA {
	img := image.NewRGBA(h.image.Rect)
	copy(img.Pix, h.image.Pix)
	return img
}

// Caller holds mu.
func (h *Host) panel() *Panel {
	cpu := h.console.Cpu
	ppu := h.console.Bus.Ppu

	p := &Panel{
		Registers: fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X\nP:%v  CYC:%d\nPPU:%3d,%3d  FRAME:%d",
			cpu.Pc, cpu.A, cpu.X, cpu.Y, cpu.Sp, cpu.Status, cpu.Cycles,
			ppu.Scanline(), ppu.Cycle(), ppu.FrameCount()),
	}

	addr := cpu.Pc
	for i := 0; i < 12; i++ {
		line, size := nes.DisassembleOne(h.console.Bus, addr)
		p.Disassembly = append(p.Disassembly, fmt.Sprintf("$%04X: %s", addr, line))
		addr += uint16(size)
	}

	for i := range p.PatternTables {
		p.PatternTables[i] = ppu.PatternTable(i, 0, h.cfg.Palette)
	}

	return p
}
