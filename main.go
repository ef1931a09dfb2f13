package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/n-ulricksen/nescore/display"
	"github.com/n-ulricksen/nescore/nes"
)

// Command line flags
var (
	flagRom        string
	flagDebug      bool
	flagMonitor    bool
	flagLogging    bool
	flagTrace      bool
	flagFrames     int
	flagScreenshot string
	flagScale      float64
	flagPalette    string
	flagDisasm     bool
	flagIllegal    string
	flagStats      bool
)

func main() {
	parseFlags()

	logger := newLogger()

	if flagStats {
		launchStats(os.Stdout)
	}

	cart, err := loadCartridge(flagRom)
	if err != nil {
		log.Fatal("Unable to load cartridge...\n", err)
	}

	policy, err := nes.ParseIllegalOpcodePolicy(flagIllegal)
	if err != nil {
		log.Fatal(err)
	}

	palette, err := loadPalette(flagPalette)
	if err != nil {
		log.Fatal("Unable to load palette...\n", err)
	}

	opts := []nes.Option{nes.WithLogger(logger), nes.WithIllegalOpcodes(policy)}
	if flagTrace {
		opts = append(opts, nes.WithTracer(nes.NewLogTracer(traceLogger(logger))))
	}
	console := nes.NewConsole(cart, opts...)

	fmt.Println("Resetting NES...")
	console.Reset()

	switch {
	case flagDisasm:
		printDisassembly(os.Stdout, console)
	case flagMonitor:
		err = runMonitor(console, os.Stdin, os.Stdout)
	case flagFrames > 0:
		err = runHeadless(console, palette, logger)
	default:
		host := display.NewHost(console, display.Config{
			Title:   "NES Emulator - " + filepath.Base(flagRom),
			Scale:   flagScale,
			Debug:   flagDebug,
			Palette: palette,
			Logger:  logger,
		})
		pixelgl.Run(func() { err = host.Run() })
	}

	if err != nil {
		log.Fatal(err)
	}
}

func parseFlags() {
	flag.StringVar(&flagRom, "rom", "", "iNES ROM image to run")
	flag.BoolVar(&flagDebug, "d", false, "enable debug panel")
	flag.BoolVar(&flagMonitor, "monitor", false, "step through the program from the terminal")
	flag.BoolVar(&flagLogging, "l", false, "enable logging")
	flag.BoolVar(&flagTrace, "trace", false, "log every instruction in nestest format")
	flag.IntVar(&flagFrames, "frames", 0, "run this many frames without a window, then exit")
	flag.StringVar(&flagScreenshot, "screenshot", "", "with -frames, save the last frame (.png, .bmp or .tiff)")
	flag.Float64Var(&flagScale, "scale", 2, "scale at which to render the NES display")
	flag.StringVar(&flagPalette, "palette", "", ".pal file to use instead of the built-in NTSC palette")
	flag.BoolVar(&flagDisasm, "disasm", false, "print a disassembly of PRG-ROM and exit")
	flag.StringVar(&flagIllegal, "illegal", "halt", "unofficial opcodes: halt or nop")
	flag.BoolVar(&flagStats, "stats", false, "serve runtime statistics over HTTP")

	flag.Parse()

	if flagRom == "" && flag.NArg() > 0 {
		flagRom = flag.Arg(0)
	}
	if flagRom == "" {
		fmt.Fprintln(os.Stderr, "usage: nescore [flags] -rom game.nes")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

// Logs go to a timestamped file under ./logs with -l, nowhere otherwise.
func newLogger() *log.Logger {
	if !flagLogging {
		return log.New(io.Discard, "", 0)
	}

	if err := os.MkdirAll("./logs", 0775); err != nil {
		log.Fatal("Unable to create log directory...\n", err)
	}

	now := time.Now()
	logFile := fmt.Sprintf("./logs/nes%s.log", now.Format("20060102-150405"))
	f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE, 0664)
	if err != nil {
		log.Fatal("Unable to create log file...\n", err)
	}

	return log.New(f, "", 0)
}

// Traces share the log file with -l and go to stderr without it.
func traceLogger(logger *log.Logger) *log.Logger {
	if flagLogging {
		return logger
	}
	return log.New(os.Stderr, "", 0)
}

func loadCartridge(path string) (*nes.Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening ROM")
	}
	defer f.Close()

	return nes.LoadCartridge(f)
}

func loadPalette(path string) (*nes.SystemPalette, error) {
	if path == "" {
		return &nes.DefaultPalette, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening palette")
	}
	defer f.Close()

	palette, err := nes.LoadPalette(f)
	if err != nil {
		return nil, err
	}
	return &palette, nil
}

func printDisassembly(w io.Writer, console *nes.Console) {
	disassembly := nes.Disassemble(console.Bus, 0x8000, 0xFFFF)

	addrs := make([]int, 0, len(disassembly))
	for addr := range disassembly {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	for _, addr := range addrs {
		fmt.Fprintln(w, disassembly[uint16(addr)])
	}
}

func runHeadless(console *nes.Console, palette *nes.SystemPalette, logger *log.Logger) error {
	defer nes.TimeTrack(logger, time.Now())

	for i := 0; i < flagFrames; i++ {
		if err := console.StepFrame(); err != nil {
			return errors.Wrapf(err, "frame %d", i)
		}
	}
	logger.Printf("ran %d frames, %d CPU cycles", flagFrames, console.Cpu.Cycles)

	if flagScreenshot == "" {
		return nil
	}
	return saveScreenshot(flagScreenshot, console.Frame().Scaled(palette, int(flagScale)))
}

// The encoder is picked by file extension; PNG by default.
func saveScreenshot(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating screenshot")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	return errors.Wrap(err, "encoding screenshot")
}
