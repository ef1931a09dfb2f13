package nes

import (
	"log"
	"regexp"
	"runtime"
	"time"
)

var runtimeFunc = regexp.MustCompile(`^.*\.(.*)$`)

// Function time tracking thanks to:
// https://stackoverflow.com/questions/45766572/is-there-an-efficient-way-to-calculate-execution-time-in-golang
//
//	defer nes.TimeTrack(logger, time.Now())
func TimeTrack(logger *log.Logger, start time.Time) {
	elapsed := time.Since(start)

	// Skip this function, and fetch the PC and file for its parent.
	pc, _, _, _ := runtime.Caller(1)

	// Regex to extract just the function name (and not the module path).
	name := runtimeFunc.ReplaceAllString(runtime.FuncForPC(pc).Name(), "$1")

	logger.Printf("%s took %s", name, elapsed)
}
