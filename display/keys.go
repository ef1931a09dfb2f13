package display

import (
	"github.com/faiface/pixel/pixelgl"
)

// Host actions and their keyboard binds
// Keyboard binds:
/*
	0: Quit       ---> Escape
	1: Pause      ---> P
	2: Next frame ---> N (while paused)
	3: Reset      ---> R
*/
type action int

const (
	actionQuit action = iota
	actionPause
	actionStepFrame
	actionReset
)

var hostKeys = map[action]pixelgl.Button{
	actionQuit:      pixelgl.KeyEscape,
	actionPause:     pixelgl.KeyP,
	actionStepFrame: pixelgl.KeyN,
	actionReset:     pixelgl.KeyR,
}

// pressedActions returns the actions whose keys went down since the last
// window update.
func pressedActions(win *pixelgl.Window) []action {
	var pressed []action
	for a := actionQuit; a <= actionReset; a++ {
		if win.JustPressed(hostKeys[a]) {
			pressed = append(pressed, a)
		}
	}
	return pressed
}
