package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const statsAddress = "localhost:12600"
const statsURL = "/debug/statsview"

// Launch a new goroutine running the statsview.
func launchStats(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsAddress))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", statsAddress, statsURL)
}
