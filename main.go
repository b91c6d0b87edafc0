/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/testbed"
)

func main() {
	core.SetLogLevel(core.DebugLevel)

	assetsDir := "assets"
	if len(os.Args) > 1 {
		assetsDir = os.Args[1]
	}

	tg := testbed.NewTestGame(assetsDir)
	if err := tg.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-sigCh:
			if err := tg.Shutdown(); err != nil {
				panic(err)
			}
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now
			if err := tg.Update(delta); err != nil {
				core.LogError("update failed: %v", err)
			}
		}
	}
}
