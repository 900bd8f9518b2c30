// Command termview plays a scene in the terminal. Arrow keys or A/D move,
// space jumps, Esc quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/prefabs"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/")
	mode := flag.String("mode", "", "physics driver: stepped or threaded (default from the scene)")
	mute := flag.Bool("mute", false, "no pickup chime")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken over)")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	spec, err := prefabs.LoadSceneSpec(*sceneName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load scene: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		spec.Physics.Mode = *mode
	}

	input := newKeyInput()
	eng := engine.New()
	scene, err := prefabs.Build(eng, spec, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build scene: %v\n", err)
		os.Exit(1)
	}
	if err := eng.Startup(); err != nil {
		fmt.Fprintf(os.Stderr, "start scene: %v\n", err)
		os.Exit(1)
	}
	defer eng.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	var c *chime
	if !*mute {
		if c, err = newChime(); err != nil {
			log.Printf("Termview: audio disabled: %v", err)
		}
	}
	defer c.Close()

	v := &viewer{screen: screen, eng: eng, scene: scene}
	run(v, input, c, time.Duration(spec.Physics.FixedTimestep*float64(time.Second)))
}

func run(v *viewer, input *keyInput, c *chime, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	collected := 0
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				input.handle(ev)
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			input.tick()
			if err := v.eng.Update(frame.Seconds()); err != nil {
				log.Printf("Termview: %v", err)
				return
			}
			if got, _ := v.scene.Collected(); got > collected {
				collected = got
				c.Play()
			}
			v.draw()
		}
	}
}
