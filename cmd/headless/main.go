// Command headless runs a scene without a window and logs where the dynamic
// bodies end up.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/prefabs"
	"github.com/milk9111/rigid2d/script"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/")
	frames := flag.Int("frames", 300, "frames to run")
	every := flag.Int("every", 60, "log body state every N frames (0 logs only the end)")
	mode := flag.String("mode", "", "physics driver: stepped or threaded (default from the scene)")
	workers := flag.Int("workers", 0, "goroutines per physics phase (default from the scene)")
	hold := flag.String("hold", "", "comma separated actions held for the whole run, e.g. right,jump")
	flag.Parse()

	spec, err := prefabs.LoadSceneSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}
	if *mode != "" {
		spec.Physics.Mode = *mode
	}
	if *workers > 0 {
		spec.Physics.Workers = *workers
	}

	input := script.Actions{}
	for _, a := range strings.Split(*hold, ",") {
		if a = strings.TrimSpace(a); a != "" {
			input[a] = true
		}
	}

	eng := engine.New()
	scene, err := prefabs.Build(eng, spec, input)
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.Startup(); err != nil {
		log.Fatal(err)
	}

	dt := spec.Physics.FixedTimestep
	threaded := eng.Mode() == engine.ModeThreaded
	start := time.Now()
	for frame := 1; frame <= *frames; frame++ {
		if err := eng.Update(dt); err != nil {
			log.Fatal(err)
		}
		if threaded {
			time.Sleep(time.Duration(dt * float64(time.Second)))
		}
		if *every > 0 && frame%*every == 0 {
			report(scene, frame)
		}
	}
	if *every == 0 || *frames%*every != 0 {
		report(scene, *frames)
	}

	eng.Shutdown()
	collected, total := scene.Collected()
	log.Printf("Headless: %d frames, %d physics steps in %v, collected %d/%d",
		*frames, eng.Physics().Steps(), time.Since(start).Round(time.Millisecond), collected, total)
}

func report(scene *prefabs.Scene, frame int) {
	for _, b := range scene.Bodies {
		if b.Rigidbody == nil || b.Rigidbody.IsStatic() {
			continue
		}
		p, v := b.Rigidbody.Position(), b.Rigidbody.Velocity()
		log.Printf("Headless: frame %d %s pos=(%.2f, %.2f) vel=(%.2f, %.2f) contacts=%+v",
			frame, b.Name, p.X, p.Y, v.X, v.Y, b.Rigidbody.Contacts())
	}
}
