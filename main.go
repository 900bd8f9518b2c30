package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/ (embedded copy used when missing on disk)")
	mode := flag.String("mode", "", "physics driver: stepped or threaded (default from the scene)")
	debug := flag.Bool("debug", false, "draw body bounds and contacts")
	watch := flag.Bool("watch", true, "reload scene physics and scripts when files in prefabs/ change")
	flag.Parse()

	game, err := NewGame(*sceneName, *mode, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Size()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("rigid2d sandbox")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
