package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/prefabs"
	"golang.org/x/image/colornames"
)

const (
	defaultWidth  = 640
	defaultHeight = 368
)

type Game struct {
	frames int
	debug  bool

	sceneName string
	width     int
	height    int

	input   *Input
	engine  *engine.Engine
	scene   *prefabs.Scene
	watcher *prefabs.Watcher
}

func NewGame(sceneName, mode string, debug, watch bool) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(sceneName)
	if err != nil {
		return nil, err
	}
	if mode != "" {
		spec.Physics.Mode = mode
	}

	g := &Game{
		debug:     debug,
		sceneName: sceneName,
		width:     defaultWidth,
		height:    defaultHeight,
		input:     NewInput(),
		engine:    engine.New(),
	}
	for _, b := range spec.Bodies {
		if b.Tilemap == nil {
			continue
		}
		if lvl, err := levels.LoadLevelFromFS(b.Tilemap.Level); err == nil {
			g.width = int(float64(lvl.Width) * lvl.TileSize)
			g.height = int(float64(lvl.Height) * lvl.TileSize)
		}
	}

	if g.scene, err = prefabs.Build(g.engine, spec, g.input); err != nil {
		return nil, err
	}
	if err := g.engine.Startup(); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("Game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.engine.Shutdown()
}

func (g *Game) Update() error {
	g.frames++

	if debugToggled() {
		g.debug = !g.debug
	}
	g.pollReload()
	g.input.Update()

	return g.engine.Update(1 / float64(ebiten.TPS()))
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(c)
		case err := <-g.watcher.Errors:
			log.Printf("Game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(c prefabs.Change) {
	name := filepath.Base(c.Path)
	switch c.Kind {
	case prefabs.SceneChanged:
		if name != filepath.Base(g.sceneName) {
			return
		}
		spec, err := prefabs.LoadSceneSpec(g.sceneName)
		if err != nil {
			log.Printf("Game: reload %s: %v", name, err)
			return
		}
		prefabs.ApplyPhysics(g.engine.Physics(), spec.Physics)
		log.Printf("Game: reloaded physics from %s", name)
	case prefabs.ScriptChanged:
		if err := g.scene.ReloadScripts(name); err != nil {
			log.Printf("Game: reload %s: %v", name, err)
			return
		}
		log.Printf("Game: reloaded script %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	w := g.engine.World()
	for _, b := range g.scene.Bodies {
		if !w.IsActive(b.Entity) {
			continue
		}
		for _, box := range b.Collider.BoundingBoxes() {
			fillBounds(screen, box, b.Color)
		}
	}

	if g.debug {
		g.drawDebug(screen)
	}

	collected, total := g.scene.Collected()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  steps: %d  collected: %d/%d  [F3] debug",
		ebiten.ActualFPS(), g.engine.Physics().Steps(), collected, total))
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	for _, b := range g.scene.Bodies {
		if b.Rigidbody == nil {
			if b.Collider.IsTrigger() && g.engine.World().IsActive(b.Entity) {
				for _, box := range b.Collider.BoundingBoxes() {
					strokeBounds(screen, box, colornames.Orange)
				}
			}
			continue
		}
		if b.Rigidbody.IsStatic() {
			boxes, _ := g.engine.Physics().StaticBounds(b.Rigidbody)
			for _, box := range boxes {
				strokeBounds(screen, box, colornames.Lightgrey)
			}
			continue
		}

		clr := color.Color(colornames.Red)
		if b.Rigidbody.Contacts().Bottom {
			clr = colornames.Lime
		}
		box := b.Rigidbody.BoundingBox()
		strokeBounds(screen, box, clr)

		c := box.Center()
		v := b.Rigidbody.Velocity()
		vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(c.X+v.X*0.1), float32(c.Y+v.Y*0.1), 1, colornames.Yellow, false)
	}
}

func fillBounds(screen *ebiten.Image, b geom.Bounds, clr color.Color) {
	vector.FillRect(screen, float32(b.Left()), float32(b.Top()), float32(b.Width()), float32(b.Height()), clr, false)
}

func strokeBounds(screen *ebiten.Image, b geom.Bounds, clr color.Color) {
	vector.StrokeRect(screen, float32(b.Left()), float32(b.Top()), float32(b.Width()), float32(b.Height()), 1, clr, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
