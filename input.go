package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input samples keyboard and the first gamepad once per frame.
type Input struct {
	held map[string]bool
}

func NewInput() *Input {
	return &Input{held: make(map[string]bool)}
}

func (i *Input) Pressed(action string) bool {
	return i.held[action]
}

func (i *Input) Update() {
	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone {
			left = left || x < 0
			right = right || x > 0
		}
		if math.Abs(y) > stickDeadzone {
			up = up || y < 0
			down = down || y > 0
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	i.held["left"] = left
	i.held["right"] = right
	i.held["up"] = up
	i.held["down"] = down
	i.held["jump"] = jump
}

// debugToggled reports a fresh press of the debug overlay key.
func debugToggled() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
