package main

import "github.com/gdamore/tcell/v2"

// Terminals only report key presses, so a press holds its action for a few
// frames. Key repeat keeps it held.
const holdFrames = 8

type keyInput struct {
	frame int
	until map[string]int
}

func newKeyInput() *keyInput {
	return &keyInput{until: make(map[string]int)}
}

func (k *keyInput) Pressed(action string) bool {
	return k.until[action] > k.frame
}

func (k *keyInput) tick() {
	k.frame++
}

func (k *keyInput) press(action string) {
	k.until[action] = k.frame + holdFrames
}

func (k *keyInput) handle(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		k.press("left")
	case tcell.KeyRight:
		k.press("right")
	case tcell.KeyUp:
		k.press("up")
	case tcell.KeyDown:
		k.press("down")
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			k.press("left")
		case 'd', 'D':
			k.press("right")
		case 'w', 'W':
			k.press("up")
		case 's', 'S':
			k.press("down")
		case ' ':
			k.press("jump")
		}
	}
}
