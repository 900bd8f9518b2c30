package physics

import "time"

// RunPhysicsSimulation steps the engine on its own goroutine once per fixed
// timestep until Shutdown. Calling it while running does nothing.
func (e *Engine) RunPhysicsSimulation() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.stopCh = make(chan struct{})
	e.wg.Add(1)
	go e.loop(e.stopCh)
	e.logger.Printf("Physics: simulation started at %v per step", e.interval())
}

// Shutdown stops the simulation goroutine and waits for it. A step in
// flight always completes first.
func (e *Engine) Shutdown() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.stopCh)
	e.wg.Wait()
	e.logger.Printf("Physics: simulation stopped after %d steps", e.Steps())
}

// Running reports whether the simulation goroutine is active.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Update runs one step on the caller's goroutine. It is a no-op while the
// simulation goroutine owns stepping.
func (e *Engine) Update() {
	if e.running.Load() {
		return
	}
	e.FixedUpdate()
}

func (e *Engine) interval() time.Duration {
	d := time.Duration(e.fixedTimestep * float64(time.Second))
	if d <= 0 {
		d = time.Nanosecond
	}
	return d
}

func (e *Engine) loop(stop <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			e.FixedUpdate()
		}
	}
}
