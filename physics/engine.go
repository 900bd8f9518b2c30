package physics

import (
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/geom"
	"golang.org/x/sync/errgroup"
)

// Engine steps every registered body at a fixed timestep. Dynamic bodies
// collide against static boxes only.
//
// mu is held for a whole step. Rigidbody accessors take it too, so readers
// on other goroutines only ever see state between steps.
type Engine struct {
	mu sync.Mutex

	fixedTimestep float64
	gravity       cp.Vector
	workers       int
	steps         uint64
	logger        *log.Logger

	dynamic      []*Rigidbody
	dynamicSet   map[*Rigidbody]struct{}
	static       []*Rigidbody
	staticBounds map[*Rigidbody][]geom.Bounds

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewEngine(fixedTimestep float64) (*Engine, error) {
	if fixedTimestep <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimestep, fixedTimestep)
	}
	return &Engine{
		fixedTimestep: fixedTimestep,
		workers:       1,
		logger:        log.Default(),
		dynamicSet:    make(map[*Rigidbody]struct{}),
		staticBounds:  make(map[*Rigidbody][]geom.Bounds),
	}, nil
}

// SetLogger replaces the engine logger. nil silences it.
func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.mu.Lock()
	e.logger = l
	e.mu.Unlock()
}

// SetWorkers splits each step phase across n goroutines. Values below 1
// mean sequential stepping.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	e.workers = n
	e.mu.Unlock()
}

func (e *Engine) FixedTimestep() float64 { return e.fixedTimestep }

// SetGravity applies from the next step on.
func (e *Engine) SetGravity(g cp.Vector) {
	e.mu.Lock()
	e.gravity = g
	e.mu.Unlock()
}

func (e *Engine) Gravity() cp.Vector {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gravity
}

// Steps returns how many steps have completed.
func (e *Engine) Steps() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}

func (e *Engine) isRegistered(rb *Rigidbody) bool {
	if _, ok := e.dynamicSet[rb]; ok {
		return true
	}
	_, ok := e.staticBounds[rb]
	return ok
}

// AddStaticColliders records the world boxes of a static body. The boxes are
// copied and never change afterwards.
func (e *Engine) AddStaticColliders(rb *Rigidbody, bounds []geom.Bounds) {
	if rb == nil || !rb.static {
		panic(fmt.Errorf("%w: AddStaticColliders needs a static body", ErrWrongBucket))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isRegistered(rb) {
		panic(ErrAlreadyRegistered)
	}
	e.static = append(e.static, rb)
	e.staticBounds[rb] = append([]geom.Bounds(nil), bounds...)
	e.logger.Printf("Physics: static body %v registered with %d boxes", rb.entity, len(bounds))
}

func (e *Engine) AddDynamicBody(rb *Rigidbody) {
	if rb == nil || rb.static {
		panic(fmt.Errorf("%w: AddDynamicBody needs a dynamic body", ErrWrongBucket))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isRegistered(rb) {
		panic(ErrAlreadyRegistered)
	}
	e.dynamic = append(e.dynamic, rb)
	e.dynamicSet[rb] = struct{}{}
	e.logger.Printf("Physics: dynamic body %v registered", rb.entity)
}

// RemoveBody unregisters rb from whichever bucket holds it.
func (e *Engine) RemoveBody(rb *Rigidbody) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.dynamicSet[rb]; ok {
		delete(e.dynamicSet, rb)
		e.dynamic = removeBody(e.dynamic, rb)
		return true
	}
	if _, ok := e.staticBounds[rb]; ok {
		delete(e.staticBounds, rb)
		e.static = removeBody(e.static, rb)
		return true
	}
	return false
}

func removeBody(bodies []*Rigidbody, rb *Rigidbody) []*Rigidbody {
	for i, other := range bodies {
		if other == rb {
			return append(bodies[:i], bodies[i+1:]...)
		}
	}
	return bodies
}

// StaticBounds returns a copy of the boxes registered for a static body.
func (e *Engine) StaticBounds(rb *Rigidbody) ([]geom.Bounds, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bounds, ok := e.staticBounds[rb]
	if !ok {
		return nil, false
	}
	return append([]geom.Bounds(nil), bounds...), true
}

// DynamicBodies returns the dynamic bodies in registration order.
func (e *Engine) DynamicBodies() []*Rigidbody {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Rigidbody(nil), e.dynamic...)
}

// StaticBodies returns the static bodies in registration order.
func (e *Engine) StaticBodies() []*Rigidbody {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Rigidbody(nil), e.static...)
}

// FixedUpdate runs one full step.
func (e *Engine) FixedUpdate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.step()
}

// step runs detection, resolution and integration. A phase finishes for
// every body before the next one starts.
func (e *Engine) step() {
	ctx := UpdateContext{Gravity: e.gravity, FixedTimestep: e.fixedTimestep}
	hits := make([][]Hit2D, len(e.dynamic))

	e.each(len(e.dynamic), func(i int) {
		hits[i] = e.detect(e.dynamic[i])
	})
	e.each(len(e.dynamic), func(i int) {
		rb := e.dynamic[i]
		if len(hits[i]) == 0 {
			rb.contacts = Contacts{}
			return
		}
		rb.resolveCollisions(hits[i])
	})
	e.each(len(e.dynamic), func(i int) {
		e.dynamic[i].fixedUpdate(ctx)
	})
	e.steps++
}

// detect tests rb against every static box in registration order.
func (e *Engine) detect(rb *Rigidbody) []Hit2D {
	box := rb.boundingBox()
	var hits []Hit2D
	for _, s := range e.static {
		for _, b := range e.staticBounds[s] {
			if o, ok := box.Overlap(b); ok {
				hits = append(hits, Hit2D{Bounds: o, Static: true, Body: s})
			}
		}
	}
	return hits
}

// each calls fn for 0..n-1, split into contiguous chunks across workers.
// Every index is handled by exactly one goroutine.
func (e *Engine) each(n int, fn func(i int)) {
	if e.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	chunk := (n + e.workers - 1) / e.workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
