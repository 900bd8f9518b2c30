package physics

import "errors"

var (
	ErrInvalidTimestep   = errors.New("physics: fixed timestep must be positive")
	ErrAlreadyStarted    = errors.New("physics: rigidbody already started")
	ErrNoEngine          = errors.New("physics: rigidbody has no engine")
	ErrNoTransform       = errors.New("physics: rigidbody needs a Transform component")
	ErrNoCollider        = errors.New("physics: rigidbody needs a Collider component")
	ErrNoBoundingBoxes   = errors.New("physics: collider reported no bounding boxes")
	ErrWrongBucket       = errors.New("physics: body registered in the wrong static/dynamic bucket")
	ErrAlreadyRegistered = errors.New("physics: body already registered")
)
