package rotation

import "errors"

var (
	// ErrTornDown is returned when interacting with a scheduler whose session has ended
	ErrTornDown = errors.New("rotation scheduler has been torn down")

	// ErrAlreadyRunning is returned when Run is called more than once
	ErrAlreadyRunning = errors.New("rotation scheduler is already running")

	// ErrNotPlaying is returned when a manual rotation is requested outside the Playing state
	ErrNotPlaying = errors.New("rotation scheduler is not playing")
)
