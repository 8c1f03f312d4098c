package app

import "errors"

var (
	// ErrInvalidInput wraps every validation failure of caller-supplied values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoActiveGoal indicates the user has no active goal to log against.
	ErrNoActiveGoal = errors.New("no active goal")
)
