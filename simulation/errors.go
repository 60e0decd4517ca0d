package simulation

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned before any round executes when the
	// run parameters cannot produce a valid simulation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidParent is returned when a parent block id is not present in
	// the chain. Strategies only ever return existing blocks, so hitting
	// this during a run indicates a bug rather than a runtime condition.
	ErrInvalidParent = errors.New("invalid parent")
)
