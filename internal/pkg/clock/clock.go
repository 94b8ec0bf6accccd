// Package clock supplies the time stamped on a document's bonus flags
// whenever the bonus repositories replace or delete them. Tests swap in
// the mock to pin updatedAt.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/babonus/internal/pkg/clock Clock

// Clock reports the time a bonus write happens
type Clock interface {
	Now() time.Time
}

// Real reads the system clock
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns the system clock used by the repositories by default
func New() Clock {
	return &Real{}
}
