package adapter

import "time"

// Clock supplies the current time to auction pricing and receipt timestamps
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewClock returns a Clock reading the system time in UTC
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
