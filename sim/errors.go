package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownClient reports a communication id with no matching session,
	// or a message sent to a worker bound to a different session.
	ErrUnknownClient = errors.New("unknown client")
	// ErrUnknownMessage reports a message kind the receiving actor does not
	// accept in its current state.
	ErrUnknownMessage = errors.New("unknown message")
	// ErrAlreadySpawned reports a second Spawn of a registered actor.
	ErrAlreadySpawned = errors.New("actor already spawned")
)

// DeliveryError wraps an error returned by an actor while the run loop was
// delivering a message to it or ticking it. Message is nil for tick errors.
type DeliveryError struct {
	Clock   int64
	Actor   ActorID
	Message Message
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Message == nil {
		return fmt.Sprintf("tick %d: actor %d: %v", e.Clock, e.Actor, e.Err)
	}
	return fmt.Sprintf("tick %d: actor %d handling %T: %v", e.Clock, e.Actor, e.Message, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// DeliveryErrors flattens an error returned by RunFor or RunUntil into the
// per-actor failures it carries. Errors that are not DeliveryErrors are skipped.
func DeliveryErrors(err error) []*DeliveryError {
	if err == nil {
		return nil
	}
	var out []*DeliveryError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, DeliveryErrors(e)...)
		}
		return out
	}
	var de *DeliveryError
	if errors.As(err, &de) {
		out = append(out, de)
	}
	return out
}
