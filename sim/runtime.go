//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=../mocks/mock_runtime.go -package=mocks
package sim

// Runtime is the view of the System that actors act through.
// *System implements it.
type Runtime interface {
	Spawn(a Actor) (ActorID, error)
	Tell(to ActorID, msg Message)
	Schedule(to ActorID, msg Message, delay int64)
	Stop(id ActorID)
	Alive(id ActorID) bool
	CurrentTime() int64
}

var _ Runtime = (*System)(nil)
