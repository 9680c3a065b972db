// Package trace provides delivery-trace recording for actor simulations.
// This package has no dependencies on sim/ or its sub-packages; it stores pure data types.
package trace

// DeliveryRecord captures one message handed to an actor by the run loop.
type DeliveryRecord struct {
	Clock           int64
	Target          int64  // actor id
	Kind            string // concrete message type, e.g. "board.InitAck"
	CommunicationID int64  // meaningful only when HasSession is set
	HasSession      bool
	DeadLetter      bool // target was stopped or never spawned
}
