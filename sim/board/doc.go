// Package board implements the session protocol of the message board on top
// of the sim actor kernel.
//
// A client tells the Dispatcher InitCommunication and receives InitAck naming
// a Worker. It then sends one Operation to that Worker, or
// FinishCommunication to end the session early. The Worker prepares the
// store, executes the operation for its duration, sends the matching
// StoreRequest and forwards the store's Reply to the client.
//
// Message families are sealed interfaces: Operation, StoreRequest and Reply.
// Every message's Duration is fixed by its type.
package board
