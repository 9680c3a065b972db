// Package sim provides the deterministic tick-driven actor kernel.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - actor.go: Actor, Starter and Ticker, and the Base every actor embeds
//   - message.go: Message and SessionMessage
//   - system.go: the run loop, delivery rules and the actor registry
//
// # Time
//
// The System owns a tick clock starting at 0. A message told outside a tick
// is delivered on the current tick; a message told while a tick is being
// processed is delivered on the next one. Each tick delivers every due
// message in send order, then calls Tick on every Ticker that was live when
// the tick began, in spawn order, then advances the clock. Message durations
// are not applied by the System: actors that model processing time count
// ticks themselves.
//
// # Architecture
//
// The kernel knows nothing about the message board; it lives in sub-packages:
//   - sim/board/: session protocol (Dispatcher, Worker, message families)
//   - sim/store/: reference message store
//   - sim/scenario/: scripted client sessions and their reports
//   - sim/trace/: delivery trace recording
//
// Actors act on the System through the Runtime interface, so they can be
// driven by a mock in unit tests.
package sim
