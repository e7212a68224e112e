// Package store holds the selection state of a picker instance.
//
// This package is internal to monthpicker. It owns the ordered, duplicate-free
// set of chosen values and the single/multi-select toggling rule, and it
// publishes a snapshot to subscribers after every mutation so rendering
// collaborators (such as the demo HTTP server) can follow along.
//
// The main components are:
//
//   - [Store]: Interface defining the selection operations and subscriptions
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//
// MemoryStore is generic over any comparable value type, so equality for
// presence checks is plain structural equality. Subscribers receive updates
// via channels with non-blocking sends (slow subscribers miss intermediate
// snapshots rather than block a toggle).
package store
