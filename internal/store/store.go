package store

// Store defines the selection operations shared by picker state holders.
//
// Store implementations must be safe for concurrent access and must keep
// values in insertion order without duplicates. In single-select mode a
// Store never holds more than one value.
type Store[T comparable] interface {
	// Toggle adds v if absent and removes it if present. In single-select
	// mode adding replaces the current value and removing clears the set.
	// Returns false, leaving the store unchanged, if the reject predicate
	// vetoes v.
	Toggle(v T) bool

	// Contains reports whether v is currently selected.
	Contains(v T) bool

	// Snapshot returns the current values in insertion order.
	// The returned slice is a copy; modifications do not affect the store.
	Snapshot() []T

	// Clear removes every value.
	Clear()

	// ReplaceAll swaps the current values for vs, dropping duplicates.
	// In single-select mode only the first value is kept.
	ReplaceAll(vs []T)

	// Subscribe returns a channel that receives a snapshot after every mutation.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan []T

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan []T)

	// Close closes every subscription. Later subscriptions receive a
	// closed channel.
	Close()
}
