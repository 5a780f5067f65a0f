// Package global provides process-wide, lazily-initialized, write-once values.
//
// A cell stands in for a global whose construction has to run real code, like
// parsing an embedded table or building an index, that cannot happen at
// package load time for free. Declaring a cell costs nothing: the producer
// runs on the first access, exactly once no matter how many goroutines race
// for it, and the result is published so every reader sees the one
// fully-constructed value. A warm read costs a single atomic load.
//
// Declare cells at package scope with [New], or [NewWithError] when the
// producer can fail, and read them with Get:
//
//	var index = global.New(func() *SearchIndex {
//		return buildIndex(rawEntries)
//	})
//
//	func lookup(term string) []Result {
//		return index.Get().Find(term)
//	}
//
// The first outcome of a cell is permanent. A producer error is returned
// identically on every later call, and a producer panic poisons the cell so
// later reads fail loudly with a [PoisonError] instead of rerunning the
// producer or handing out garbage.
//
// Cells constructed with the [Eager] option are forced in declaration order
// by [ForceAll], for programs that want initialization paid at startup rather
// than on the first request. Families of values keyed by name live in a
// [Group].
package global
