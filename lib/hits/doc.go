// Package hits implements the in-memory result model for daemon searches: a
// TopHits collection owning scored Hits, which own their Domains by value,
// each with one realized Alignment.
//
// Ownership is strictly top-down. Domains and alignments never point back at
// their owners; where the position of a domain within its hit matters,
// callers use indices. A TopHits is populated incrementally while the
// response payload is decoded, then behaves as a value: it can be sorted,
// merged into another collection, re-thresholded and exported.
//
// Sort state is cached: a collection is "sorted by key", "sorted by target
// index", or unsorted, and the IsSorted predicates are O(1) flag reads.
// Mutations that can break an order clear the corresponding flag.
package hits
