// Package cas implements the content-addressed artifact store: a
// <store_root>/<type>/<digest>.<ext> layout with idempotent writes,
// hash-collision detection, on-read integrity verification, and a
// bloom-filter-accelerated transitive completeness check.
//
// The store is the only shared-mutable resource in this codebase: concurrent
// writers race
// only on the same (type, digest) pair, resolved by atomic rename-on-write,
// and readers never need locks because content is content-addressed.
package cas
