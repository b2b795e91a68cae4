package bloom

/*

# Digest membership filters

This package provides the bit-level primitives behind the fast-negative
prefilter cas/completeness.go builds over a content-addressed store: a
preallocated region holding one or more Bloom filters indexing 32-byte
SHA-256 content digests (ValueBytes). A "definitely not present" answer lets
a transitive-artifact-reference walk skip a filesystem Resolve entirely;
a "maybe present" answer always falls through to a real store lookup.

It mirrors the mmr package's style:

- small, composable functions
- explicit byte layouts
- index arithmetic on byte slices
- a burden of knowledge on the caller for hot paths

## What these filters are (and are not)

A Bloom filter provides a *probabilistic prefilter*:

- If the filter says "definitely not present", the digest is not present.
- If the filter says "maybe present", the digest may or may not be present
  (false positives are possible).

These filters are NOT cryptographic commitments and provide no proof of
exclusion. They are strictly an I/O optimization layered in front of the CAS.

## Parallel slots

One region holds Slots (4) parallel filters sharing one header and sizing.
cas.BuildCompletenessIndex only ever populates slot 0 — one completeness
index per artifact type, since cas builds a fresh CompletenessIndex per
ArtifactType already. Slots 1-3 are reserved so a future accelerator (for
example, a per-corridor partition sharing one allocated region) can land
without a header format change.

The slots' bitsets share identical sizing and are stored side-by-side:

	+----------------------+  32B header (magic, version, params)
	| FilterHeader         |
	+----------------------+  bitset bytes (slot 0)
	| slot0 bitset         |
	+----------------------+  bitset bytes (slot 1)
	| slot1 bitset         |
	+----------------------+  bitset bytes (slot 2)
	| slot2 bitset         |
	+----------------------+  bitset bytes (slot 3)
	| slot3 bitset         |
	+----------------------+

## Indexing and bit numbering

Membership uses deterministic double-hashing (SHA-256 over a domain tag,
slot index, and the digest) and an explicit LSB0 bit-numbering convention
(setBitsLSB0/testBitsLSB0).

## Why header fields carry an explicit Version

FilterHeader's Magic/Version fields pin this package to one serialized
layout (header fields, bit-numbering convention, hashing/index-derivation
rules). This is deliberate: a future incompatible change (a new header
layout, a different hash scheme, a different bit order) can be introduced
as a new version value without silently misreading a region built under
the old one.

*/
