// Package watcher implements watcher-attestation aggregation (spec §4.7):
// given a set of Watcher Attestation VCs observing the same corridor head,
// it filters stale or invalid entries, detects fork-like divergence, lag,
// and benign checkpoint-digest disagreement, and evaluates whether the
// surviving entries reach quorum on a single agreed head.
//
// Like chain and checkpoint, Compare is pure: the reference instant it
// measures staleness against is a parameter, never the wall clock, so two
// calls with identical inputs always produce identical reports.
package watcher
