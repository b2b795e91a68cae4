// Package authority implements the per-corridor trust-anchor allow-list and
// authority-registry delegation chain (spec §4.9). Registry satisfies the
// single-method TrustAnchors interface package chain, package checkpoint,
// and package watcher each define independently, so one concrete type plugs
// into all three verification paths without adapters.
package authority
