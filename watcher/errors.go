package watcher

import "errors"

// ErrInvalidQuorumSpec is returned when a quorum threshold string is
// neither "majority" nor a "K/N" form.
var ErrInvalidQuorumSpec = errors.New("watcher: invalid quorum threshold spec")
