package subblock

import "errors"

// ErrBlockMemoryTooSmall and ErrInvalidDescriptor are the two error kinds
// spec.md §6/§7 allow to cross this package's boundary. Wrap them with
// fmt.Errorf("%w: ...", ErrX, ...) for detail and unwrap with errors.Is.
var (
	ErrBlockMemoryTooSmall = errors.New("rowstore: sub-block memory region too small")
	ErrInvalidDescriptor   = errors.New("rowstore: invalid tuple-storage sub-block descriptor")
)
