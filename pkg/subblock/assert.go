//go:build !rowstore_release

package subblock

import "fmt"

// assertf panics on a violated precondition. Spec.md §7 treats these as
// "fatal in debug builds (assertion), undefined behavior in release" —
// the rowstore_release build tag selects the no-op variant in
// assert_release.go for production builds that have already been
// validated against this check elsewhere.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
