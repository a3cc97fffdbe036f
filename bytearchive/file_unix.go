//go:build !windows

package bytearchive

import "golang.org/x/sys/unix"

// unlinkNow removes path immediately, while it is still open, per
// spec §4.1's locked-temporary archive flavor. It reports whether the
// unlink succeeded.
func unlinkNow(path string) bool {
	return unix.Unlink(path) == nil
}
