//go:build !linux && !darwin && !windows

package accessibility

// detectScreenReader has no detection strategy on this platform.
func detectScreenReader() string {
	return ""
}
