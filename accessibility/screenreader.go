// Package accessibility detects running screen readers.
//
// Detection is purely informational: the CLI uses it once to offer enabling
// automatic image descriptions, and the answer is remembered in the
// preference store. The conversion engine never depends on this package.
package accessibility

// DetectScreenReader returns the name of a running screen reader ("Orca",
// "VoiceOver", "NVDA", "JAWS") or an empty string if none is detected.
// Detection is best effort; failures to inspect processes read as absence.
func DetectScreenReader() string {
	return detectScreenReader()
}
