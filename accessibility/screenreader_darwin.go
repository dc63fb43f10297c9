//go:build darwin

package accessibility

import (
	"os/exec"
	"strings"
)

// detectScreenReader checks for a running VoiceOver process.
func detectScreenReader() string {
	out, err := exec.Command("pgrep", "-x", "VoiceOver").Output()
	if err != nil {
		return ""
	}
	if strings.TrimSpace(string(out)) != "" {
		return "VoiceOver"
	}
	return ""
}
