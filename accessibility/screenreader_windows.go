//go:build windows

package accessibility

import (
	"os/exec"
	"strings"
)

// windowsScreenReaders maps process image names to reported names.
var windowsScreenReaders = map[string]string{
	"nvda.exe": "NVDA",
	"jfw.exe":  "JAWS",
	"jaws.exe": "JAWS",
}

// detectScreenReader lists running processes via tasklist and matches
// against known screen reader image names.
func detectScreenReader() string {
	out, err := exec.Command("tasklist", "/fo", "csv", "/nh").Output()
	if err != nil {
		return ""
	}

	listing := strings.ToLower(string(out))
	for image, reader := range windowsScreenReaders {
		if strings.Contains(listing, image) {
			return reader
		}
	}
	return ""
}
