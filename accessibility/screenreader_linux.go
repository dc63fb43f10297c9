//go:build linux

package accessibility

import (
	"os"
	"path/filepath"
	"strings"
)

// linuxScreenReaders maps process name substrings to reported names.
// "speech-dispatch" covers speech-dispatcher after the kernel's 15-char
// comm truncation.
var linuxScreenReaders = map[string]string{
	"orca":            "Orca",
	"speech-dispatch": "Orca",
}

// detectScreenReader scans /proc for known screen reader processes.
func detectScreenReader() string {
	return scanProcNames("/proc")
}

// scanProcNames walks a proc filesystem root and matches process command
// names against the known screen reader set. Unreadable entries are skipped;
// processes may exit while the scan runs.
func scanProcNames(procRoot string) string {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if !entry.IsDir() || !isNumeric(entry.Name()) {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(procRoot, entry.Name(), "comm"))
		if err != nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(string(comm)))
		for substr, reader := range linuxScreenReaders {
			if strings.Contains(name, substr) {
				return reader
			}
		}
	}
	return ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
