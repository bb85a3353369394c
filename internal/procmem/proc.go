package procmem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrProcessNotFound indicates no running process matched the given name.
var ErrProcessNotFound = errors.New("process not found")

// The kernel truncates comm values to 15 characters.
const commLimit = 15

// FindProcessByName scans /proc for the first process whose comm matches
// name. Names longer than the kernel's comm limit are compared truncated.
func FindProcessByName(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("process name is required")
	}
	want := name
	if len(want) > commLimit {
		want = want[:commLimit]
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, fmt.Errorf("scan /proc: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			// The process may have exited mid-scan.
			continue
		}
		if strings.TrimSpace(string(comm)) == want {
			return pid, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrProcessNotFound, name)
}
