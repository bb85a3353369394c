package procmem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrModuleNotFound indicates the named module is not mapped into the
// target process.
var ErrModuleNotFound = errors.New("module not mapped")

// FindModuleBase parses /proc/<pid>/maps and returns the lowest mapped
// address of the named module.
func FindModuleBase(pid int, module string) (uint64, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return 0, fmt.Errorf("open maps for pid %d: %w", pid, err)
	}
	defer file.Close()
	return parseModuleBase(file, module)
}

// parseModuleBase scans maps-formatted lines for the first mapping whose
// backing path matches module by base name. Mappings are listed in address
// order, so the first match is the module base.
func parseModuleBase(r io.Reader, module string) (uint64, error) {
	module = strings.TrimSpace(module)
	if module == "" {
		return 0, errors.New("module name is required")
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		if filepath.Base(fields[len(fields)-1]) != module {
			continue
		}
		start, _, found := strings.Cut(fields[0], "-")
		if !found {
			continue
		}
		base, err := strconv.ParseUint(start, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("parse mapping %q: %w", line, err)
		}
		return base, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan maps: %w", err)
	}
	return 0, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
}
