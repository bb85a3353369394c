package procmem

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestFindProcessByNameFindsSelf(t *testing.T) {
	comm, err := os.ReadFile("/proc/self/comm")
	if err != nil {
		t.Skipf("no /proc available: %v", err)
	}
	name := strings.TrimSpace(string(comm))

	pid, err := FindProcessByName(name)
	if err != nil {
		t.Fatalf("FindProcessByName(%q): %v", name, err)
	}
	if pid <= 0 {
		t.Fatalf("pid = %d, want positive", pid)
	}
}

func TestFindProcessByNameMissing(t *testing.T) {
	if _, err := os.Stat("/proc"); err != nil {
		t.Skipf("no /proc available: %v", err)
	}
	_, err := FindProcessByName("starsplit-no-such-process")
	if !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("err = %v, want ErrProcessNotFound", err)
	}
}

func TestFindProcessByNameRequiresName(t *testing.T) {
	if _, err := FindProcessByName(""); err == nil {
		t.Fatal("blank process name should fail")
	}
}
