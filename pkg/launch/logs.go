package launch

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Status describes a previously launched game process, as far as it can
// be observed by pid alone.
type Status struct {
	PID     int
	Running bool
	Command string
}

// Inspect reports whether a launched process is still running and what
// command it is executing. Best-effort: a process this launcher did not
// spawn, or one that already exited, yields an "unavailable" error.
// Reads /proc directly where available and falls back to ps elsewhere.
func Inspect(pid int) (Status, error) {
	if cmdline, err := procCmdline(pid); err == nil {
		return Status{PID: pid, Running: true, Command: cmdline}, nil
	}

	if cmdline, err := psCommand(pid); err == nil {
		return Status{PID: pid, Running: true, Command: cmdline}, nil
	}

	return Status{PID: pid}, fmt.Errorf("logs unavailable for pid %d: process not found", pid)
}

func procCmdline(pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty cmdline for pid %d", pid)
	}
	cmdline := string(bytes.ReplaceAll(bytes.TrimRight(data, "\x00"), []byte{0}, []byte{' '}))
	return cmdline, nil
}

func psCommand(pid int) (string, error) {
	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "command=").Output()
	if err != nil {
		return "", err
	}
	cmdline := strings.TrimSpace(string(out))
	if cmdline == "" {
		return "", fmt.Errorf("no such process %d", pid)
	}
	return cmdline, nil
}
