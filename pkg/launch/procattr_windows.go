//go:build windows

package launch

import "os/exec"

// setProcessGroup is a no-op on Windows, where child processes do not
// inherit console signals through process groups the same way.
func setProcessGroup(cmd *exec.Cmd) {}
