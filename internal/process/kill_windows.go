//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killGroup runs taskkill with /T to end the whole tree.
func killGroup(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
