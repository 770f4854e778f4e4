//go:build !windows

package process

import "syscall"

// killGroup signals the negative pid, which addresses the whole group.
func killGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
