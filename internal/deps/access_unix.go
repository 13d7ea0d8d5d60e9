//go:build unix

package deps

import (
	"os"

	"golang.org/x/sys/unix"
)

func canExecute(path string, _ os.FileInfo) error {
	return unix.Access(path, unix.X_OK)
}

func canRead(path string) error {
	return unix.Access(path, unix.R_OK)
}

// CanAccessDir reports whether dir can be listed and entered.
func CanAccessDir(dir string) error {
	return unix.Access(dir, unix.R_OK|unix.X_OK)
}
