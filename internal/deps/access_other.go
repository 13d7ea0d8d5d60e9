//go:build !unix

package deps

import (
	"errors"
	"os"
	"runtime"
)

var errNoExecBit = errors.New("no execute permission bits set")

func canExecute(_ string, info os.FileInfo) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if info.Mode().Perm()&0o111 == 0 {
		return errNoExecBit
	}
	return nil
}

func canRead(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// CanAccessDir reports whether dir can be listed.
func CanAccessDir(dir string) error {
	_, err := os.ReadDir(dir)
	return err
}
