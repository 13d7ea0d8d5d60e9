// Package deps checks that the external programs and model files a
// transcription needs are present and usable.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Kind selects how a requirement is verified.
type Kind int

const (
	// KindFile must be a readable regular file.
	KindFile Kind = iota
	// KindExecutable must be runnable. Bare command names are looked up on PATH.
	KindExecutable
)

// Requirement defines an external dependency a job relies on.
type Requirement struct {
	Name        string
	Path        string
	Description string
	Kind        Kind
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Path        string
	Description string
	Available   bool
	// Resolved is the PATH match for bare command names.
	Resolved string
	Detail   string
}

// Check evaluates the provided requirements and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkOne(req))
	}
	return results
}

func checkOne(req Requirement) Status {
	path := strings.TrimSpace(req.Path)
	status := Status{
		Name:        req.Name,
		Path:        path,
		Description: strings.TrimSpace(req.Description),
	}
	if path == "" {
		status.Detail = "path not configured"
		return status
	}

	if req.Kind == KindExecutable && !IsExplicitPath(path) {
		resolved, err := exec.LookPath(path)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found on PATH", path)
			return status
		}
		status.Available = true
		status.Resolved = resolved
		status.Detail = "found at " + resolved
		return status
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
		} else {
			status.Detail = fmt.Sprintf("stat: %v", err)
		}
		return status
	}
	if info.IsDir() {
		status.Detail = "is a directory"
		return status
	}

	switch req.Kind {
	case KindExecutable:
		if err := canExecute(path, info); err != nil {
			status.Detail = fmt.Sprintf("not executable: %v", err)
			return status
		}
		status.Detail = "executable"
	default:
		if err := canRead(path); err != nil {
			status.Detail = fmt.Sprintf("not readable: %v", err)
			return status
		}
		status.Detail = fmt.Sprintf("readable (%d bytes)", info.Size())
	}
	status.Available = true
	return status
}

// IsExplicitPath reports whether path names a location rather than a command
// to look up on PATH.
func IsExplicitPath(path string) bool {
	return filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) || strings.ContainsRune(path, '/')
}
