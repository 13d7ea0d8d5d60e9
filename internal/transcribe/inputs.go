package transcribe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gpu-runtime/internal/services"
)

var mediaExtensions = map[string]struct{}{
	"mp4": {},
	"mkv": {},
	"mov": {},
	"wav": {},
	"mp3": {},
	"m4a": {},
}

// IsMediaFile reports whether path carries an accepted media extension.
func IsMediaFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	_, ok := mediaExtensions[strings.ToLower(ext)]
	return ok
}

// CollectInputs returns root itself when it is a file, or every media file
// below it when it is a directory. Symbolic links are followed, so a
// directory reachable through several links contributes its files once per
// path. A link back to a directory still being walked is not descended.
func CollectInputs(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Mark(services.ErrNotFound, fmt.Errorf("input path does not exist: %s", root))
	}
	if info.Mode().IsRegular() {
		return []string{root}, nil
	}

	var files []string
	if info.IsDir() {
		w := walker{ancestors: map[string]struct{}{}}
		if err := w.walk(root, &files); err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, services.Mark(services.ErrNotFound, fmt.Errorf("no media files found at %s", root))
	}
	return files, nil
}

// walker tracks the resolved directories on the current descent path.
type walker struct {
	ancestors map[string]struct{}
}

func (w walker) walk(dir string, files *[]string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	if _, loop := w.ancestors[resolved]; loop {
		return nil
	}
	w.ancestors[resolved] = struct{}{}
	defer delete(w.ancestors, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("follow link %s: %w", path, err)
			}
			mode = info.Mode().Type()
		}
		switch {
		case mode.IsDir():
			if err := w.walk(path, files); err != nil {
				return err
			}
		case mode.IsRegular():
			if IsMediaFile(path) {
				*files = append(*files, path)
			}
		}
	}
	return nil
}

// outputBase returns the path, without extension, that whisper-cli writes
// its SRT next to. The output directory is created when configured.
func outputBase(cfg Config, input string) (string, error) {
	stem := fileStem(input)
	if stem == "" {
		return "", services.Mark(services.ErrValidation, fmt.Errorf("invalid input filename: %s", input))
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return "", services.Mark(services.ErrValidation, fmt.Errorf("create output directory %s: %w", cfg.OutputDir, err))
		}
		return filepath.Join(cfg.OutputDir, stem), nil
	}
	return filepath.Join(filepath.Dir(input), stem), nil
}

// fileStem is the base name without its final extension. A leading dot does
// not start an extension, so ".hidden" keeps its name.
func fileStem(path string) string {
	name := filepath.Base(path)
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return ""
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// isUpToDate reports whether output exists and was modified no earlier than
// input. Any stat failure counts as stale.
func isUpToDate(input, output string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return false
	}
	return !outInfo.ModTime().Before(inInfo.ModTime())
}
