package subtitle

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// returned by WriteLRC when the destination is already present
var ErrOutputExists = errors.New("output already exists")

// RenderLRC renders entries as [mm:ss.cc]text lines joined by "\n",
// without a trailing newline.
func RenderLRC(entries []Entry) string {
	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("[")
		sb.WriteString(entry.Display)
		sb.WriteString("]")
		sb.WriteString(entry.Text)
	}
	return sb.String()
}

// WriteLRC writes content to path unless path already exists, in which
// case it returns ErrOutputExists without touching the output directory.
// Creation is serialized per output directory with an advisory lock kept
// in the system temp directory.
func WriteLRC(path string, content string) error {
	if exists, err := fileExists(path); err != nil {
		return err
	} else if exists {
		return ErrOutputExists
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := flock.New(lockPathFor(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrOutputExists
		}
		return fmt.Errorf("failed to create LRC file: %w", err)
	}

	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write LRC file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close LRC file: %w", err)
	}

	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// lock files are never removed; unlinking one while another writer waits
// on it would hand out two locks
func lockPathFor(path string) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(dir))
	return filepath.Join(os.TempDir(), fmt.Sprintf("asslrc-%016x.lock", h.Sum64()))
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatASS:
		return ".ass"
	case FormatLRC:
		return ".lrc"
	default:
		return ".lrc"
	}
}

// OutputPath returns the path in outDir with the base name of inputPath
// and its extension replaced by ext.
func OutputPath(inputPath, outDir, ext string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	return filepath.Join(outDir, stem+ext)
}
