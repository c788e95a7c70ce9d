// Package outdir owns an output directory for the duration of one run.
//
// A run takes an exclusive lock on <dir>/.swbd.lock so two conversions cannot
// interleave writes into the same split files. Files are created (truncated)
// the first time they are requested and flushed and closed in that order.
package outdir

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"swbd/internal/pipeline"
)

// LockName is the lock file created inside a locked directory.
const LockName = ".swbd.lock"

// ErrLocked indicates another run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

type openFile struct {
	name string
	file *os.File
	buf  *bufio.Writer
}

// Dir is a locked output directory.
type Dir struct {
	path  string
	lock  *flock.Flock
	files map[string]*openFile
	order []*openFile
}

// Open creates path if needed and locks it.
func Open(path string) (*Dir, error) {
	if strings.TrimSpace(path) == "" {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "outdir", "open", "output directory is required", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(abs, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, abs)
	}
	return &Dir{path: abs, lock: lock, files: make(map[string]*openFile)}, nil
}

// Path returns the absolute directory path.
func (d *Dir) Path() string { return d.path }

// File returns a writer for name, creating the file on first use.
func (d *Dir) File(name string) (io.Writer, error) {
	if d == nil || d.lock == nil {
		return nil, errors.New("output directory is closed")
	}
	if f, ok := d.files[name]; ok {
		return f.buf, nil
	}
	if name == "" || name == LockName || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid output file name %q", name)
	}
	file, err := os.Create(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	f := &openFile{name: name, file: file, buf: bufio.NewWriter(file)}
	d.files[name] = f
	d.order = append(d.order, f)
	return f.buf, nil
}

// Section returns the writer for "<section>.<ext>", or the bare section
// name when ext is empty.
func (d *Dir) Section(section, ext string) (io.Writer, error) {
	name := section
	if ext != "" {
		name = section + "." + strings.TrimPrefix(ext, ".")
	}
	return d.File(name)
}

// Names lists the files opened so far in creation order.
func (d *Dir) Names() []string {
	names := make([]string, 0, len(d.order))
	for _, f := range d.order {
		names = append(names, f.name)
	}
	return names
}

// Close flushes and closes every file and releases the lock.
func (d *Dir) Close() error {
	if d == nil || d.lock == nil {
		return nil
	}
	var errs []error
	for _, f := range d.order {
		if err := f.buf.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", f.name, err))
		}
		if err := f.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", f.name, err))
		}
	}
	d.files = nil
	d.order = nil
	if err := d.lock.Unlock(); err != nil {
		errs = append(errs, fmt.Errorf("release lock: %w", err))
	}
	_ = os.Remove(d.lock.Path())
	d.lock = nil
	return errors.Join(errs...)
}
