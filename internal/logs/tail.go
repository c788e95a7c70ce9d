package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const maxLineBytes = 1024 * 1024

// DefaultInterval is how often Follow polls the log file.
const DefaultInterval = 250 * time.Millisecond

// Last returns the final limit lines of the log at path and the offset of its
// end. A limit of zero or less returns every line. A missing file yields no
// lines and offset zero.
func Last(path string, limit int) ([]string, int64, error) {
	file, err := open(path)
	if file == nil {
		return nil, 0, err
	}
	defer file.Close()

	scanner := newScanner(file)
	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, 0, fmt.Errorf("read log file: %w", err)
		}
		offset, err := endOffset(file)
		return lines, offset, err
	}

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	offset, err := endOffset(file)
	return lines, offset, err
}

// Since returns the complete lines appended after offset and the offset just
// past them. A trailing partial line is left for the next call.
func Since(path string, offset int64) ([]string, int64, error) {
	file, err := open(path)
	if file == nil {
		return nil, offset, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = info.Size()
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, offset, nil
			}
			return lines, offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		lines = append(lines, line[:len(line)-1])
	}
}

// FollowOptions controls Follow.
type FollowOptions struct {
	Interval time.Duration
	// Done reports whether the writer has finished. Follow drains the file
	// once more and returns when it does.
	Done func() bool
}

// Follow polls the log from offset and hands every batch of new lines to
// emit until ctx is cancelled or opts.Done reports true.
func Follow(ctx context.Context, path string, offset int64, opts FollowOptions, emit func([]string)) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		finished := opts.Done != nil && opts.Done()
		lines, next, err := Since(path, offset)
		if err != nil {
			return err
		}
		offset = next
		if len(lines) > 0 {
			emit(lines)
		}
		if finished {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func open(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}

func endOffset(file *os.File) (int64, error) {
	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seek log file: %w", err)
	}
	return offset, nil
}
