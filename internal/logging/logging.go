// Package logging points the standard logger at apodbar's log file and reads
// recent lines back for the status view.
package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Setup sends the standard logger to path, creating parent directories.
// With alsoStderr the output is duplicated to stderr (headless runs). The
// returned closer restores stderr-only logging and closes the file.
func Setup(path string, alsoStderr bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	var out io.Writer = file
	if alsoStderr {
		out = io.MultiWriter(file, os.Stderr)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("apodbar: ")
	return closer{file}, nil
}

type closer struct{ file *os.File }

func (c closer) Close() error {
	log.SetOutput(os.Stderr)
	return c.file.Close()
}

// Tail returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < maxLines {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range count {
		lines[i] = ring[(idx+i)%maxLines]
	}
	return lines, nil
}
