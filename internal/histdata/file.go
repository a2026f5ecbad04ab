package histdata

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yanun0323/errors"
)

// FileSink archives records to one append-only text file per kind under a
// base directory, "<kind>.txt", one "key,payload" line per record.
type FileSink struct {
	dir string

	mu    sync.Mutex
	files map[Kind]*os.File
}

func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create archive dir %s", dir)
	}
	return &FileSink{dir: dir, files: make(map[Kind]*os.File)}, nil
}

func (s *FileSink) Persist(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[rec.Kind]
	if !ok {
		path := filepath.Join(s.dir, string(rec.Kind)+".txt")
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrapf(err, "open archive %s", path)
		}
		s.files[rec.Kind] = f
	}

	_, err := fmt.Fprintf(f, "%s,%s\n", rec.Key, rec.Payload)
	return err
}

// Close flushes and closes every open archive file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var first error
	for kind, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close archive %s", kind)
		}
		delete(s.files, kind)
	}
	return first
}
