// Package audio keeps synthesized chunk audio on disk until the run
// finishes, then joins the parts into the final file in chunk order.
package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// PartStore saves one file per chunk in a private working directory.
// Save is safe for concurrent use: every chunk index maps to its own file.
type PartStore struct {
	Dir string
}

// NewPartStore creates a unique working directory under parent
// (the OS temp dir when parent is empty). parent must already exist.
func NewPartStore(parent string) (*PartStore, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	dir := filepath.Join(parent, ".pdf2audio-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create parts dir: %w", err)
	}
	return &PartStore{Dir: dir}, nil
}

func (s *PartStore) partPath(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("part-%05d.mp3", index))
}

// Save writes the audio for chunk index. The file only appears under its
// final name once fully written.
func (s *PartStore) Save(index int, data []byte) error {
	path := s.partPath(index)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write part %d: %w", index, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit part %d: %w", index, err)
	}
	return nil
}

// Assemble concatenates the parts for indexes in ascending chunk order into
// out, creating or truncating it, and returns the number of bytes written.
// MP3 frames are self-delimiting, so byte concatenation yields a playable file.
func (s *PartStore) Assemble(out string, indexes []int) (int64, error) {
	ordered := append([]int(nil), indexes...)
	sort.Ints(ordered)

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	var total int64
	for _, i := range ordered {
		n, err := appendFile(f, s.partPath(i))
		total += n
		if err != nil {
			f.Close()
			return total, fmt.Errorf("append part %d: %w", i, err)
		}
	}
	if err := f.Close(); err != nil {
		return total, fmt.Errorf("close output: %w", err)
	}
	return total, nil
}

func appendFile(dst io.Writer, path string) (int64, error) {
	src, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	return io.Copy(dst, src)
}

// Cleanup removes the working directory and every part in it.
func (s *PartStore) Cleanup() error {
	return os.RemoveAll(s.Dir)
}
