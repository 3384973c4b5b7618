package epochs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/landrank/internal/domain/types"
	"github.com/okian/landrank/pkg/logger"
)

// Source provides the ordered epoch collection.
type Source interface {
	// Epochs returns every epoch sorted by number.
	Epochs(ctx context.Context) ([]types.Epoch, error)
}

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithLogger sets the logger used to report loaded files.
func WithLogger(l logger.Logger) Option {
	return func(s *FileSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExtensions sets the file extensions read from a directory.
func WithExtensions(exts ...string) Option {
	return func(s *FileSource) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// FileSource reads epochs from a YAML file or from every YAML file in a directory.
type FileSource struct {
	path       string
	extensions []string
	logger     logger.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:       path,
		extensions: []string{".yaml", ".yml"},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Epochs loads and validates the whole collection. Epoch numbers must be
// unique across files.
func (s *FileSource) Epochs(ctx context.Context) ([]types.Epoch, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	var docs []epochDoc
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load epochs: %w", err)
		}
		d, err := s.readFile(path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug(ctx, "epoch file read", logger.String("file", path), logger.Int("epochs", len(d)))
		docs = append(docs, d...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, s.path)
	}

	epochs, err := build(docs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return epochs, nil
}

func (s *FileSource) files() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if !info.IsDir() {
		return []string{s.path}, nil
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(s.extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		files = append(files, filepath.Join(s.path, e.Name()))
	}
	return files, nil
}

func (s *FileSource) readFile(path string) ([]epochDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	defer func() { _ = f.Close() }()

	docs, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// StaticSource serves an in-memory collection.
type StaticSource []types.Epoch

// Epochs returns the collection as given.
func (s StaticSource) Epochs(_ context.Context) ([]types.Epoch, error) {
	return []types.Epoch(s), nil
}
