package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/transform"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644

	// DefaultPrefix is the file name prefix of per-language files.
	DefaultPrefix = "tr_"
)

// ErrInvalidLanguageCode is returned for codes that cannot name a file inside the store.
var ErrInvalidLanguageCode = errors.New("invalid language code")

// Store is a directory of per-language files named <prefix><code><ext>.
type Store struct {
	dir    string
	prefix string
	codec  Codec
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. An empty prefix means DefaultPrefix.
func NewStore(dir, prefix string, codec Codec, logger *slog.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{dir: dir, prefix: prefix, codec: codec, logger: logger}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path used for a language code. Codes holding a path
// separator are rejected so every file stays inside the store directory.
func (s *Store) Path(code string) (string, error) {
	if code == "" || strings.ContainsAny(code, `/\`) || strings.Contains(code, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}

	return filepath.Join(s.dir, s.prefix+code+s.codec.Extension()), nil
}

// Write implements transform.Sink. The directory is created on demand.
func (s *Store) Write(ctx context.Context, code string, file transform.LanguageFile) error {
	path, err := s.Path(code)
	if err != nil {
		return err
	}

	err = WriteFile(path, s.codec, file)
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "language file written", "language", code, "path", path)

	return nil
}

// ReadAll reads every per-language file in the directory. Entries that are
// not regular files or do not match the naming scheme are skipped.
func (s *Store) ReadAll(ctx context.Context) (map[string]transform.LanguageFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	files := make(map[string]transform.LanguageFile)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		code, ok := s.languageCode(entry.Name())
		if !ok {
			continue
		}

		file := transform.LanguageFile{}

		err = ReadFile(filepath.Join(s.dir, entry.Name()), s.codec, &file)
		if err != nil {
			return nil, err
		}

		s.logger.DebugContext(ctx, "language file read", "language", code, "keys", len(file))

		files[code] = file
	}

	return files, nil
}

func (s *Store) languageCode(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, s.prefix)
	if !ok {
		return "", false
	}

	code, ok := strings.CutSuffix(rest, s.codec.Extension())
	if !ok || code == "" {
		return "", false
	}

	return code, true
}

// WriteFile encodes v into path, creating parent directories and syncing
// the file before it is closed.
func WriteFile(path string, codec Codec, v any) error {
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	//nolint:gosec // path comes from the operator's CLI arguments.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	err = codec.Encode(file, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	err = file.Sync()
	if err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}

	return nil
}

// ReadFile decodes path into v, which must be a pointer.
func ReadFile(path string, codec Codec, v any) error {
	//nolint:gosec // path comes from the operator's CLI arguments.
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	err = codec.Decode(file, v)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
