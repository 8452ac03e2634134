package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "wqcli/internal/errors"
)

// TableExtensions lists the input formats the table loader understands
var TableExtensions = []string{".csv", ".txt", ".xlsx", ".xlsm"}

// FileValidator provides common file validation functions for all executables
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is a readable table file
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isTableExtension(ext) {
		v.logger.Error("unsupported input file",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(
			fmt.Sprintf("file %s is not a supported table (extension: %s)", path, ext)).
			WithContext("file", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("skipping temporary Excel file", slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path)).
			WithContext("file", path)
	}
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("file does not exist", slog.String("file", path))
		return apperrors.NewStorageError(fmt.Sprintf("file %s does not exist", path), err).
			WithContext("file", path)
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err).
			WithContext("file", path)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext("file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err).
			WithContext("file", path)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("output directory validated", slog.String("directory", dir))
	return nil
}

// ExpandInputs resolves command-line inputs into table files. Directories
// contribute every supported table they contain; glob patterns are expanded.
// The result is sorted and free of duplicates.
func (v *FileValidator) ExpandInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, in := range inputs {
		if info, err := os.Stat(in); err == nil && info.IsDir() {
			entries, err := os.ReadDir(in)
			if err != nil {
				return nil, apperrors.NewStorageError(fmt.Sprintf("read directory %s", in), err)
			}
			for _, e := range entries {
				if !e.IsDir() && isTableExtension(strings.ToLower(filepath.Ext(e.Name()))) &&
					!strings.HasPrefix(e.Name(), "~$") {
					add(filepath.Join(in, e.Name()))
				}
			}
			continue
		}

		matches, err := filepath.Glob(in)
		if err != nil {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid input pattern %q", in))
		}
		if len(matches) == 0 {
			// Let ValidateInputFile report the missing file by name.
			matches = []string{in}
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	for _, f := range files {
		if err := v.ValidateInputFile(f); err != nil {
			return nil, err
		}
	}

	v.logger.Info("inputs resolved", slog.Int("files", len(files)))
	return files, nil
}

func isTableExtension(ext string) bool {
	for _, e := range TableExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
