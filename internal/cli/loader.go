package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/microsoft/figma-variables-import/internal/engine"
)

// LoadError represents an error that occurred while reading input files.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadFiles reads the token and manifest files named by paths.
//
// A file path is read as is and named by its base name. A directory is
// walked for *.json files, each named by its slash-separated path relative
// to the directory, in lexical order. Manifests refer to files by these
// names.
func LoadFiles(paths []string) ([]engine.File, error) {
	var files []engine.File
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "no such file or directory", Path: path}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
		}

		if !info.IsDir() {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeReadFailed, Message: err.Error(), Path: path}
			}
			files = append(files, engine.File{Name: filepath.Base(path), Text: string(data)})
			continue
		}

		found, err := FindJSONFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Path: path}
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no JSON files found in %s", strings.Join(paths, ", "))}
	}
	return files, nil
}

// FindJSONFiles walks dir and reads every .json file in it.
func FindJSONFiles(dir string) ([]engine.File, error) {
	var files []engine.File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, engine.File{Name: filepath.ToSlash(rel), Text: string(data)})
		return nil
	})
	return files, err
}

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeScanError  = "E002" // Directory scan error
	ErrCodeNoFiles    = "E003" // No JSON files found
	ErrCodeReadFailed = "E004" // File read error
	ErrCodeNotFound   = "E005" // Path not found
	ErrCodeDatabase   = "E006" // Store open/read/write error

	ErrCodeImportErrors = "E101" // Import finished with errors in its result log
	ErrCodeConversion   = "E102" // Conversion table out of sync; import aborted
)
