package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// PDFExtension is the only extension kept in strict mode
const PDFExtension = "pdf"

// DiscoverOptions selects the input files of a scan
type DiscoverOptions struct {
	Files       []string
	Directories []string
	// Strict keeps only *.pdf files found in directories.
	Strict bool
	// Recursive descends into subdirectories.
	Recursive bool
}

// Discover resolves the explicit files and the regular files of the given
// directories into a sorted list of unique absolute paths. Missing or wrong
// kind entries are logged and skipped.
func Discover(opts DiscoverOptions, logger zerolog.Logger) []string {
	unique := make(map[string]struct{})

	for _, file := range opts.Files {
		info, err := os.Stat(file)

		switch {
		case err != nil:
			logger.Warn().Err(err).Str("file", file).Msg("File does not exist")
			continue
		case !info.Mode().IsRegular():
			logger.Warn().Str("file", file).Msg("Not a valid file (it may be a directory)")
			continue
		}

		addAbs(unique, file, logger)
	}

	for _, dir := range opts.Directories {
		info, err := os.Stat(dir)

		switch {
		case err != nil:
			logger.Warn().Err(err).Str("directory", dir).Msg("Directory does not exist")
			continue
		case !info.IsDir():
			logger.Warn().Str("directory", dir).Msg("Not a valid directory (it may be a file)")
			continue
		}

		for _, file := range listDirectory(dir, opts, logger) {
			addAbs(unique, file, logger)
		}
	}

	paths := make([]string, 0, len(unique))
	for path := range unique {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}

func listDirectory(dir string, opts DiscoverOptions, logger zerolog.Logger) []string {
	var files []string

	keep := func(path string, entry fs.DirEntry) {
		if !entry.Type().IsRegular() {
			return
		}

		if opts.Strict && !HasPDFExtension(path) {
			return
		}

		files = append(files, path)
	}

	if !opts.Recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn().Err(err).Str("directory", dir).Msg("Failed to list directory")
			return nil
		}

		for _, entry := range entries {
			keep(filepath.Join(dir, entry.Name()), entry)
		}

		return files
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		keep(path, entry)

		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("directory", dir).Msg("Failed to walk directory")
	}

	return files
}

// HasPDFExtension reports whether path ends in .pdf, case-insensitively
func HasPDFExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return strings.EqualFold(ext, PDFExtension)
}

func addAbs(unique map[string]struct{}, path string, logger zerolog.Logger) {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("Cannot resolve absolute path")
		return
	}

	unique[abs] = struct{}{}
}
