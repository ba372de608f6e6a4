package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFiles            = errors.New("no markdown files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath string
	// OutputBase is the output path without extension; each format
	// appends its own.
	OutputBase string
	// Explicit is set when the user named the output file, which then
	// takes precedence over title-based naming.
	Explicit bool
}

// OutputPath returns the destination for format f.
func (f FileToConvert) OutputPath(format mdexport.Format) string {
	return f.OutputBase + format.Extension()
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		base, explicit := resolveOutputBase(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputBase: base, Explicit: explicit}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		base, _ := resolveOutputBase(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputBase: base})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	return files, nil
}

// resolveOutputBase determines the extension-less output path for a
// markdown file. An outputDir ending in a known document extension names
// the output file directly (single-file input only).
func resolveOutputBase(inputPath, outputDir, baseInputDir string) (base string, explicit bool) {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), stem), false
	}

	if baseInputDir == "" {
		if ext := filepath.Ext(outputDir); ext != "" {
			if _, err := mdexport.ParseFormat(ext); err == nil {
				return strings.TrimSuffix(outputDir, ext), true
			}
		}
		return filepath.Join(outputDir, stem), false
	}

	relPath, err := filepath.Rel(baseInputDir, inputPath)
	if err != nil {
		return filepath.Join(outputDir, stem), false
	}
	return filepath.Join(outputDir, filepath.Dir(relPath), stem), false
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdexport.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdexport.MaxWorkers)
	}
	return nil
}
