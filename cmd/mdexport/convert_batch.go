package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/hints"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// DocumentExporter is the interface for the export service.
type DocumentExporter interface {
	ExportAll(ctx context.Context, in mdexport.Input, formats ...mdexport.Format) ([]*mdexport.Document, error)
}

// Compile-time interface implementation check.
var _ DocumentExporter = (*mdexport.Exporter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	formats       []mdexport.Format
	title         string // overrides front matter when set
	nameFromTitle bool
	workers       int
}

// OutputFile is one document written for an input.
type OutputFile struct {
	Path string
	Size int
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []OutputFile
	Warning   string
	Err       error
	Duration  time.Duration
}

// convertBatch processes files concurrently. The exporter is shared by all
// workers.
func convertBatch(ctx context.Context, exp DocumentExporter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(params.workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, exp, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, exp DocumentExporter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	meta, body, err := yamlutil.ParseFrontMatter(string(content))
	if err != nil {
		result.Warning = err.Error()
	}
	title := params.title
	if title == "" {
		title = meta.Title
	}

	outDir := filepath.Dir(f.OutputBase)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	docs, err := exp.ExportAll(ctx, mdexport.Input{Title: title, Markdown: body}, params.formats...)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	for _, doc := range docs {
		path := outputPath(f, doc, params.nameFromTitle)
		if err := fileutil.WriteFileAtomic(path, doc.Data, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
		result.Outputs = append(result.Outputs, OutputFile{Path: path, Size: len(doc.Data)})
	}

	result.Duration = time.Since(start)
	return result
}

// outputPath places doc next to the other outputs for f. With nameFromTitle
// the file is named after the document rather than its source.
func outputPath(f FileToConvert, doc *mdexport.Document, nameFromTitle bool) string {
	if nameFromTitle && !f.Explicit {
		if name := fileutil.SafeFileName(doc.Name); name != "" {
			return filepath.Join(filepath.Dir(f.OutputBase), name)
		}
	}
	return f.OutputPath(doc.Format)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Warning != "" && !quiet {
			fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, r.Warning)
		}
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		for _, out := range r.Outputs {
			size := humanize.Bytes(uint64(out.Size))
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, out.Path, size, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s (%s)\n", out.Path, size)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
