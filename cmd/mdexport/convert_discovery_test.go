package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-mdexport"
)

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, filepath.Join(dir, "draft.md"), "# x")

		files, err := discoverFiles(in, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		if got, want := files[0].OutputPath(mdexport.FormatPDF), filepath.Join(dir, "draft.pdf"); got != want {
			t.Errorf("OutputPath(pdf) = %q, want %q", got, want)
		}
		if files[0].Explicit {
			t.Error("Explicit = true, want false")
		}
	})

	t.Run("single file with explicit output name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, filepath.Join(dir, "draft.md"), "# x")
		out := filepath.Join(dir, "out", "claims.docx")

		files, err := discoverFiles(in, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if !files[0].Explicit {
			t.Error("Explicit = false, want true")
		}
		if got, want := files[0].OutputPath(mdexport.FormatPDF), filepath.Join(dir, "out", "claims.pdf"); got != want {
			t.Errorf("OutputPath(pdf) = %q, want %q", got, want)
		}
	})

	t.Run("directory keeps relative layout", func(t *testing.T) {
		t.Parallel()

		in := t.TempDir()
		writeFile(t, filepath.Join(in, "a.md"), "a")
		writeFile(t, filepath.Join(in, "sub", "b.markdown"), "b")
		writeFile(t, filepath.Join(in, "notes.txt"), "skip")
		out := t.TempDir()

		files, err := discoverFiles(in, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		var got []string
		for _, f := range files {
			got = append(got, f.OutputPath(mdexport.FormatDOCX))
		}
		want := []string{filepath.Join(out, "a.docx"), filepath.Join(out, "sub", "b.docx")}
		if !slices.Equal(got, want) {
			t.Errorf("outputs = %v, want %v", got, want)
		}
	})

	t.Run("directory without markdown", func(t *testing.T) {
		t.Parallel()

		in := t.TempDir()
		writeFile(t, filepath.Join(in, "notes.txt"), "skip")

		_, err := discoverFiles(in, "")
		if !errors.Is(err, ErrNoFiles) {
			t.Errorf("error = %v, want %v", err, ErrNoFiles)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, filepath.Join(t.TempDir(), "draft.txt"), "x")

		_, err := discoverFiles(in, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want %v", err, ErrInvalidExtension)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "missing.md"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want %v", err, os.ErrNotExist)
		}
	})
}

func TestResolveOutputBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
		wantExplicit bool
	}{
		{
			name:      "no output dir",
			inputPath: filepath.Join("docs", "draft.md"),
			want:      filepath.Join("docs", "draft"),
		},
		{
			name:      "output dir",
			inputPath: filepath.Join("docs", "draft.md"),
			outputDir: "out",
			want:      filepath.Join("out", "draft"),
		},
		{
			name:         "explicit pdf name",
			inputPath:    "draft.md",
			outputDir:    filepath.Join("out", "final.pdf"),
			want:         filepath.Join("out", "final"),
			wantExplicit: true,
		},
		{
			name:      "unknown extension is a directory",
			inputPath: "draft.md",
			outputDir: "out.v2",
			want:      filepath.Join("out.v2", "draft"),
		},
		{
			name:         "directory input ignores document extension",
			inputPath:    filepath.Join("docs", "sub", "a.md"),
			outputDir:    "build.pdf",
			baseInputDir: "docs",
			want:         filepath.Join("build.pdf", "sub", "a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, explicit := resolveOutputBase(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.want || explicit != tt.wantExplicit {
				t.Errorf("resolveOutputBase() = (%q, %v), want (%q, %v)", got, explicit, tt.want, tt.wantExplicit)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{mdexport.MaxWorkers, false},
		{-1, true},
		{mdexport.MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}
