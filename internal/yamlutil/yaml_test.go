package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdexport/internal/yamlutil"
)

type pageSection struct {
	Size   string  `yaml:"size"`
	Margin float64 `yaml:"margin"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		strict  bool
		want    pageSection
		wantErr error
	}{
		{name: "known fields", data: []byte("size: a4\nmargin: 0.75"), dest: &pageSection{}, want: pageSection{Size: "a4", Margin: 0.75}},
		{name: "unknown field ignored", data: []byte("size: legal\ncolor: red"), dest: &pageSection{}, want: pageSection{Size: "legal"}},
		{name: "nil data", data: nil, dest: &pageSection{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("size: a4"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "strict known fields", data: []byte("size: letter"), dest: &pageSection{}, strict: true, want: pageSection{Size: "letter"}},
		{name: "strict empty data", data: []byte{}, dest: &pageSection{}, strict: true, wantErr: yamlutil.ErrNilData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err error
			if tt.strict {
				err = yamlutil.UnmarshalStrict(tt.data, tt.dest)
			} else {
				err = yamlutil.Unmarshal(tt.data, tt.dest)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got := *tt.dest.(*pageSection); got != tt.want {
				t.Errorf("decoded = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalStrict_UnknownField(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("size: a4\nunknown_field: value"), &pageSection{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests.

func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	defer func() { yamlutil.MaxInputSize = original }()

	yamlutil.MaxInputSize = 50
	data := make([]byte, 100)

	err := yamlutil.Unmarshal(data, &pageSection{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Unmarshal() error = %v, want %v", err, yamlutil.ErrInputTooLarge)
	}
	if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
		t.Errorf("error should name both sizes, got: %s", msg)
	}

	err = yamlutil.UnmarshalStrict(data, &pageSection{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want %v", err, yamlutil.ErrInputTooLarge)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       string
		wantFront string
		wantBody  string
		wantOK    bool
	}{
		{
			name:      "front matter",
			doc:       "---\ntitle: 発明\n---\n# Body\n",
			wantFront: "title: 発明",
			wantBody:  "# Body\n",
			wantOK:    true,
		},
		{
			name:      "crlf fences",
			doc:       "---\r\ntitle: x\r\n---\r\nbody",
			wantFront: "title: x\r",
			wantBody:  "body",
			wantOK:    true,
		},
		{
			name:      "byte order mark",
			doc:       "\ufeff---\ntitle: x\n---\nbody",
			wantFront: "title: x",
			wantBody:  "body",
			wantOK:    true,
		},
		{
			name:      "closing fence at end of input",
			doc:       "---\ntitle: x\n---",
			wantFront: "title: x",
			wantBody:  "",
			wantOK:    true,
		},
		{
			name:     "empty block",
			doc:      "---\n---\nbody",
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "no fence",
			doc:      "# Title\n---\n",
			wantBody: "# Title\n---\n",
		},
		{
			name:     "unclosed block",
			doc:      "---\ntitle: x\nbody",
			wantBody: "---\ntitle: x\nbody",
		},
		{
			name:     "fence alone",
			doc:      "---",
			wantBody: "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			front, body, ok := yamlutil.SplitFrontMatter(tt.doc)
			if front != tt.wantFront || body != tt.wantBody || ok != tt.wantOK {
				t.Errorf("SplitFrontMatter(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.doc, front, body, ok, tt.wantFront, tt.wantBody, tt.wantOK)
			}
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("title extracted", func(t *testing.T) {
		t.Parallel()

		meta, body, err := yamlutil.ParseFrontMatter("---\ntitle: 特許\nauthor: x\n---\ntext")
		if err != nil {
			t.Fatalf("ParseFrontMatter() error = %v", err)
		}
		if meta.Title != "特許" {
			t.Errorf("Title = %q, want %q", meta.Title, "特許")
		}
		if body != "text" {
			t.Errorf("body = %q, want %q", body, "text")
		}
	})

	t.Run("no front matter", func(t *testing.T) {
		t.Parallel()

		meta, body, err := yamlutil.ParseFrontMatter("plain")
		if err != nil || meta.Title != "" || body != "plain" {
			t.Errorf("ParseFrontMatter(plain) = (%+v, %q, %v)", meta, body, err)
		}
	})

	t.Run("empty block", func(t *testing.T) {
		t.Parallel()

		_, body, err := yamlutil.ParseFrontMatter("---\n\n---\ntext")
		if err != nil || body != "text" {
			t.Errorf("ParseFrontMatter() = (%q, %v), want (\"text\", nil)", body, err)
		}
	})

	t.Run("invalid yaml keeps document", func(t *testing.T) {
		t.Parallel()

		doc := "---\ntitle: [unclosed\n---\ntext"
		_, body, err := yamlutil.ParseFrontMatter(doc)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if body != doc {
			t.Errorf("body = %q, want whole document", body)
		}
	})
}
