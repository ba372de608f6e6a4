package pdf

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedWidth measures every rune as 10 units wide regardless of face.
func fixedWidth(text string, _ face) float64 {
	return float64(utf8.RuneCountInString(text)) * 10
}

func lineTexts(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text()
	}
	return out
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit float64
		words bool
		want  []string
	}{
		{"empty yields one line", "", 100, true, []string{""}},
		{"fits", "hello", 100, true, []string{"hello"}},
		{"breaks at spaces and hangs them", "aaa bbb ccc", 75, true, []string{"aaa bbb", "ccc"}},
		{"japanese breaks between ideographs", "あいうえおかきくけこ", 35, true, []string{"あいう", "えおか", "きくけ", "こ"}},
		{"long word splits at graphemes", "abcdefghij", 35, true, []string{"abc", "def", "ghi", "j"}},
		{"code line fits", "abc def", 1000, false, []string{"abc def"}},
		{"code line hard wraps", "abc def", 35, false, []string{"abc", " de", "f"}},
		{"leading indentation kept", "    x", 100, false, []string{"    x"}},
		{"narrower than one cluster", "ab", 5, true, []string{"a", "b"}},
	}

	w := wrapper{measure: fixedWidth}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lineTexts(w.wrap([]span{{text: tt.text}}, tt.limit, tt.words))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrap(%q, %v) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestWrap_LinesFitAndKeepContent(t *testing.T) {
	t.Parallel()

	texts := []string{
		"本明細書は、発明の技術分野、背景技術、課題を解決するための手段について記載する。",
		"The quick brown fox jumps over the lazy dog, then naps under a very old tree.",
		"混在するtextと日本語の文章がcorrectly wrapされること。",
	}
	w := wrapper{measure: fixedWidth}

	for _, text := range texts {
		lines := w.wrap([]span{{text: text}}, 120, true)
		if len(lines) < 2 {
			t.Errorf("%q: got %d lines, want several", text, len(lines))
		}
		var joined strings.Builder
		for _, l := range lines {
			if l.width > 120 {
				t.Errorf("%q: line %q is %v wide, limit 120", text, l.text(), l.width)
			}
			joined.WriteString(l.text())
		}
		// Only whitespace at the wrap points may be dropped.
		if strings.ReplaceAll(joined.String(), " ", "") != strings.ReplaceAll(text, " ", "") {
			t.Errorf("content changed:\n got %q\nwant %q", joined.String(), text)
		}
	}
}

func TestWrap_KeepsFacesAcrossBreaks(t *testing.T) {
	t.Parallel()

	w := wrapper{measure: fixedWidth}
	lines := w.wrap([]span{{text: "aaa ", face: faceRegular}, {text: "bbb", face: faceBold}}, 35, true)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := lines[1].spans; len(got) != 1 || got[0].face != faceBold || got[0].text != "bbb" {
		t.Errorf("second line spans = %+v, want one bold \"bbb\"", got)
	}
}

func TestWrap_DropsEmptySpans(t *testing.T) {
	t.Parallel()

	w := wrapper{measure: fixedWidth}
	lines := w.wrap([]span{{text: "a"}, {text: "", face: faceBold}, {text: "b"}}, 100, true)
	if len(lines) != 1 || lines[0].text() != "ab" {
		t.Fatalf("got %q, want one line \"ab\"", lineTexts(lines))
	}
	for _, s := range lines[0].spans {
		if s.text == "" {
			t.Errorf("empty span kept: %+v", lines[0].spans)
		}
	}
}

func TestWrap_NormalizesToNFC(t *testing.T) {
	t.Parallel()

	w := wrapper{measure: fixedWidth}
	// か + combining dakuten composes to が.
	lines := w.wrap([]span{{text: "\u304b\u3099"}}, 100, true)
	if got := lines[0].text(); got != "\u304c" {
		t.Errorf("got %q, want %q", got, "\u304c")
	}
}

func TestWrap_ReplacesRunesOutsideBasicPlane(t *testing.T) {
	t.Parallel()

	w := wrapper{measure: fixedWidth}
	lines := w.wrap([]span{{text: "特許 😀 です"}, {text: "\U00010000", face: faceMono}}, 1000, true)
	if got, want := lines[0].text(), "特許 \uFFFD です\uFFFD"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBreakPoints(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"a b c", "日本語の文章", "x", "  lead", "tab\tsep"} {
		for name, pts := range map[string][]int{
			"line breaking": breakPoints(text),
			"fallback":      fallbackBreaks(text),
		} {
			if len(pts) == 0 || pts[len(pts)-1] != len(text) {
				t.Errorf("%s(%q) = %v, want last point %d", name, text, pts, len(text))
			}
			for i := 1; i < len(pts); i++ {
				if pts[i] <= pts[i-1] {
					t.Errorf("%s(%q) = %v, not strictly increasing", name, text, pts)
				}
			}
			for _, p := range pts {
				if p < len(text) && !utf8.RuneStart(text[p]) {
					t.Errorf("%s(%q) breaks inside a rune at %d", name, text, p)
				}
			}
		}
	}
	if pts := breakPoints(""); pts != nil {
		t.Errorf("breakPoints(\"\") = %v, want nil", pts)
	}
}

func TestFallbackBreaks_WideAndSpace(t *testing.T) {
	t.Parallel()

	text := "ab 日本"
	got := fallbackBreaks(text)
	// after "ab ", after 日, after 本
	want := []int{3, 6, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallbackBreaks(%q) = %v, want %v", text, got, want)
	}
}

func TestSliceSpans(t *testing.T) {
	t.Parallel()

	spans := []span{{text: "abc"}, {text: "de", face: faceBold}, {text: "f"}}
	got := sliceSpans(spans, 2, 5)
	want := []span{{text: "c"}, {text: "de", face: faceBold}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sliceSpans = %+v, want %+v", got, want)
	}
}

func TestSplitTrailingSpace(t *testing.T) {
	t.Parallel()

	body, tail := splitTrailingSpace([]span{{text: "ab"}, {text: "c  ", face: faceBold}, {text: " "}})
	if joinSpans(body) != "abc" || joinSpans(tail) != "   " {
		t.Errorf("body %q tail %q, want \"abc\" and three spaces", joinSpans(body), joinSpans(tail))
	}
}

func BenchmarkWrap(b *testing.B) {
	w := wrapper{measure: fixedWidth}
	spans := []span{{text: strings.Repeat("本明細書は発明を記載する。 text words here ", 20)}}
	b.ReportAllocs()
	for b.Loop() {
		w.wrap(spans, 300, true)
	}
}
