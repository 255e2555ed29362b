package chunking

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

func mustSplitter(t *testing.T, opts domain.SplitOptions) *Splitter {
	t.Helper()
	s, err := NewSplitter(opts)
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	return s
}

func TestSplitDegenerateInput(t *testing.T) {
	cases := []struct {
		name string
		text domain.Text
		trim bool
		want []string
	}{
		{name: "empty", text: domain.PresentText(""), want: []string{""}},
		{name: "spaces", text: domain.PresentText("   "), want: []string{"   "}},
		{name: "tab", text: domain.PresentText("\t"), want: []string{"\t"}},
		{name: "mixed blanks with trim", text: domain.PresentText(" \t \n"), trim: true, want: []string{" \t \n"}},
		{name: "absent", text: domain.AbsentText(), want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustSplitter(t, domain.SplitOptions{TrimSentence: tc.trim, MaxRowLength: 1, MaxRows: 1000})
			got := s.Split(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSplitWithTrim(t *testing.T) {
	cases := []struct {
		text      string
		maxLength int
		want      []string
	}{
		{text: "   abc  ", maxLength: 2, want: []string{"ab", "c"}},
		{text: "   abc  ", maxLength: 200, want: []string{"abc"}},
		{text: "   abc  ", maxLength: 4, want: []string{"abc"}},
		{text: "   abcd  ", maxLength: 3, want: []string{"abc", "d"}},
		{text: "   abc d  ", maxLength: 3, want: []string{"abc", " d"}},
		{text: "abc def", maxLength: 2, want: []string{"ab", "c ", "de", "f"}},
		{text: "abc def", maxLength: 4, want: []string{"abc ", "def"}},
		{text: "abc def", maxLength: 1, want: []string{"a", "b", "c", " ", "d", "e", "f"}},
		{text: "a b c d ", maxLength: 2, want: []string{"a ", "b ", "c ", "d"}},
		{text: " a b c d ", maxLength: 2, want: []string{"a ", "b ", "c ", "d"}},
		{text: "  a  b  c  d  ", maxLength: 2, want: []string{"a ", " b", "  ", "c ", " d"}},
		{text: "abcd", maxLength: 2, want: []string{"ab", "cd"}},
		{text: "A ¶¶ ", maxLength: 2, want: []string{"A ", "¶¶"}},
		{text: "A ¶\t¶ ", maxLength: 2, want: []string{"A ", "¶\t", "¶"}},
		{text: "abc", maxLength: 100, want: []string{"abc"}},
		{text: "abc def ghi", maxLength: 100, want: []string{"abc def ghi"}},
	}

	for _, tc := range cases {
		s := mustSplitter(t, domain.SplitOptions{TrimSentence: true, MaxRowLength: tc.maxLength, MaxRows: 1000})
		got := s.SplitString(tc.text)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("split(%q, %d): expected %q, got %q", tc.text, tc.maxLength, tc.want, got)
		}
	}
}

func TestSplitWithoutTrimKeepsEdgeWhitespace(t *testing.T) {
	cases := []struct {
		text      string
		maxLength int
		want      []string
	}{
		{text: "   abc  ", maxLength: 2, want: []string{"  ", " ", "ab", "c ", " "}},
		{text: "   abc  ", maxLength: 200, want: []string{"   abc  "}},
		{text: "   abc  ", maxLength: 4, want: []string{"   ", "abc ", " "}},
		{text: "   abcd  ", maxLength: 3, want: []string{"   ", "abc", "d  "}},
		{text: "   abc d  ", maxLength: 3, want: []string{"   ", "abc", " d ", " "}},
	}

	for _, tc := range cases {
		s := mustSplitter(t, domain.SplitOptions{MaxRowLength: tc.maxLength, MaxRows: 1000})
		got := s.SplitString(tc.text)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("split(%q, %d): expected %q, got %q", tc.text, tc.maxLength, tc.want, got)
		}
	}
}

func TestSplitRowBoundaryIsStrict(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 4, MaxRows: 10})

	got := s.SplitString("ab cd")
	want := []string{"ab ", "cd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got = s.SplitString("ab c")
	want = []string{"ab c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("row reaching the limit exactly must stay whole, got %q", got)
	}
}

func TestSplitOverflowsOntoLastRowAtCap(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{TrimSentence: true, MaxRowLength: 3, MaxRows: 2})

	res := s.SplitDetailed(domain.PresentText("AB CD E F "))
	want := []string{"AB ", "CD E F"}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Fatalf("expected %q, got %q", want, res.Rows)
	}
	if !res.Overflowed {
		t.Fatalf("expected overflow to be reported")
	}

	s = mustSplitter(t, domain.SplitOptions{TrimSentence: true, MaxRowLength: 3, MaxRows: 3})
	res = s.SplitDetailed(domain.PresentText("AB CD E F "))
	want = []string{"AB ", "CD ", "E F"}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Fatalf("expected %q, got %q", want, res.Rows)
	}
	if res.Overflowed {
		t.Fatalf("did not expect overflow")
	}
}

func TestSplitPadsToMaxRows(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 4, MaxRows: 4, FulfillEmptyRows: true})

	res := s.SplitDetailed(domain.PresentText("abc def"))
	want := []string{"abc ", "def", "", ""}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Fatalf("expected %q, got %q", want, res.Rows)
	}
	if res.Padded != 2 {
		t.Fatalf("expected 2 padding rows, got %d", res.Padded)
	}

	full := mustSplitter(t, domain.SplitOptions{MaxRowLength: 1, MaxRows: 2, FulfillEmptyRows: true})
	got := full.SplitString("abc")
	if !reflect.DeepEqual(got, []string{"a", "bc"}) {
		t.Fatalf("expected no padding once the cap is reached, got %q", got)
	}
}

func TestSplitNormalizesToNFC(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 1, MaxRows: 10})

	got := s.SplitString("e\u0301x")
	want := []string{"\u00e9", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitCountsCodePoints(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 5, MaxRows: 10})

	got := s.SplitString("Paweł Sroczyński")
	want := []string{"Paweł", " ", "Srocz", "yński"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitRoundTripAndRowBound(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"  leading\tand\ttrailing  \n",
		"wordwithoutanyseparatorsatallthatislong",
		"żółć gęślą jaźń 東京 タワー",
		"a\x00b\x01\x02c",
		"ab\xffcd \xfe\xfe x",
	}
	for _, text := range texts {
		for _, trim := range []bool{false, true} {
			for maxLength := 1; maxLength <= 8; maxLength++ {
				s := mustSplitter(t, domain.SplitOptions{TrimSentence: trim, MaxRowLength: maxLength, MaxRows: 1000})
				rows := s.SplitString(text)

				want := text
				if trim {
					want = strings.TrimFunc(want, isSpace)
				}
				if joined := strings.Join(rows, ""); joined != want {
					t.Fatalf("round trip of %q (trim=%v, max=%d): got %q", text, trim, maxLength, joined)
				}
				for i, r := range rows {
					if n := utf8.RuneCountInString(r); n > maxLength {
						t.Fatalf("row %d of %q exceeds %d code points: %q", i, text, maxLength, r)
					}
				}
			}
		}
	}
}

func TestSplitKeepsInvalidUTF8Bytes(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 100, MaxRows: 10})
	if got := s.SplitString("ab\xffcd"); !reflect.DeepEqual(got, []string{"ab\xffcd"}) {
		t.Fatalf("expected invalid byte to be kept, got %q", got)
	}

	s = mustSplitter(t, domain.SplitOptions{MaxRowLength: 2, MaxRows: 10})
	if got := s.SplitString("ab\xffcd"); !reflect.DeepEqual(got, []string{"ab", "\xffc", "d"}) {
		t.Fatalf("expected invalid byte to count as one code point, got %q", got)
	}
}

func TestSplitTrimKeepsNextLine(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{TrimSentence: true, MaxRowLength: 100, MaxRows: 10})

	if got := s.SplitString("\u0085abc"); !reflect.DeepEqual(got, []string{"\u0085abc"}) {
		t.Fatalf("expected NEL to survive trimming, got %q", got)
	}
	if got := s.SplitString("\u00a0\u2028abc\ufeff "); !reflect.DeepEqual(got, []string{"abc"}) {
		t.Fatalf("expected NBSP, LS and BOM to be trimmed, got %q", got)
	}
	if got := s.SplitString("\u0085"); !reflect.DeepEqual(got, []string{"\u0085"}) {
		t.Fatalf("expected lone NEL to be split as text, got %q", got)
	}
}

func TestSplitNeverExceedsRowCap(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{MaxRowLength: 2, MaxRows: 3})
	rows := s.SplitString("one two three four five")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(rows), rows)
	}
	if strings.Join(rows, "") != "one two three four five" {
		t.Fatalf("characters lost at the row cap: %q", rows)
	}
}

func TestNewSplitterRejectsNonPositiveBounds(t *testing.T) {
	cases := []domain.SplitOptions{
		{MaxRowLength: 0, MaxRows: 1},
		{MaxRowLength: -3, MaxRows: 1},
		{MaxRowLength: 1, MaxRows: 0},
	}
	for _, opts := range cases {
		_, err := NewSplitter(opts)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Fatalf("expected invalid config error for %+v, got %v", opts, err)
		}
	}

	if _, err := NewPositionalSplitter(3, 0); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error from positional constructor, got %v", err)
	}
}

func TestSplitterIsSafeForConcurrentUse(t *testing.T) {
	s := mustSplitter(t, domain.SplitOptions{TrimSentence: true, MaxRowLength: 4, MaxRows: 1000})
	want := []string{"abc ", "def"}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.SplitString("abc def"); !reflect.DeepEqual(got, want) {
				errs <- strings.Join(got, "|")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent split mismatch: %s", got)
	}
}

func TestDefaultOptions(t *testing.T) {
	want := domain.SplitOptions{MaxRowLength: 100, MaxRows: 10}
	if got := DefaultOptions(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if _, err := NewSplitter(DefaultOptions()); err != nil {
		t.Fatalf("default options must be valid: %v", err)
	}
}
