package inline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-redmark/internal/inline"
)

type (
	T  = inline.Text
	B  = inline.Bold
	I  = inline.Italic
	C  = inline.Code
	M  = inline.Math
	L  = inline.Link
	Im = inline.Image
)

// ---------------------------------------------------------------------------
// TestParse - Construct recognition and precedence
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []inline.Span
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "plain text is one node",
			in:   "just some words, nothing else.",
			want: []inline.Span{T{"just some words, nothing else."}},
		},
		{
			name: "bold containing italic",
			in:   "**bold *and italic* end**",
			want: []inline.Span{B{[]inline.Span{T{"bold "}, I{[]inline.Span{T{"and italic"}}}, T{" end"}}}},
		},
		{
			name: "image before link",
			in:   "see ![a cat](cat.png) and [docs](https://x.dev)",
			want: []inline.Span{
				T{"see "}, Im{Alt: "a cat", URL: "cat.png"},
				T{" and "}, L{Text: "docs", URL: "https://x.dev"},
			},
		},
		{
			name: "image with empty alt",
			in:   "![](pic.jpg)",
			want: []inline.Span{Im{Alt: "", URL: "pic.jpg"}},
		},
		{
			name: "link with empty label stays literal",
			in:   "[](x)",
			want: []inline.Span{T{"[](x)"}},
		},
		{
			name: "link with empty url stays literal",
			in:   "[label]()",
			want: []inline.Span{T{"[label]()"}},
		},
		{
			name: "emphasis inside link label is not parsed",
			in:   "[**not bold**](u)",
			want: []inline.Span{L{Text: "**not bold**", URL: "u"}},
		},
		{
			name: "math keeps raw interior",
			in:   "area $\\pi r^2$ done",
			want: []inline.Span{T{"area "}, M{"\\pi r^2"}, T{" done"}},
		},
		{
			name: "code shields emphasis",
			in:   "run `a*b*c` now",
			want: []inline.Span{T{"run "}, C{"a*b*c"}, T{" now"}},
		},
		{
			name: "math beats code",
			in:   "$a`b$`",
			want: []inline.Span{M{"a`b"}, T{"`"}},
		},
		{
			name: "empty delimiters are literal",
			in:   "$$ and `` and ****",
			want: []inline.Span{T{"$$ and `` and ****"}},
		},
		{
			name: "unclosed constructs are literal",
			in:   "a *b and `d and [e](",
			want: []inline.Span{T{"a *b and `d and [e]("}},
		},
		{
			name: "code claimed before italic delimiters",
			in:   "*use `go vet`*",
			want: []inline.Span{T{"*use "}, C{"go vet"}, T{"*"}},
		},
		{
			name: "link claimed before bold delimiters",
			in:   "**[x](y)**",
			want: []inline.Span{T{"**"}, L{Text: "x", URL: "y"}, T{"**"}},
		},
		{
			name: "unmatched star before italic",
			in:   "a *b and **c",
			want: []inline.Span{T{"a "}, I{[]inline.Span{T{"b and "}}}, T{"*c"}},
		},
		{
			name: "several italics",
			in:   "*a* b *c*",
			want: []inline.Span{I{[]inline.Span{T{"a"}}}, T{" b "}, I{[]inline.Span{T{"c"}}}},
		},
		{
			name: "image not split by link rule",
			in:   "![x](y)",
			want: []inline.Span{Im{Alt: "x", URL: "y"}},
		},
		{
			name: "multibyte text",
			in:   "café **crème** brûlée",
			want: []inline.Span{T{"café "}, B{[]inline.Span{T{"crème"}}}, T{" brûlée"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := inline.Parse(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse_NoAdjacentText - Literal runs are merged
// ---------------------------------------------------------------------------

func TestParse_NoAdjacentText(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a * b ** c",
		"[x] (y) ![z]",
		"$ ` * ** $$",
		"**a** plain *b* plain `c` plain",
	}

	for _, in := range inputs {
		spans := inline.Parse(in)
		for i := 1; i < len(spans); i++ {
			_, prev := spans[i-1].(inline.Text)
			_, cur := spans[i].(inline.Text)
			if prev && cur {
				t.Errorf("Parse(%q) has adjacent Text nodes at %d", in, i)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrecedence - Rule order
// ---------------------------------------------------------------------------

func TestPrecedence(t *testing.T) {
	t.Parallel()

	want := []inline.Rule{
		inline.RuleImage, inline.RuleLink, inline.RuleMath,
		inline.RuleCode, inline.RuleBold, inline.RuleItalic,
	}
	if diff := cmp.Diff(want, inline.Precedence()); diff != "" {
		t.Errorf("Precedence() mismatch (-want +got):\n%s", diff)
	}
	if inline.RuleBold.String() != "bold" {
		t.Errorf("RuleBold.String() = %q, want %q", inline.RuleBold.String(), "bold")
	}
}

// ---------------------------------------------------------------------------
// TestPlainText - Flattening for anchors and alt text
// ---------------------------------------------------------------------------

func TestPlainText(t *testing.T) {
	t.Parallel()

	spans := inline.Parse("**Go** and *more* [docs](u) with `x` and $y$ ![pic](p)")
	want := "Go and more docs with x and y pic"
	if got := inline.PlainText(spans); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// BenchmarkParse
// ---------------------------------------------------------------------------

func BenchmarkParse(b *testing.B) {
	line := "Some **bold text with *italic* inside** and a [link](https://example.com), " +
		"an image ![alt](img.png), inline `code` and $e^{i\\pi}+1=0$."
	for b.Loop() {
		inline.Parse(line)
	}
}
