package markup

import "testing"

func TestNormalizeEmphasisAndInlineCode(t *testing.T) {
	got := Normalize("**bold** and _italic_ and `code`")
	if got != "bold and italic and code" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeCases(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "front matter and heading",
			in:   "---\ntitle: Hello\n---\n# Heading\n\nSome text here.",
			want: "Heading\n\nSome text here.",
		},
		{
			name: "fenced code",
			in:   "Intro text.\n\n```go\nfmt.Println(1)\n```\n\nAfter code.",
			want: "Intro text.\n\nAfter code.",
		},
		{
			name: "images and links",
			in:   "See ![logo](img.png) and [the docs](https://x.y) now.",
			want: "See  and the docs now.",
		},
		{
			name: "html",
			in:   "<div>Inside <b>tags</b></div>",
			want: "Inside tags",
		},
		{
			name: "quotes rules and lists",
			in:   "> quoted line\n\n---\n\n- item one\n* item two\n+ item three\n1. first\n22. second",
			want: "quoted line\nitem one\nitem two\nitem three\nfirst\nsecond",
		},
		{
			name: "table",
			in:   "| a | b |\n|---|:-:|\n| c | d |",
			want: "a   b  \n\n  c   d",
		},
		{
			name: "newline collapse",
			in:   "one\n\n\n\n\ntwo",
			want: "one\n\ntwo",
		},
		{
			name: "setext underline",
			in:   "text\n---\nmore",
			want: "text\n\nmore",
		},
		{
			name: "triple emphasis",
			in:   "___bold italic___ and ***strong***",
			want: "bold italic and strong",
		},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeFrontMatterOnlyAtStart(t *testing.T) {
	in := "Intro.\n---\nkey: value\n---\nBody."
	got := Normalize(in)
	if got != "Intro.\n\nkey: value\n\nBody." {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeIdempotentOnPlainText(t *testing.T) {
	plain := "This is plain prose. It has two sentences.\n\nA second paragraph follows."
	once := Normalize(plain)
	if once != plain {
		t.Fatalf("expected plain text unchanged, got %q", once)
	}
	if twice := Normalize(once); twice != once {
		t.Fatalf("expected idempotent normalize, got %q", twice)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize("   \n\n  "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestNormalizeUnicodeMarkers(t *testing.T) {
	in := "#\u00a0Title\n\u00a0- item one\n\u0661\u0662. Arabic digits item\n>\u3000quote\n\x1c"
	want := "Title\nitem one\nArabic digits item\nquote"
	if got := Normalize(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
