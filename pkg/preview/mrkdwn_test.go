package preview_test

import (
	"testing"

	"github.com/goliatone/go-blockkit/pkg/preview"
)

func TestMrkdwn(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "*hi*", "<strong>hi</strong>"},
		{"italic", "_hi_ there", "<em>hi</em> there"},
		{"snake case stays", "a_b_c", "a_b_c"},
		{"strike", "~gone~", "<del>gone</del>"},
		{"code", "run `make`", "run <code>make</code>"},
		{"mention", "<@U123|ana>", `<span class="bk-mention">ana</span>`},
		{"newline", "a\nb", "a<br>b"},
		{"escapes", "1 < 2 & 3", "1 &lt; 2 &amp; 3"},
		{"link", "<https://x.io/a?b=1|docs>", `<a href="https://x.io/a?b=1" rel="nofollow">docs</a>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := preview.Mrkdwn(tc.in); got != tc.want {
				t.Fatalf("Mrkdwn(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPlainTextIgnoresFormatting(t *testing.T) {
	if got := preview.PlainText("*not bold*"); got != "*not bold*" {
		t.Fatalf("unexpected %q", got)
	}
}
