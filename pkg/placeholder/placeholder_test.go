package placeholder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ahpgen/pkg/placeholder"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		subs []placeholder.Substitution
		want string
	}{
		{
			name: "comparison choices",
			doc:  "{CHOICE1} vs {CHOICE2}",
			subs: []placeholder.Substitution{
				placeholder.With(placeholder.TokenChoice1, "Cracow University of Technology"),
				placeholder.With(placeholder.TokenChoice2, "Is better"),
			},
			want: "Cracow University of Technology vs Is better",
		},
		{
			name: "every occurrence",
			doc:  "{CHOICES}|{CHOICES}|{CHOICES}",
			subs: []placeholder.Substitution{placeholder.With(placeholder.TokenChoices, "x")},
			want: "x|x|x",
		},
		{
			name: "value is not rescanned",
			doc:  "{CHOICE1} vs {CHOICE2}",
			subs: []placeholder.Substitution{
				placeholder.With(placeholder.TokenChoice1, "{CHOICE2}"),
				placeholder.With(placeholder.TokenChoice2, "second"),
			},
			want: "{CHOICE2} vs second",
		},
		{
			name: "first listed wins at same offset",
			doc:  "{A}{AB}",
			subs: []placeholder.Substitution{
				placeholder.With("{A}", "1"),
				placeholder.With("{A", "2"),
			},
			want: "12B}",
		},
		{
			name: "repeated token keeps first value",
			doc:  "{CHOICE1}",
			subs: []placeholder.Substitution{
				placeholder.With(placeholder.TokenChoice1, "first"),
				placeholder.With(placeholder.TokenChoice1, "second"),
			},
			want: "first",
		},
		{
			name: "empty token ignored",
			doc:  "plain {CHOICE1}",
			subs: []placeholder.Substitution{placeholder.With("", "boom")},
			want: "plain {CHOICE1}",
		},
		{
			name: "no substitutions",
			doc:  "<p>{CHOICES}</p>",
			want: "<p>{CHOICES}</p>",
		},
		{
			name: "empty value removes token",
			doc:  "<section>{CHOICES}</section>",
			subs: []placeholder.Substitution{placeholder.With(placeholder.TokenChoices, "")},
			want: "<section></section>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := placeholder.Replace(tt.doc, tt.subs...)
			if got != tt.want {
				t.Fatalf("replace mismatch\nwant: %q\n got: %q", tt.want, got)
			}
		})
	}
}

func TestReplace_LeavesNoTokensAndIsIdempotent(t *testing.T) {
	subs := []placeholder.Substitution{
		placeholder.With(placeholder.TokenChoice1, "Alpha"),
		placeholder.With(placeholder.TokenChoice2, "Beta"),
		placeholder.With(placeholder.TokenChoices, "Gamma"),
	}
	doc := "<h1>{CHOICE1}</h1>{CHOICES}<p>{CHOICE2} and {CHOICE1}</p>"

	once := placeholder.Replace(doc, subs...)
	if remaining := placeholder.Remaining(once, placeholder.TokenChoice1, placeholder.TokenChoice2, placeholder.TokenChoices); len(remaining) != 0 {
		t.Fatalf("expected no tokens left, got %v", remaining)
	}

	twice := placeholder.Replace(once, subs...)
	if twice != once {
		t.Fatalf("second pass changed output\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func TestRemainingAndCount(t *testing.T) {
	doc := "{CHOICE1} {CHOICES} {CHOICES}"

	got := placeholder.Remaining(doc, placeholder.TokenChoices, placeholder.TokenChoice2, placeholder.TokenChoice1)
	want := []placeholder.Token{placeholder.TokenChoices, placeholder.TokenChoice1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("remaining mismatch (-want +got):\n%s", diff)
	}

	if n := placeholder.Count(doc, placeholder.TokenChoices); n != 2 {
		t.Fatalf("expected 2 occurrences, got %d", n)
	}
	if n := placeholder.Count(doc, ""); n != 0 {
		t.Fatalf("empty token should count 0, got %d", n)
	}
}

func TestScan(t *testing.T) {
	doc := `<style>{THEME_STYLE}</style><p>{CHOICES}</p>{lower}{CHOICES}{X_1}{ not }`

	got := placeholder.Scan(doc)
	want := []placeholder.Token{"{THEME_STYLE}", "{CHOICES}", "{X_1}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scan mismatch (-want +got):\n%s", diff)
	}

	if got := placeholder.Scan("nothing here"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
