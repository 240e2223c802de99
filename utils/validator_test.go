package utils

import "testing"

func TestCountWords(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"a quick brown fox", 4},
		{"line one\nline two\n\ttabbed", 5},
		{"  padded   with   runs  of spaces ", 5},
	}
	for _, tc := range cases {
		if got := CountWords(tc.body); got != tc.want {
			t.Fatalf("CountWords(%q) = %d, want %d", tc.body, got, tc.want)
		}
	}
}

func TestCountTags(t *testing.T) {
	cases := []struct {
		tags string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"economy", 1},
		{"economy,markets,fed", 3},
		{"economy, markets , fed", 3},
		{"economy,,fed,", 2},
		{",,,", 0},
	}
	for _, tc := range cases {
		if got := CountTags(tc.tags); got != tc.want {
			t.Fatalf("CountTags(%q) = %d, want %d", tc.tags, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"desk@example.org", "first.last+tag@news.co.uk"}
	invalid := []string{"", "not-an-email", "missing@tld", "@example.org"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Fatalf("short password must be rejected")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Fatalf("expected pass, got %q", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
}
