package identity

import "testing"

func TestNormalizeAlias(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bob the Builder", "bob the builder"},
		{"  Bob   the  Builder ", "bob the builder"},
		{"CONTRACTOR10", "contractor10"},
		{"\tTabbed\tName\t", "tabbed name"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeAlias(tc.in); got != tc.want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Bob@Example.COM "); got != "bob@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}
