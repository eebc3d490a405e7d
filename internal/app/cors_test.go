package app

import "testing"

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"app.drink365.tw", "*.example.com"}

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"exact host", "https://app.drink365.tw", true},
		{"exact host wrong scheme still matches host", "http://app.drink365.tw", true},
		{"different host", "https://evil.tw", false},
		{"wildcard subdomain", "https://api.example.com", true},
		{"wildcard nested subdomain", "https://a.b.example.com", true},
		{"wildcard apex", "https://example.com", true},
		{"wildcard must not match suffix smush", "https://badexample.com", false},
		{"host with port is not the bare host", "https://app.drink365.tw:8443", false},
		{"empty origin", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := originAllowed(patterns, tc.origin); got != tc.want {
				t.Fatalf("originAllowed(%q) = %v, expected %v", tc.origin, got, tc.want)
			}
		})
	}
}

func TestOriginAllowedExactWithPort(t *testing.T) {
	if !originAllowed([]string{"localhost:3000"}, "http://localhost:3000") {
		t.Fatal("exact host:port pattern must match")
	}
	if originAllowed([]string{"localhost:3000"}, "http://localhost:4000") {
		t.Fatal("a different port must not match an exact pattern")
	}
}
