package runtime

import (
	"testing"
)

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"acme/foo", "docker.io/acme/foo:latest"},
		{"acme/foo:v1", "docker.io/acme/foo:v1"},
		{"alpine", "docker.io/library/alpine:latest"},
		{"ghcr.io/acme/foo", "ghcr.io/acme/foo:latest"},
		{"registry.example.com:5000/foo:dev", "registry.example.com:5000/foo:dev"},
	}

	for _, tt := range tests {
		got, err := normalizeRef(tt.in)
		if err != nil {
			t.Fatalf("normalizeRef(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("normalizeRef(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRefInvalid(t *testing.T) {
	if _, err := normalizeRef("ACME//foo::"); err == nil {
		t.Fatal("normalizeRef accepted an invalid reference")
	}
	if _, err := normalizeRef(""); err == nil {
		t.Fatal("normalizeRef accepted an empty reference")
	}
}

func TestParsePlatform(t *testing.T) {
	p, err := parsePlatform("linux/amd64")
	if err != nil {
		t.Fatalf("parsePlatform returned error: %v", err)
	}
	if p.OS != "linux" || p.Architecture != "amd64" {
		t.Fatalf("parsePlatform = %s/%s, want linux/amd64", p.OS, p.Architecture)
	}

	if _, err := parsePlatform("not a platform"); err == nil {
		t.Fatal("parsePlatform accepted garbage")
	}
}
