package utils

import (
	"testing"
)

func TestLookupToolFallsBackToBareName(t *testing.T) {
	ResetToolCache()
	t.Cleanup(ResetToolCache)

	const name = "graphstack-no-such-tool"
	if got := LookupTool(name); got != name {
		t.Fatalf("unresolvable tools must fall back to the bare name, got %q", got)
	}
}

func TestLookupToolCachesResolution(t *testing.T) {
	ResetToolCache()
	t.Cleanup(ResetToolCache)

	// "sh" resolves through PATH on every platform the tests run on.
	first := LookupTool("sh")
	second := LookupTool("sh")
	if first != second {
		t.Fatalf("resolution must be stable, got %q then %q", first, second)
	}
	if first == "sh" {
		t.Skip("PATH lookup unavailable in this environment")
	}

	toolPathMu.Lock()
	_, cached := toolPathCache["sh"]
	toolPathMu.Unlock()
	if !cached {
		t.Fatal("a successful resolution must be cached")
	}
}

func TestLookupToolDoesNotCacheFailures(t *testing.T) {
	ResetToolCache()
	t.Cleanup(ResetToolCache)

	const name = "graphstack-no-such-tool"
	LookupTool(name)

	toolPathMu.Lock()
	_, cached := toolPathCache[name]
	toolPathMu.Unlock()
	if cached {
		t.Fatal("failed resolutions must stay uncached so later installs are found")
	}
}

func TestQuotePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/usr/bin/docker", "/usr/bin/docker"},
		{"docker", "docker"},
		{
			`C:\Program Files\Docker\Docker\resources\bin\docker.exe`,
			`"C:\Program Files\Docker\Docker\resources\bin\docker.exe"`,
		},
		{
			"/home/first last/.graphstack/compose.yaml",
			`"/home/first last/.graphstack/compose.yaml"`,
		},
	}
	for _, tc := range cases {
		if got := QuotePath(tc.in); got != tc.want {
			t.Errorf("QuotePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
