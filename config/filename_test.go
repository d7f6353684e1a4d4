package config

import (
	"runtime"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"button", "button"},
		{"Main Button", "Main Button"},
		{"..hidden", "hidden"},
		{"a/b", "ab"},
		{"a:b", "ab"},
		{"tab\there", "tabhere"},
		{"...", "_stylesheet_"},
		{"", "_stylesheet_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanFileName_Reserved(t *testing.T) {
	want := map[string]string{"nul": "nul", "com1": "com1", "com10": "com10", "aux.min": "aux.min"}
	if runtime.GOOS == "windows" {
		want["nul"], want["com1"], want["aux.min"] = "_nul", "_com1", "_aux.min"
	}
	for in, w := range want {
		if got := CleanFileName(in); got != w {
			t.Errorf("CleanFileName(%q) = %q, want %q", in, got, w)
		}
	}
}
