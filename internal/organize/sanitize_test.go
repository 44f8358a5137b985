package organize

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"slash replaced", "AC/DC", "AC_DC"},
		{"backslash replaced", `a\b`, "a_b"},
		{"windows reserved chars", `a<b>c:d"e|f?g*h`, "a_b_c_d_e_f_g_h"},
		{"control chars", "a\x00b\x1fc", "a_b_c"},
		{"trailing period", "Trailing.", "Trailing"},
		{"multiple trailing periods", "Dots...", "Dots"},
		{"whitespace only", "   ", "Unknown"},
		{"empty", "", "Unknown"},
		{"surrounding whitespace", "  Name  ", "Name"},
		{"interior dots kept", "St. Vincent", "St. Vincent"},
		{"already clean", "Pink Floyd", "Pink Floyd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeName_NeverProducesSeparator(t *testing.T) {
	inputs := []string{"AC/DC", "a/b/c", `x\y`, "///"}
	for _, in := range inputs {
		got := SanitizeName(in)
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("SanitizeName(%q) = %q still contains a path separator", in, got)
		}
	}
}

func TestCleanAlbumDirName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Album (2004)", "Album"},
		{"Album [FLAC]", "Album"},
		{"Album (Remastered) [FLAC]", "Album"},
		{"Album [FLAC] (2004) ", "Album"},
		{"Album", "Album"},
		{"(Untitled)", ""},
		{"Album (feat. X) Tour", "Album (feat. X) Tour"},
	}

	for _, tt := range tests {
		if got := cleanAlbumDirName(tt.input); got != tt.want {
			t.Errorf("cleanAlbumDirName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
