package utils

import "testing"

func TestResolveContentType(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	tests := []struct {
		name     string
		declared string
		data     []byte
		want     string
	}{
		{"declared wins", "image/webp", []byte("anything"), "image/webp"},
		{"sniffed from payload", "", pngHeader, "image/png"},
		{"blank declared is ignored", "   ", pngHeader, "image/png"},
		{"empty payload", "", nil, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveContentType(tt.declared, tt.data); got != tt.want {
				t.Errorf("ResolveContentType(%q, ...) = %q, want %q", tt.declared, got, tt.want)
			}
		})
	}
}

func TestMakeDataURL(t *testing.T) {
	got := MakeDataURL("image/png", []byte{1, 2, 3})
	want := "data:image/png;base64,AQID"
	if got != want {
		t.Errorf("MakeDataURL() = %q, want %q", got, want)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "# Title\n\nBody", "# Title\n\nBody"},
		{"markdown fence", "```markdown\n# Title\n```", "# Title"},
		{"bare fence", "```\ntext\n```", "text"},
		{"json fence", "```json\n{}\n```", "{}"},
		{"surrounding whitespace", "  \n```markdown\n# T\n```\n  ", "# T"},
		{"inner fence kept", "before\n```\ncode\n```\nafter", "before\n```\ncode\n```\nafter"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
