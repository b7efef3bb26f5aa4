package textutil

import "testing"

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"plain", "The Beatles", "Revolver", "the beatles||revolver"},
		{"case and whitespace", " the  beatles ", "REVOLVER", "the beatles||revolver"},
		{"empty title", "Chet Atkins", "", "chet atkins||"},
		{"both empty", "", "", "||"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupKey(tt.artist, tt.title); got != tt.want {
				t.Errorf("GroupKey(%q, %q) = %q, want %q", tt.artist, tt.title, got, tt.want)
			}
		})
	}
}

func TestGroupKeyVariantsCollapse(t *testing.T) {
	a := GroupKey("The Beatles", "Revolver")
	b := GroupKey(" the beatles ", "REVOLVER")
	if a != b {
		t.Errorf("variant keys differ: %q vs %q", a, b)
	}
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Folk, World, & Country", "folk_world_country"},
		{"Folk/World/Country", "folk_world_country"},
		{"  folk  world   country  ", "folk_world_country"},
		{"Jazz", "jazz"},
		{"R&B", "r_b"},
		{"", ""},
		{"&&&", ""},
	}

	for _, tt := range tests {
		if got := NormalizeToken(tt.in); got != tt.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Folk, World, & Country", "Folk__World____Country"},
		{"Pop", "Pop"},
		{"Folk_World", "Folk_World"},
		{"", "Unknown"},
		{"???", "Unknown"},
	}

	for _, tt := range tests {
		if got := SafeSlug(tt.in); got != tt.want {
			t.Errorf("SafeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1961", 1961, true},
		{"1961.0", 1961, true},
		{" 1975 ", 1975, true},
		{"", 0, false},
		{"197", 0, false},
		{"2150", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseYear(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"15", 15, true},
		{"$22.60", 22.6, true},
		{" 8 USD ", 8, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"", 0, false},
		{"free", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseMoney(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMoney(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
