package genre

import (
	"fmt"
	"reflect"
	"testing"
)

func TestResolveBroad(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"empty", nil, ""},
		{"all blank", []string{"", "  "}, ""},
		{"single value untouched", []string{"Jazz"}, "Jazz"},
		{"single trimmed", []string{"  Rock  "}, "Rock"},
		{"pop dominates", []string{"Rock", "Pop"}, "Pop"},
		{"pop case insensitive", []string{"Electronic", "SYNTH-POP"}, "Pop"},
		{"folk plus country", []string{"Folk, World, & Country", "Country"}, "Country"},
		{"folk without country keeps first", []string{"Folk", "Rock"}, "Folk"},
		{"no priority match keeps first", []string{"Jazz", "Blues"}, "Jazz"},
		{"blanks dropped before priority", []string{"", "Funk / Soul"}, "Funk / Soul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBroad(tt.values); got != tt.want {
				t.Fatalf("ResolveBroad(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestResolveBroadString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Jazz", "Jazz"},
		{"  Rock  ", "Rock"},
		{"Pop Rock / Disco", "Pop"},
		{"Folk, World, & Country", "Country"},
		{"Folk/Country", "Country"},
		{"Funk / Soul", "Funk / Soul"},
		{"Stage & Screen", "Stage & Screen"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ResolveBroadString(tt.raw); got != tt.want {
				t.Fatalf("ResolveBroadString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsComposite(t *testing.T) {
	for _, label := range []string{"Folk, World, & Country", "Folk/World/Country", "folk world country"} {
		if !IsComposite(label) {
			t.Errorf("IsComposite(%q) = false", label)
		}
	}
	for _, label := range []string{"Country", "Folk", "Folk World"} {
		if IsComposite(label) {
			t.Errorf("IsComposite(%q) = true", label)
		}
	}
}

func TestApplyArtistMajority(t *testing.T) {
	entries := []Assignment{
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Hank", Broad: "Rock"},
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Eno", Broad: "Ambient"},
		{Artist: "", Broad: "Jazz"},
	}
	got := ApplyArtistMajority(entries)
	want := []Assignment{
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Eno", Broad: "Ambient"},
		{Artist: "", Broad: "Jazz"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("majority mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestApplyArtistMajorityTieBreak(t *testing.T) {
	// Equal counts: the genre seen first in source order wins.
	entries := []Assignment{
		{Artist: "Duo", Broad: "Blues"},
		{Artist: "Duo", Broad: "Jazz"},
	}
	got := ApplyArtistMajority(entries)
	for i, e := range got {
		if e.Broad != "Blues" {
			t.Fatalf("entry %d = %q, want Blues", i, e.Broad)
		}
	}
}

func TestApplyArtistMajorityIdempotent(t *testing.T) {
	entries := []Assignment{
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Hank", Broad: "Rock"},
		{Artist: "Hank", Broad: "Country"},
		{Artist: "Duo", Broad: "Blues"},
		{Artist: "Duo", Broad: "Jazz"},
	}
	once := ApplyArtistMajority(append([]Assignment(nil), entries...))
	twice := ApplyArtistMajority(append([]Assignment(nil), once...))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent:\n once %v\ntwice %v", once, twice)
	}
}

func TestSplitComposite(t *testing.T) {
	for n := 1; n <= 10; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b := NewBuckets()
			for i := 0; i < n; i++ {
				b.Add("Folk, World, & Country", fmt.Sprintf("cover-%d.jpg", i))
			}
			out := b.SplitComposite()
			fw := len(out.Covers(FolkWorldLabel))
			country := len(out.Covers(CountryLabel))
			wantFW := 2 * n / 3
			if wantFW < 1 {
				wantFW = 1
			}
			if fw != wantFW {
				t.Fatalf("Folk_World = %d, want %d", fw, wantFW)
			}
			if fw+country != n {
				t.Fatalf("split loses covers: %d + %d != %d", fw, country, n)
			}
		})
	}
}

func TestSplitCompositeAccumulatesVariants(t *testing.T) {
	b := NewBuckets()
	for i := 0; i < 3; i++ {
		b.Add("Folk, World, & Country", fmt.Sprintf("a%d", i))
	}
	for i := 0; i < 3; i++ {
		b.Add("Folk/World/Country", fmt.Sprintf("b%d", i))
	}
	b.Add("Jazz", "j0")
	out := b.SplitComposite()
	if got := len(out.Covers(FolkWorldLabel)); got != 4 {
		t.Fatalf("Folk_World = %d, want 4", got)
	}
	if got := len(out.Covers(CountryLabel)); got != 2 {
		t.Fatalf("Country = %d, want 2", got)
	}
	if got := out.Covers("Jazz"); len(got) != 1 || got[0] != "j0" {
		t.Fatalf("Jazz bucket disturbed: %v", got)
	}
}

func TestSplitCompositePreservesCoverOrder(t *testing.T) {
	b := NewBuckets()
	for i := 0; i < 6; i++ {
		b.Add("Folk, World, & Country", fmt.Sprintf("c%d", i))
	}
	out := b.SplitComposite()
	if got := out.Covers(FolkWorldLabel); !reflect.DeepEqual(got, []string{"c0", "c1", "c2", "c3"}) {
		t.Fatalf("Folk_World order: %v", got)
	}
	if got := out.Covers(CountryLabel); !reflect.DeepEqual(got, []string{"c4", "c5"}) {
		t.Fatalf("Country order: %v", got)
	}
}

func TestMergeTiny(t *testing.T) {
	b := NewBuckets()
	for i := 0; i < 40; i++ {
		b.Add("Rock", fmt.Sprintf("r%d", i))
	}
	for i := 0; i < 5; i++ {
		b.Add("Polka", fmt.Sprintf("p%d", i))
	}
	for i := 0; i < 36; i++ {
		b.Add("Jazz", fmt.Sprintf("j%d", i))
	}
	b.Add("Zydeco", "z0")
	out := b.MergeTiny(36)

	if got := len(out.Covers("Rock")); got != 40 {
		t.Fatalf("Rock = %d", got)
	}
	// Exactly at threshold survives.
	if got := len(out.Covers("Jazz")); got != 36 {
		t.Fatalf("Jazz = %d", got)
	}
	if out.Covers("Polka") != nil || out.Covers("Zydeco") != nil {
		t.Fatal("tiny buckets not merged")
	}
	if got := len(out.Covers(MiscLabel)); got != 6 {
		t.Fatalf("Misc = %d, want 6", got)
	}
	// Misc lands last in label order.
	labels := out.Labels()
	if labels[len(labels)-1] != MiscLabel {
		t.Fatalf("label order: %v", labels)
	}
}

func TestMergeTinyNoMiscWhenNothingTiny(t *testing.T) {
	b := NewBuckets()
	for i := 0; i < 36; i++ {
		b.Add("Rock", fmt.Sprintf("r%d", i))
	}
	out := b.MergeTiny(36)
	if out.Covers(MiscLabel) != nil {
		t.Fatal("unexpected Misc bucket")
	}
	if out.Len() != 1 {
		t.Fatalf("bucket count = %d", out.Len())
	}
}
