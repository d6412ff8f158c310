package color

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", input: "#428AFF", want: RGB{0x42, 0x8A, 0xFF}},
		{name: "without hash", input: "f26d90", want: RGB{0xF2, 0x6D, 0x90}},
		{name: "black", input: "#000000", want: RGB{}},
		{name: "too short", input: "#fff", wantErr: true},
		{name: "not hex", input: "#zzzzzz", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#428aff", "#f26d90", "#fcb16f", "#000000", "#ffffff"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", s, err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("Hex() = %s, want %s", got, s)
		}
	}
}

func TestGradient(t *testing.T) {
	from := RGB{0, 0, 0}
	to := RGB{255, 255, 255}

	tests := []struct {
		name   string
		weight float64
		want   RGB
	}{
		{name: "zero weight yields from", weight: 0, want: from},
		{name: "full weight yields to", weight: 1, want: to},
		{name: "midpoint", weight: 0.5, want: RGB{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Gradient(from, to, tt.weight); got != tt.want {
				t.Errorf("Gradient(%v) = %+v, want %+v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestGradientPerChannel(t *testing.T) {
	// Degrees (2, 4): weight 2/6. Each channel must equal
	// from + (to-from)*1/3 rounded to the nearest integer.
	from := RGB{0x42, 0x8A, 0xFF} // importer
	to := RGB{0xF2, 0x6D, 0x90}   // imported
	got := Gradient(from, to, 2.0/6.0)
	// R: 66 + (242-66)/3 = 124.67 -> 125
	// G: 138 + (109-138)/3 = 128.33 -> 128
	// B: 255 + (144-255)/3 = 218
	want := RGB{125, 128, 218}
	if got != want {
		t.Errorf("Gradient = %+v, want %+v", got, want)
	}
}
