package markup

import "testing"

func TestSimplifyHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF1A2B3C", "#1A2B3C"},
		{"#ffabcdef", "#ffabcdef"},
		{"#FFabcdef", "#abcdef"},
		{"#1A2B3C", "#1A2B3C"},
		{"#801A2B3C", "#801A2B3C"},
		{"#FF1A2B3G", "#FF1A2B3G"},
		{"Red", "Red"},
		{"", ""},
		{"{DynamicResource Brush}", "{DynamicResource Brush}"},
	}

	for _, tt := range tests {
		if got := SimplifyHexColor(tt.in); got != tt.want {
			t.Errorf("SimplifyHexColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimplifyThickness(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5,5,5,5", "5"},
		{"1,2,1,2", "1,2"},
		{"1,2,3,4", "1,2,3,4"},
		{"-3,-3,-3,-3", "-3"},
		{"0,-1,0,-1", "0,-1"},
		{"1.5,1.5,1.5,1.5", "1.5,1.5,1.5,1.5"},
		{"05,5,5,5", "05,5,5,5"},
		{"5,5,5", "5,5,5"},
		{"5", "5"},
		{"1,2", "1,2"},
		{" 5,5,5,5", " 5,5,5,5"},
		{"", ""},
	}

	for _, tt := range tests {
		got := SimplifyThickness(tt.in)
		if got != tt.want {
			t.Errorf("SimplifyThickness(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := SimplifyThickness(got); again != got {
			t.Errorf("SimplifyThickness is not idempotent for %q: %q -> %q", tt.in, got, again)
		}
	}
}
