package clipboard

import (
	"runtime"
	"testing"
)

func TestNormalize(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("line endings differ on windows")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"Hello Seller,\r\n\r\nQuestion 1:\n", "Hello Seller,\n\nQuestion 1:"},
		{"尊敬的卖家，  \n\n", "尊敬的卖家，"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
