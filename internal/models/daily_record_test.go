package models

import "testing"

func TestParseTransportMode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TransportMode
	}{
		{name: "unset defaults to subway", raw: "", want: TransportSubway},
		{name: "blank defaults to subway", raw: "   ", want: TransportSubway},
		{name: "subway", raw: "subway", want: TransportSubway},
		{name: "bus mixed case", raw: "BuS", want: TransportBus},
		{name: "walk", raw: "walk", want: TransportWalk},
		{name: "car counts as walk", raw: "car", want: TransportWalk},
		{name: "bike counts as walk", raw: "bike", want: TransportWalk},
		{name: "none counts as walk", raw: "none", want: TransportWalk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTransportMode(tt.raw); got != tt.want {
				t.Fatalf("ParseTransportMode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
