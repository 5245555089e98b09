package observability

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		in   string
		want map[string]string
	}{
		{in: "", want: nil},
		{in: "a=1", want: map[string]string{"a": "1"}},
		{in: " a = 1 , b=2,broken,c=", want: map[string]string{"a": "1", "b": "2"}},
		{in: "x=y=z", want: map[string]string{"x": "y=z"}},
	}
	for _, tc := range cases {
		if got := parseHeaders(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parseHeaders(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 7: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v, want %v", in, got, want)
		}
	}
}
