package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "unset", raw: "", want: time.Minute},
		{name: "seconds", raw: "90", want: 90 * time.Second},
		{name: "go_syntax", raw: "24h", want: 24 * time.Hour},
		{name: "garbage", raw: "soon", want: time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ENVUTIL_TEST_DURATION", tc.raw)
			got := Duration("ENVUTIL_TEST_DURATION", time.Minute, nil)
			if got != tc.want {
				t.Fatalf("Duration(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIntAndBool(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int=%d, want 42", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "x")
	if got := Int("ENVUTIL_TEST_INT", 1, nil); got != 1 {
		t.Fatalf("Int(bad)=%d, want 1", got)
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "on")
	if !Bool("ENVUTIL_TEST_BOOL", false, nil) {
		t.Fatalf("Bool(on)=false, want true")
	}
}
