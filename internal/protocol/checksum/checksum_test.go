package checksum

import (
	"encoding/hex"
	"testing"
)

func TestSumVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, "83cc600dc4e3e7e62d4055826174f149"},
		{"empty slice", []byte{}, "83cc600dc4e3e7e62d4055826174f149"},
		{"16 zero bytes", make([]byte, 16), "f72ad48dd05dd1656133101cd4be3a26"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sum(tc.in)
			if hex.EncodeToString(got[:]) != tc.want {
				t.Fatalf("sum mismatch: got=%x want=%s", got, tc.want)
			}
		})
	}
}

func TestSumIsDeterministicAndInputSensitive(t *testing.T) {
	a := make([]byte, 128)
	b := make([]byte, 128)
	for i := range a {
		a[i] = 'A'
		b[i] = 'B'
	}
	if Sum(a) != Sum(a) {
		t.Fatalf("expected deterministic sum")
	}
	if Sum(a) == Sum(b) {
		t.Fatalf("expected different sums for different inputs")
	}
}

func TestProvidersAgree(t *testing.T) {
	p, err := NewAegis128L()
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	in := []byte("ledger")
	if p.Sum(in) != Default().Sum(in) {
		t.Fatalf("providers disagree")
	}
}
