package protocol

import (
	"errors"
	"math/big"
	"testing"
)

func TestUint128PackBoundaries(t *testing.T) {
	two64 := new(big.Int).Lsh(big.NewInt(1), 64)
	cases := []struct {
		name string
		in   *big.Int
	}{
		{"zero", big.NewInt(0)},
		{"max u64", new(big.Int).Sub(two64, big.NewInt(1))},
		{"2^64", two64},
		{"max u128", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Uint128FromBig(tc.in)
			if err != nil {
				t.Fatalf("from big: %v", err)
			}
			buf := make([]byte, 16)
			if n := PutUint128(buf, v); n != 16 {
				t.Fatalf("unexpected written=%d", n)
			}
			got := GetUint128(buf)
			if got != v {
				t.Fatalf("round trip mismatch: got=%+v want=%+v", got, v)
			}
			if got.Big().Cmp(tc.in) != 0 {
				t.Fatalf("big mismatch: got=%s want=%s", got.Big(), tc.in)
			}
		})
	}
}

func TestUint128WireOrderIsLowWordFirst(t *testing.T) {
	v := Uint128{Lo: 0x0123456789ABCDEF, Hi: 0xFEDCBA9876543210}
	b := v.Bytes()
	if b[0] != 0xEF || b[7] != 0x01 {
		t.Fatalf("low word not first: % x", b[:8])
	}
	if b[8] != 0x10 || b[15] != 0xFE {
		t.Fatalf("high word not second: % x", b[8:])
	}
}

func TestUint128FromBigRejectsOutOfRange(t *testing.T) {
	if _, err := Uint128FromBig(big.NewInt(-1)); !errors.Is(err, ErrUint128Range) {
		t.Fatalf("expected ErrUint128Range for negative, got %v", err)
	}
	if _, err := Uint128FromBig(new(big.Int).Lsh(big.NewInt(1), 128)); !errors.Is(err, ErrUint128Range) {
		t.Fatalf("expected ErrUint128Range for 2^128, got %v", err)
	}
}

func TestParseUint128(t *testing.T) {
	v, err := ParseUint128("18446744073709551616")
	if err != nil {
		t.Fatalf("parse decimal: %v", err)
	}
	if v != (Uint128{Lo: 0, Hi: 1}) {
		t.Fatalf("unexpected value: %+v", v)
	}
	if v.String() != "18446744073709551616" {
		t.Fatalf("unexpected string: %s", v.String())
	}
	h, err := ParseUint128("0xff")
	if err != nil || h != U128(255) {
		t.Fatalf("parse hex: v=%+v err=%v", h, err)
	}
	if _, err := ParseUint128("nope"); !errors.Is(err, ErrInvalidUint128) {
		t.Fatalf("expected ErrInvalidUint128, got %v", err)
	}
}

func TestOperationMultiBatchSet(t *testing.T) {
	multi := []Operation{
		OperationCreateAccounts, OperationCreateTransfers,
		OperationLookupAccounts, OperationLookupTransfers,
		OperationGetAccountTransfers, OperationGetAccountBalances,
		OperationQueryAccounts, OperationQueryTransfers,
	}
	for _, op := range multi {
		if !op.MultiBatch() {
			t.Fatalf("%s should be multi-batch", op)
		}
	}
	for _, op := range []Operation{OperationRegister, OperationPulse, OperationRoot} {
		if op.MultiBatch() {
			t.Fatalf("%s should not be multi-batch", op)
		}
	}
	if OperationCreateAccounts.String() != "create_accounts" {
		t.Fatalf("unexpected name: %s", OperationCreateAccounts)
	}
}

func TestUint128AddAndCmp(t *testing.T) {
	sum, overflow := U128(^uint64(0)).Add(U128(1))
	if overflow || sum != (Uint128{Hi: 1}) {
		t.Fatalf("carry into high word: %+v overflow=%v", sum, overflow)
	}
	if _, overflow := MaxUint128.Add(U128(1)); !overflow {
		t.Fatalf("expected overflow at 2^128")
	}
	if U128(1).Cmp(Uint128{Hi: 1}) != -1 || (Uint128{Hi: 1}).Cmp(U128(1)) != 1 || U128(5).Cmp(U128(5)) != 0 {
		t.Fatalf("cmp ordering wrong")
	}
}
