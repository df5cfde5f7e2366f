package numwords

import "testing"

func TestConvert(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount float64
		want   string
	}{
		{0, ""},
		{-12, ""},
		{0.99, ""},
		{1, "One Only"},
		{13, "Thirteen Only"},
		{20, "Twenty Only"},
		{99, "Ninety Nine Only"},
		{100, "One Hundred Only"},
		{105, "One Hundred Five Only"},
		{999, "Nine Hundred Ninety Nine Only"},
		{1000, "One Thousand Only"},
		{1001, "One Thousand One Only"},
		{72445.88, "Seventy Two Thousand Four Hundred Forty Five Only"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{100000, "One Lakh Only"},
		{123456, "One Lakh Twenty Three Thousand Four Hundred Fifty Six Only"},
		{2500000, "Twenty Five Lakh Only"},
		{10000000, "One Crore Only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{1234567890, "One Hundred Twenty Three Crore Forty Five Lakh Sixty Seven Thousand Eight Hundred Ninety Only"},
	}

	for _, tc := range cases {
		if got := Convert(tc.amount); got != tc.want {
			t.Errorf("Convert(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestConvertDiscardsFraction(t *testing.T) {
	t.Parallel()

	if Convert(72445.88) != Convert(72445) {
		t.Fatal("fractional part must be floored before conversion")
	}
}
