package rangefilter

import (
	"encoding/json"
	"math"
	"testing"

	"golang.org/x/text/language"
)

func TestBoundEquality(t *testing.T) {
	if Unset() != (Bound{}) {
		t.Error("Unset() should equal the zero Bound")
	}
	if At(0) == Unset() {
		t.Error("At(0) must differ from Unset()")
	}
	if At(math.Copysign(0, -1)) != At(0) {
		t.Error("-0 and 0 should compare equal")
	}
	if At(math.NaN()).IsSet() || At(math.Inf(1)).IsSet() {
		t.Error("non-finite values should be unset")
	}
}

func TestFormatDraftRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 100, 12.5, 0.1, 1e9, -3.25} {
		b := At(v)
		if got := ParseBound(FormatDraft(b)); got != b {
			t.Errorf("ParseBound(FormatDraft(%v)) = %v", v, got)
		}
	}
	if FormatDraft(Unset()) != "" {
		t.Error("unset bound should format as empty text")
	}
}

func TestBoundJSON(t *testing.T) {
	r := Range{Min: At(100), Max: Unset()}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"min":100,"max":null}` {
		t.Errorf("Marshal = %s", data)
	}

	var back Range
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != r {
		t.Errorf("Unmarshal = %s, want %s", back, r)
	}

	var missing Range
	if err := json.Unmarshal([]byte(`{}`), &missing); err != nil || !missing.IsAll() {
		t.Errorf("Unmarshal({}) = %s, %v", missing, err)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		r    Range
		v    float64
		want bool
	}{
		{Range{}, -1e9, true},
		{Between(100, 500), 100, true},
		{Between(100, 500), 500, true},
		{Between(100, 500), 500.01, false},
		{AtLeast(1000), 999.99, false},
		{AtMost(0), 0, true},
		{Between(0, 0), 1, false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.v); got != tt.want {
			t.Errorf("%s.Contains(%v) = %v, want %v", tt.r, tt.v, got, tt.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in     string
		want   Range
		wantOK bool
	}{
		{"100-500", Between(100, 500), true},
		{"1000+", AtLeast(1000), true},
		{"-50", AtMost(50), true},
		{"10..", AtLeast(10), true},
		{"..10", AtMost(10), true},
		{"2.5..7.5", Between(2.5, 7.5), true},
		{"42", Between(42, 42), true},
		{"cheap", Range{}, false},
		{"+", Range{}, false},
		{"", Range{}, false},
		{"5-", Range{}, false},
		{"1e-5", Between(1e-5, 1e-5), true},
		{"2e-3-10", Between(0.002, 10), true},
		{"1e2-5E2", Between(100, 500), true},
		{"1.5e+3+", AtLeast(1500), true},
		{"-2.5e-1", AtMost(0.25), true},
		{"1e-", Range{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRange(tt.in)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ParseRange(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		d    Domain
		r    Range
		want string
	}{
		{Price, Range{}, "Any"},
		{Price, Between(100, 500), "$100 - $500"},
		{Price, AtLeast(1000), "≥ $1,000"},
		{Price, AtMost(12.5), "≤ $12.5"},
		{Stock, Between(0, 0), "0 units"},
		{Stock, AtLeast(101), "≥ 101 units"},
		{Stock, Between(1, 1), "1 unit"},
		{NewPriceDomain("Rp", language.Indonesian), Between(1000, 25000), "Rp1.000 - Rp25.000"},
	}
	for _, tt := range tests {
		if got := tt.d.Describe(tt.r); got != tt.want {
			t.Errorf("%s.Describe(%s) = %q, want %q", tt.d.Name, tt.r, got, tt.want)
		}
	}
}

func TestDomainLabel(t *testing.T) {
	if got := Stock.Label("out"); got != "Out of stock" {
		t.Errorf("Label(out) = %q", got)
	}
	if got := Price.Label(PresetCustom); got != "Custom" {
		t.Errorf("Label(custom) = %q", got)
	}
}

func TestDomainByName(t *testing.T) {
	if d, ok := DomainByName("stock"); !ok || d.Name != DomainStock {
		t.Errorf("DomainByName(stock) = %v, %v", d.Name, ok)
	}
	if _, ok := DomainByName("weight"); ok {
		t.Error("DomainByName(weight) should fail")
	}
}
