package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMultiValue_DecodesStringAndArray(t *testing.T) {
	var p struct {
		Sizes MultiValue `json:"sizes"`
		Lens  MultiValue `json:"lens"`
		None  MultiValue `json:"none"`
	}
	body := `{"sizes":"Small, Medium,,Large ","lens":["Frame Only","Polarized"],"none":null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if want := (MultiValue{"Small", "Medium", "Large"}); !reflect.DeepEqual(p.Sizes, want) {
		t.Fatalf("sizes: want %v, got %v", want, p.Sizes)
	}
	if want := (MultiValue{"Frame Only", "Polarized"}); !reflect.DeepEqual(p.Lens, want) {
		t.Fatalf("lens: want %v, got %v", want, p.Lens)
	}
	if p.None != nil {
		t.Fatalf("expected nil for null, got %v", p.None)
	}
}

func TestNormalizeMulti_PrefersFirstNonEmpty(t *testing.T) {
	got := NormalizeMulti(nil, MultiValue{"Black", "Red"})
	if !reflect.DeepEqual(got, []string{"Black", "Red"}) {
		t.Fatalf("unexpected %v", got)
	}
	got = NormalizeMulti(MultiValue{"Blue"}, MultiValue{"Black"})
	if !reflect.DeepEqual(got, []string{"Blue"}) {
		t.Fatalf("unexpected %v", got)
	}
	if got := NormalizeMulti(nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSplitJoinMulti_RoundTrip(t *testing.T) {
	parts := SplitMulti("Black, Red,Blue")
	if !reflect.DeepEqual(parts, []string{"Black", "Red", "Blue"}) {
		t.Fatalf("split: %v", parts)
	}
	if joined := JoinMulti(parts); joined != "Black,Red,Blue" {
		t.Fatalf("join: %q", joined)
	}
}

func TestNumeric_DecodesNumberOrString(t *testing.T) {
	var p struct {
		Price Numeric `json:"price"`
		Stock Numeric `json:"stock"`
	}
	if err := json.Unmarshal([]byte(`{"price":"199.99","stock":12}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Price != "199.99" || p.Stock != "12" {
		t.Fatalf("unexpected %+v", p)
	}
}

func TestSessionState_Transitions(t *testing.T) {
	if !StateVerifying.CanTransitionTo(StateAuthenticated) {
		t.Fatalf("verifying -> authenticated must be allowed")
	}
	if StateVerifying.Settled() || StateUnverified.Settled() {
		t.Fatalf("verifying states must not be settled")
	}
	if StateAuthenticated.CanTransitionTo(StateVerifying) {
		t.Fatalf("authenticated -> verifying must be rejected")
	}
}

func TestDialogState_Variants(t *testing.T) {
	if Closed().IsOpen() {
		t.Fatalf("closed dialog reported open")
	}
	if _, ok := Creating().Target(); ok {
		t.Fatalf("creating dialog must not expose a target")
	}
	d := Editing("7")
	if id, ok := d.Target(); !ok || id != "7" {
		t.Fatalf("unexpected target %q %v", id, ok)
	}
	if !d.IsEditing("7") || d.IsEditing("8") {
		t.Fatalf("IsEditing mismatch")
	}
}
