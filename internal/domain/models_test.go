package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

func TestNumber_MarshalJSON(t *testing.T) {
	cases := []struct {
		in   domain.Number
		want string
	}{
		{1234.5, "1234.5"},
		{-50, "-50"},
		{0, "0"},
		{domain.Number(math.NaN()), "null"},
		{domain.Number(math.Inf(1)), "null"},
		{domain.Number(math.Inf(-1)), "null"},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("%v: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Errorf("%v: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestNumber_MoneyViewWithNaN(t *testing.T) {
	view := domain.MoneyView{Amount: domain.Number(math.NaN()), Formatted: "R$ NaN"}

	b, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("expected NaN to be encodable, got %v", err)
	}
	if string(b) != `{"amount":null,"formatted":"R$ NaN"}` {
		t.Errorf("unexpected encoding %s", b)
	}
	if view.Amount.Finite() {
		t.Error("NaN must not be finite")
	}
}

func TestUpdateTransactionRequest_Validate(t *testing.T) {
	amount := 10.0
	income := domain.TypeIncome
	desc := "Aluguel"

	cases := []struct {
		name  string
		req   domain.UpdateTransactionRequest
		field string
	}{
		{"empty", domain.UpdateTransactionRequest{}, "body"},
		{"amount without type", domain.UpdateTransactionRequest{Amount: &amount}, "type"},
		{"type without amount", domain.UpdateTransactionRequest{Type: &income}, "amount"},
		{"description only", domain.UpdateTransactionRequest{Description: &desc}, ""},
		{"amount and type", domain.UpdateTransactionRequest{Amount: &amount, Type: &income}, ""},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		v, ok := err.(*domain.ErrValidation)
		if !ok || v.Field != tc.field {
			t.Errorf("%s: expected %s validation error, got %v", tc.name, tc.field, err)
		}
	}
}
