package booking

import (
	"encoding/json"
	"testing"
)

func TestOptFieldPresence(t *testing.T) {
	type payload struct {
		Amount   OptFloat  `json:"amount"`
		Platform OptUint   `json:"platform"`
		Phone    OptString `json:"phone"`
	}

	t.Run("omitted keys stay unset", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Amount.Set || p.Platform.Set || p.Phone.Set {
			t.Errorf("omitted fields reported as set: %+v", p)
		}
	})

	t.Run("null keys are set but not valid", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"amount":null,"platform":null,"phone":null}`), &p); err != nil {
			t.Fatal(err)
		}
		if !p.Amount.Set || p.Amount.Valid {
			t.Errorf("null amount: Set=%v Valid=%v", p.Amount.Set, p.Amount.Valid)
		}
		if !p.Platform.Set || p.Platform.Valid {
			t.Errorf("null platform: Set=%v Valid=%v", p.Platform.Set, p.Platform.Valid)
		}
		if !p.Phone.Set || p.Phone.Valid {
			t.Errorf("null phone: Set=%v Valid=%v", p.Phone.Set, p.Phone.Valid)
		}
	})

	t.Run("values are set, valid and carried", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"amount":1234.5,"platform":3,"phone":"+54 11 5555"}`), &p); err != nil {
			t.Fatal(err)
		}
		if !p.Amount.Set || !p.Amount.Valid || p.Amount.Value != 1234.5 {
			t.Errorf("amount = %+v", p.Amount)
		}
		if !p.Platform.Set || !p.Platform.Valid || p.Platform.Value != 3 {
			t.Errorf("platform = %+v", p.Platform)
		}
		if !p.Phone.Set || !p.Phone.Valid || p.Phone.Value != "+54 11 5555" {
			t.Errorf("phone = %+v", p.Phone)
		}
	})

	t.Run("zero value is distinguishable from null", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"amount":0}`), &p); err != nil {
			t.Fatal(err)
		}
		if !p.Amount.Set || !p.Amount.Valid || p.Amount.Value != 0 {
			t.Errorf("zero amount = %+v", p.Amount)
		}
	})

	t.Run("wrong types still error", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"amount":"nope"}`), &p); err == nil {
			t.Error("expected error for string in numeric field")
		}
	})
}
