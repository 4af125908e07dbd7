// README: Common money value object used across modules. Amounts are whole lari.
package types

import "fmt"

const CurrencyGEL = "GEL"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func GEL(amount int64) Money {
	return Money{Amount: amount, Currency: CurrencyGEL}
}

func (m Money) String() string {
	if m.Currency == CurrencyGEL {
		return fmt.Sprintf("%d₾", m.Amount)
	}
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
