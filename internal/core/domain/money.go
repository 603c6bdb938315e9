package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an immutable non-negative amount in a single ISO-4217 currency.
// The zero value represents an absent price.
type Money struct {
	amount   decimal.Decimal
	currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) (Money, error) {
	if unit == (currency.Unit{}) {
		return Money{}, newNullArgumentError("Currency cannot be null")
	}
	if amount.Sign() < 0 {
		return Money{}, newInvalidAmountError(fmt.Sprintf("Amount must be non-negative, but got: %s", literal(amount)))
	}
	return Money{amount: amount, currency: unit}, nil
}

// ParseMoney builds Money from its textual form, e.g. ("19.99", "EUR").
func ParseMoney(amount, currencyCode string) (Money, error) {
	if amount == "" {
		return Money{}, newNullArgumentError("Amount cannot be null")
	}
	if currencyCode == "" {
		return Money{}, newNullArgumentError("Currency cannot be null")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, newInvalidAmountError(fmt.Sprintf("Amount is not a valid decimal: %q", amount))
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, newInvalidArgumentError(fmt.Sprintf("Unknown currency: %q", currencyCode))
	}

	return NewMoney(value, unit)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() currency.Unit { return m.currency }

// AmountString is the amount at the scale it was created with.
func (m Money) AmountString() string { return literal(m.amount) }

func (m Money) IsZero() bool {
	return m.currency == (currency.Unit{})
}

// Equal compares amounts numerically, so 10.0 USD equals 10.00 USD.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	if m.IsZero() {
		return ""
	}
	return m.AmountString() + " " + m.currency.String()
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(moneyJSON{Amount: m.AmountString(), Currency: m.currency.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Money{}
		return nil
	}

	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// literal renders d with the scale it was created with ("-50.00", not "-50").
func literal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
