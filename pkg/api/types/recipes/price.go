package recipes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Price is an amount of money with two decimal places.
//
// On the wire it is a JSON string like "12.50", as decimal fractions
// do not survive float64. Internally it counts hundredths.
type Price int64

// price column is numeric(5,2), so 999.99 at most.
const maxPriceHundredths = 99999

func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// parse string value as Price.
//
// # Args
//
// - string: decimal notation like "12.50", "3" or "0.5".
// More than 2 decimal places, more than 5 digits in total,
// or non-numeric text are errors.
func (p *Price) Parse(s string) error {
	rest := strings.TrimSpace(s)

	sign := int64(1)
	if strings.HasPrefix(rest, "-") {
		sign = -1
		rest = rest[1:]
	}

	units, fraction, _ := strings.Cut(rest, ".")
	if units == "" && fraction == "" {
		return fmt.Errorf("price parse error: %q is not a number", s)
	}
	if 2 < len(fraction) {
		return fmt.Errorf("price parse error: %q has more than 2 decimal places", s)
	}

	hundredths := int64(0)
	for _, part := range []string{units, fraction} {
		for _, c := range part {
			if c < '0' || '9' < c {
				return fmt.Errorf("price parse error: %q is not a number", s)
			}
			hundredths = hundredths*10 + int64(c-'0')
			if maxPriceHundredths < hundredths*pow10(2-len(fraction)) {
				return fmt.Errorf("price parse error: %q has more than 5 digits", s)
			}
		}
	}
	for i := len(fraction); i < 2; i++ {
		hundredths *= 10
	}

	*p = Price(sign * hundredths)
	return nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	{
		s := new(string)
		if err := json.Unmarshal(data, s); err == nil {
			return p.Parse(*s)
		}
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price parse error: %s", string(data))
	}
	return p.Parse(n.String())
}
