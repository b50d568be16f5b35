// converting Go values from/to their column representation.
package marshal

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgtype"
)

// NumericFromCents renders a money amount held in hundredths as
// numeric with scale 2: 1250 becomes 12.50.
func NumericFromCents(cents int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(cents), Exp: -2, Status: pgtype.Present}
}

// NullNumeric is the numeric NULL.
func NullNumeric() pgtype.Numeric {
	return pgtype.Numeric{Status: pgtype.Null}
}

// CentsFromNumeric reads numeric into hundredths: 12.50 becomes 1250.
//
// The exponent of the scanned value depends on how postgres sent it,
// so 12.50 may arrive as 125 * 10^-1. The value is rescaled to -2
// whatever the wire said.
//
// returns:
//
// - int64: the amount in hundredths.
//
// - error: when the value is null or NaN, carries a fraction finer
//   than hundredths, or does not fit in int64.
func CentsFromNumeric(n pgtype.Numeric) (int64, error) {
	if n.Status != pgtype.Present {
		return 0, errors.New("numeric is not present")
	}
	if n.NaN {
		return 0, errors.New("numeric is NaN")
	}

	v := new(big.Int).Set(n.Int)
	exp := int(n.Exp) + 2

	if exp < 0 {
		d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)
		m := new(big.Int)
		v.QuoRem(v, d, m)
		if m.Sign() != 0 {
			return 0, fmt.Errorf("numeric %v has a fraction finer than hundredths", n.Int)
		}
	} else if 0 < exp {
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
	}

	if !v.IsInt64() {
		return 0, fmt.Errorf("numeric %v does not fit in int64", n.Int)
	}
	return v.Int64(), nil
}
