// SPDX-License-Identifier: Apache-2.0

package literal

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shalean/bookingimport/internal/postgres"
)

// Value is a typed value that knows how to render itself as postgres SQL
// text.
type Value interface {
	SQL() string
}

type Text string

func (t Text) SQL() string {
	return postgres.QuoteLiteral(string(t))
}

type Int int64

func (i Int) SQL() string {
	return strconv.FormatInt(int64(i), 10)
}

type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

func (d Decimal) SQL() string {
	return d.String()
}

// JSONB holds an already serialised JSON document.
type JSONB []byte

func (j JSONB) SQL() string {
	return postgres.QuoteLiteral(string(j)) + "::jsonb"
}

// Expr is a raw SQL expression rendered verbatim.
type Expr string

func (e Expr) SQL() string {
	return string(e)
}

type null struct{}

func (null) SQL() string {
	return "NULL"
}

// Null is the SQL NULL value.
var Null Value = null{}

// NullableText returns Null for the NULL token and the unquoted text
// otherwise.
func NullableText(token string) Value {
	s, ok := TextOf(token)
	if !ok {
		return Null
	}
	return Text(s)
}
