// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/shalean/bookingimport/pkg/literal"
	loglib "github.com/shalean/bookingimport/pkg/log"
	"github.com/shalean/bookingimport/pkg/sqlvalues"
)

// Row is a transformed booking, with one value per target column in schema
// order.
type Row []literal.Value

// CleanerResolver maps a legacy cleaner id to the value stored in the
// assigned cleaner column.
type CleanerResolver interface {
	Resolve(cleanerID string) (literal.Value, error)
}

// Transformer maps legacy booking rows into the target bookings schema.
type Transformer struct {
	schema   *Schema
	resolver CleanerResolver
	logger   loglib.Logger
}

type Option func(*Transformer)

func WithLogger(l loglib.Logger) Option {
	return func(t *Transformer) {
		t.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "booking_transformer",
		})
	}
}

func WithSchema(s *Schema) Option {
	return func(t *Transformer) {
		t.schema = s
	}
}

func New(resolver CleanerResolver, opts ...Option) (*Transformer, error) {
	t := &Transformer{
		resolver: resolver,
		logger:   loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.schema == nil {
		schema, err := NewSchema(BookingColumns())
		if err != nil {
			return nil, fmt.Errorf("building bookings schema: %w", err)
		}
		t.schema = schema
	}

	return t, nil
}

func (t *Transformer) Schema() *Schema {
	return t.schema
}

// Transform maps the legacy row on input into a target row. The index is the
// position of the row in the import and is only used for reporting. Any
// failure is returned as a *RowError.
func (t *Transformer) Transform(raw sqlvalues.RawRow, index int) (Row, error) {
	if len(raw) < MinLegacyColumns {
		return nil, &RowError{
			Index: index,
			Err:   fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(raw), MinLegacyColumns),
		}
	}

	bookingRef := BookingID(raw)
	rec := &record{raw: raw, resolver: t.resolver}
	row := make(Row, 0, len(t.schema.columns))
	for _, col := range t.schema.columns {
		v, err := col.Value(rec)
		if err != nil {
			return nil, &RowError{
				Index:     index,
				BookingID: bookingRef,
				Column:    col.Name,
				Err:       err,
			}
		}
		row = append(row, v)
	}

	t.logger.Trace("booking transformed", loglib.Fields{
		loglib.RowField:       index,
		loglib.BookingIDField: bookingRef,
		"service_fee":         t.serviceFee(raw),
	})

	return row, nil
}

// BookingID returns the unquoted legacy booking id of a row at least
// MinLegacyColumns wide.
func BookingID(raw sqlvalues.RawRow) string {
	return literal.Unquote(raw[legacyBookingID])
}

// serviceFee is not part of the target schema yet. It's only parsed for
// reporting.
func (t *Transformer) serviceFee(raw sqlvalues.RawRow) string {
	s, ok := literal.TextOf(raw[legacyServiceFee])
	if !ok {
		return "null"
	}
	fee, err := MinorToMajor(s)
	if err != nil {
		return "invalid"
	}
	return fee.String()
}

// CleanerIDs returns the distinct valid legacy cleaner ids referenced by the
// rows on input, sorted. Rows too short to be transformed are ignored.
func CleanerIDs(rows []sqlvalues.RawRow) []string {
	ids := []string{}
	for _, raw := range rows {
		if len(raw) < MinLegacyColumns {
			continue
		}
		s, ok := literal.TextOf(raw[legacyCleanerID])
		if !ok {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		ids = append(ids, id.String())
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
