// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shalean/bookingimport/pkg/literal"
	"github.com/shalean/bookingimport/pkg/sqlvalues"
)

// record is the transformation state of a single legacy row. The price
// snapshot is shared by several target columns and parsed once.
type record struct {
	raw      sqlvalues.RawRow
	resolver CleanerResolver

	snapshot    *PriceSnapshot
	snapshotErr error
}

// text returns the unquoted legacy field at the given position, and false
// when it's NULL.
func (r *record) text(pos int) (string, bool) {
	return literal.TextOf(r.raw[pos])
}

func (r *record) priceSnapshot() (*PriceSnapshot, error) {
	if r.snapshot == nil && r.snapshotErr == nil {
		doc, _ := r.text(legacyPriceSnapshot)
		r.snapshot, r.snapshotErr = ParsePriceSnapshot(doc)
	}
	return r.snapshot, r.snapshotErr
}

func bookingID(r *record) (literal.Value, error) {
	id, ok := r.text(legacyBookingID)
	if !ok || strings.TrimSpace(id) == "" {
		return nil, errMissingBookingID
	}
	return literal.Text(id), nil
}

func nullableText(pos int) func(*record) (literal.Value, error) {
	return func(r *record) (literal.Value, error) {
		return literal.NullableText(r.raw[pos]), nil
	}
}

func serviceType(r *record) (literal.Value, error) {
	s, _ := r.text(legacyServiceType)
	return literal.Text(NormalizeServiceType(s)), nil
}

func frequency(r *record) (literal.Value, error) {
	s, _ := r.text(legacyFrequency)
	return literal.Text(NormalizeFrequency(s)), nil
}

func bedrooms(r *record) (literal.Value, error) {
	snapshot, err := r.priceSnapshot()
	if err != nil {
		return nil, err
	}
	return literal.Int(snapshot.Bedrooms), nil
}

func bathrooms(r *record) (literal.Value, error) {
	snapshot, err := r.priceSnapshot()
	if err != nil {
		return nil, err
	}
	return literal.Int(snapshot.Bathrooms), nil
}

func extras(r *record) (literal.Value, error) {
	snapshot, err := r.priceSnapshot()
	if err != nil {
		return nil, err
	}
	return literal.JSONB(snapshot.Extras), nil
}

func assignedCleaner(r *record) (literal.Value, error) {
	id, ok := r.text(legacyCleanerID)
	if !ok || strings.TrimSpace(id) == "" {
		return literal.Null, nil
	}

	cleanerID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errInvalidCleanerID, id, err)
	}
	return r.resolver.Resolve(cleanerID.String())
}

func firstName(r *record) (literal.Value, error) {
	name, _ := r.text(legacyCustomerName)
	first, _ := SplitName(name)
	return literal.Text(first), nil
}

func lastName(r *record) (literal.Value, error) {
	name, _ := r.text(legacyCustomerName)
	_, last := SplitName(name)
	return literal.Text(last), nil
}

func status(r *record) (literal.Value, error) {
	s, ok := r.text(legacyStatus)
	if !ok {
		return literal.Null, nil
	}
	return literal.Text(NormalizeStatus(s)), nil
}

func paymentStatus(r *record) (literal.Value, error) {
	s, _ := r.text(legacyStatus)
	return literal.Text(PaymentStatus(NormalizeStatus(s))), nil
}

func amountOrZero(pos int) func(*record) (literal.Value, error) {
	return func(r *record) (literal.Value, error) {
		s, _ := r.text(pos)
		amount, err := MinorToMajor(s)
		if err != nil {
			return nil, err
		}
		return literal.NewDecimal(amount), nil
	}
}

// nullableAmount keeps unknown amounts as NULL, which is not the same as a
// zero amount.
func nullableAmount(pos int) func(*record) (literal.Value, error) {
	return func(r *record) (literal.Value, error) {
		s, ok := r.text(pos)
		if !ok || strings.TrimSpace(s) == "" {
			return literal.Null, nil
		}
		amount, err := MinorToMajor(s)
		if err != nil {
			return nil, err
		}
		return literal.NewDecimal(amount), nil
	}
}

func updatedAt(r *record) (literal.Value, error) {
	if s, ok := r.text(legacyUpdatedAt); ok && strings.TrimSpace(s) != "" {
		return literal.Text(s), nil
	}
	return literal.NullableText(r.raw[legacyCreatedAt]), nil
}
