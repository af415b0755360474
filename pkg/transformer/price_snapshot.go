// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// PriceSnapshot is the subset of the legacy price snapshot document carried
// over to the target schema.
type PriceSnapshot struct {
	Bedrooms  int
	Bathrooms int
	// Extras is the serialised JSON array of extra services.
	Extras []byte
}

const (
	defaultBedrooms  = 0
	defaultBathrooms = 1
)

var (
	emptyExtras = []byte("[]")

	errUnexpectedSnapshotShape = errors.New("unexpected price snapshot shape")
)

func DefaultPriceSnapshot() *PriceSnapshot {
	return &PriceSnapshot{
		Bedrooms:  defaultBedrooms,
		Bathrooms: defaultBathrooms,
		Extras:    emptyExtras,
	}
}

// ParsePriceSnapshot extracts the bedrooms, bathrooms and extras from the JSON
// document on input. Documents that are missing, null, not valid JSON or not a
// JSON object fall back to the defaults. Present values of an unexpected type
// return an error.
func ParsePriceSnapshot(doc string) (*PriceSnapshot, error) {
	snapshot := DefaultPriceSnapshot()

	doc = strings.TrimSpace(doc)
	if doc == "" || !gjson.Valid(doc) {
		return snapshot, nil
	}
	parsed := gjson.Parse(doc)
	if !parsed.IsObject() {
		return snapshot, nil
	}

	var err error
	if snapshot.Bedrooms, err = intOrDefault(parsed.Get("service.bedrooms"), defaultBedrooms); err != nil {
		return nil, fmt.Errorf("%w: service.bedrooms: %w", errUnexpectedSnapshotShape, err)
	}
	if snapshot.Bathrooms, err = intOrDefault(parsed.Get("service.bathrooms"), defaultBathrooms); err != nil {
		return nil, fmt.Errorf("%w: service.bathrooms: %w", errUnexpectedSnapshotShape, err)
	}

	extras := parsed.Get("extras")
	switch {
	case !extras.Exists(), extras.Type == gjson.Null:
	case !extras.IsArray():
		return nil, fmt.Errorf("%w: extras is not an array", errUnexpectedSnapshotShape)
	case len(extras.Array()) > 0:
		// the source text is kept as is so numbers don't lose precision
		snapshot.Extras = []byte(extras.Get("@ugly").Raw)
	}

	return snapshot, nil
}

// intOrDefault accepts whole numbers, as JSON numbers or numeric strings.
// Missing and null values return the default.
func intOrDefault(res gjson.Result, def int) (int, error) {
	var text string
	switch res.Type {
	case gjson.Null:
		return def, nil
	case gjson.Number:
		text = res.Raw
	case gjson.String:
		text = strings.TrimSpace(res.Str)
	default:
		return 0, fmt.Errorf("expected a number, got %s", res.Raw)
	}

	n, err := decimal.NewFromString(text)
	if err != nil || !n.IsInteger() {
		return 0, fmt.Errorf("expected a whole number, got %s", res.Raw)
	}
	return cast.ToIntE(n.String())
}
