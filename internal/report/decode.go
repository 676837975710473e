package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	pointKey   = "point"
	detailsKey = "details"
)

// Decode parses a normalized payload into a tagged document. Object keys keep
// their document order and PointDetail objects are recognized here, once.
func Decode(text string) (models.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	value, err := decodeValue(dec, 0)
	if err != nil {
		return models.Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return models.Value{}, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}

	return value, nil
}

func decodeValue(dec *json.Decoder, nesting int) (models.Value, error) {
	if nesting > MaxDepth {
		return models.Value{}, fmt.Errorf("%w: nesting exceeds %d levels", ErrMalformedDocument, MaxDepth)
	}

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return models.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return decodeSequence(dec, nesting)
		case '{':
			return decodeObject(dec, nesting)
		default:
			return models.Value{}, fmt.Errorf("%w: unexpected %q", ErrMalformedDocument, t)
		}
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t.String()), nil
	default:
		// bool and null
		return models.Opaque(), nil
	}
}

func decodeSequence(dec *json.Decoder, nesting int) (models.Value, error) {
	items := []models.Value{}
	for dec.More() {
		item, err := decodeValue(dec, nesting+1)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return models.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return models.Sequence(items...), nil
}

func decodeObject(dec *json.Decoder, nesting int) (models.Value, error) {
	entries := []models.Entry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("%w: object key is not a string", ErrMalformedDocument)
		}

		value, err := decodeValue(dec, nesting+1)
		if err != nil {
			return models.Value{}, err
		}
		entries = setEntry(entries, key, value)
	}
	if _, err := dec.Token(); err != nil {
		return models.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	group := models.Group(entries...)
	if point, details, ok := pointDetail(group); ok {
		return models.PointDetail(point, details), nil
	}
	return group, nil
}

// setEntry mirrors JSON.parse: a repeated key keeps its first position and the
// last value.
func setEntry(entries []models.Entry, key string, value models.Value) []models.Entry {
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = value
			return entries
		}
	}
	return append(entries, models.Entry{Key: key, Value: value})
}

func pointDetail(group models.Value) (string, string, bool) {
	point, ok := group.Lookup(pointKey)
	if !ok || !truthy(point) {
		return "", "", false
	}
	details, ok := group.Lookup(detailsKey)
	if !ok || !truthy(details) {
		return "", "", false
	}
	return flatten(point), flatten(details), true
}

// truthy follows the loose truth test the report has always applied to
// point and details.
func truthy(v models.Value) bool {
	switch v.Kind {
	case models.KindScalar:
		if v.IsNumber {
			return !isZeroNumber(v.Scalar)
		}
		return v.Scalar != ""
	case models.KindOpaque:
		return false
	default:
		return true
	}
}

func isZeroNumber(n string) bool {
	f, err := strconv.ParseFloat(n, 64)
	return err == nil && f == 0
}

// flatten reduces a value to display text without recursing into it as a
// document.
func flatten(v models.Value) string {
	switch v.Kind {
	case models.KindScalar:
		return v.Scalar
	case models.KindSequence:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case models.KindPointDetail:
		return v.Point + ": " + v.Details
	case models.KindGroup:
		parts := make([]string, 0, len(v.Entries))
		for _, e := range v.Entries {
			if s := flatten(e.Value); s != "" {
				parts = append(parts, e.Key+": "+s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
