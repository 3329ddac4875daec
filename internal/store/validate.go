package store

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRating is returned when a rating is present but not an
	// integer in [0, 5].
	ErrInvalidRating = errors.New("rating must be a number between 0 and 5")

	// ErrEmptyUpdate is returned when an update payload carries no truthy
	// field. The text doubles as the client-facing message.
	ErrEmptyUpdate = errors.New("Request body must contain content")
)

// MissingFieldError is returned when a required field is absent, empty, or
// null at create time.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return e.Field + " is required" }

// NullFieldError is returned when a field is supplied as an explicit JSON
// null. For required fields this is redundant with MissingFieldError; it
// exists so an optional description can't sneak a null into the table.
type NullFieldError struct {
	Field string
}

func (e *NullFieldError) Error() string { return "Missing " + e.Field + " in request body" }

// NewBookmark is a validated, normalized create payload.
type NewBookmark struct {
	Title       string
	URL         string
	Description string
	Rating      int64
}

// BookmarkPatch holds the fields supplied in an update payload. Nil fields
// were not supplied and keep their stored value.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int64
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *BookmarkPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil && p.Rating == nil
}

// requiredFields is checked in fixed order: the first missing field
// determines the error, so a request only ever reports one.
var requiredFields = []string{"title", "url", "rating"}

// candidateFields covers everything a bookmark payload may carry.
var candidateFields = []string{"title", "url", "description", "rating"}

// ValidateCreate checks a raw create payload, as decoded from JSON, and
// returns the normalized record. Field order and messages match the API
// contract: presence checks first (title, url, rating), then the rating
// range check, then a null sweep over all candidate fields.
func ValidateCreate(fields map[string]any) (*NewBookmark, error) {
	for _, f := range requiredFields {
		if !truthy(fields[f]) {
			return nil, &MissingFieldError{Field: f}
		}
	}

	rating, ok := coerceRating(fields["rating"])
	if !ok {
		return nil, ErrInvalidRating
	}

	for _, f := range candidateFields {
		if v, present := fields[f]; present && v == nil {
			return nil, &NullFieldError{Field: f}
		}
	}

	title, _ := textValue(fields["title"])
	url, _ := textValue(fields["url"])
	n := &NewBookmark{
		Title:  title,
		URL:    url,
		Rating: rating,
	}
	if v, present := fields["description"]; present {
		if s, ok := textValue(v); ok {
			n.Description = s
		}
	}
	return n, nil
}

// ValidateUpdate checks a raw partial-update payload and returns the patch
// to merge onto the stored record. At least one field must be truthy;
// beyond that, every supplied non-null field is applied, including falsy
// ones. Unknown fields are ignored. A truthy rating gets the same range
// check as at create time.
func ValidateUpdate(fields map[string]any) (*BookmarkPatch, error) {
	truthyCount := 0
	for _, f := range candidateFields {
		if truthy(fields[f]) {
			truthyCount++
		}
	}
	if truthyCount == 0 {
		return nil, ErrEmptyUpdate
	}

	patch := &BookmarkPatch{}
	if v, present := fields["title"]; present && v != nil {
		if s, ok := textValue(v); ok {
			patch.Title = &s
		}
	}
	if v, present := fields["url"]; present && v != nil {
		if s, ok := textValue(v); ok {
			patch.URL = &s
		}
	}
	if v, present := fields["description"]; present && v != nil {
		if s, ok := textValue(v); ok {
			patch.Description = &s
		}
	}
	if v, present := fields["rating"]; present && v != nil {
		r, ok := coerceRating(v)
		if !ok && truthy(v) {
			return nil, ErrInvalidRating
		}
		if ok {
			patch.Rating = &r
		}
	}
	return patch, nil
}

// truthy reports whether a raw payload value counts as supplied content:
// absent keys, nil, empty strings, zero numbers, and false do not. Arrays
// and objects have no text form a bookmark field could store, so they
// count as absent too.
func truthy(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case float64:
		return t != 0
	case int64:
		return t != 0
	case bool:
		return t
	default:
		return false
	}
}

// coerceRating converts a raw rating value to an integer in [0, 5].
// JSON numbers arrive as float64; numeric strings are accepted too.
func coerceRating(v any) (int64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > 5 {
		return 0, false
	}
	return int64(f), true
}

// textValue renders a scalar payload value as its stored text form. Arrays
// and objects have none and report false.
func textValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", true
	default:
		return "", false
	}
}
