// Package normalize coerces loosely typed catalog records into model.NormalizedItem.
//
// Normalization is total: every input, including an empty or nil record, produces a
// fully populated item. Values that cannot be used fall back to per-field defaults and
// are reported as Issues instead of errors.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agenthands/orderbot/internal/core/model"
)

// PlaceholderImageURL is used for items that come without an image.
const PlaceholderImageURL = "https://admin.broadwaypizza.com.pk/Images/ProductImages/500x500-low-res-min.jpg"

// missingMarkers are the values upstream tabular exports write for an empty cell.
var missingMarkers = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
	"<na>": true,
}

// Issue records a field that fell back to its default.
type Issue struct {
	Field  string
	Reason string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Reason
}

// Item normalizes one candidate.
func Item(raw model.RawCandidate) model.NormalizedItem {
	item, _ := ItemWithIssues(raw)
	return item
}

// Items normalizes candidates one-to-one, preserving order.
func Items(raws []model.RawCandidate) []model.NormalizedItem {
	items := make([]model.NormalizedItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, Item(raw))
	}
	return items
}

// ItemWithIssues normalizes one candidate and lists the fields that were degraded:
// a required field (name, price) that is missing, or any present value that could not be used.
func ItemWithIssues(raw model.RawCandidate) (model.NormalizedItem, []Issue) {
	var issues []Issue
	report := func(field, format string, args ...interface{}) {
		issues = append(issues, Issue{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	item := model.NormalizedItem{
		Category:    text(raw[model.KeyCategory]),
		Name:        text(raw[model.KeyName]),
		Description: description(raw[model.KeyDescription]),
		ImageURL:    PlaceholderImageURL,
		SourceTag:   text(raw[model.KeySourceFile]),
	}

	if _, ok := raw[model.KeyName]; !ok {
		report(model.KeyName, "missing")
	}

	if v, ok := raw[model.KeyPrice]; ok {
		p, parsed := parsePrice(v)
		if !parsed {
			report(model.KeyPrice, "unparsable value %q", text(v))
		}
		item.Price = p
	} else {
		report(model.KeyPrice, "missing")
	}

	if v := raw[model.KeyOldPrice]; truthy(v) {
		p, parsed := parsePrice(v)
		if !parsed {
			report(model.KeyOldPrice, "unparsable value %q", text(v))
		}
		item.OldPrice = p
	}

	if v, ok := raw[model.KeyImageURL]; ok {
		if s := text(v); s != "" {
			item.ImageURL = s
		} else {
			report(model.KeyImageURL, "empty, using placeholder")
		}
	}

	if v, ok := raw[model.KeySimilarity]; ok {
		s, parsed := similarity(v)
		if !parsed {
			report(model.KeySimilarity, "unparsable value %q", text(v))
		}
		item.Similarity = s
	}

	return item, issues
}

// text renders a scalar the way it reads in the catalog and trims it. nil is "".
func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func description(v interface{}) string {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return ""
		}
	case float32:
		if math.IsNaN(float64(t)) {
			return ""
		}
	}
	s := text(v)
	if missingMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}

func similarity(v interface{}) (float64, bool) {
	f, ok := number(v)
	if s, isString := v.(string); isString {
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		ok = err == nil
	}
	// NaN and Inf cannot be encoded as JSON.
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// truthy mirrors how the catalog treats optional columns: absent, empty and zero mean unset.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return true
}
