package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// keys whose values are timestamps anywhere in a project document
var dateKeys = map[string]bool{
	"createdAt":    true,
	"lastModified": true,
	"uploadedAt":   true,
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// RehydrateDates rewrites every timestamp field of a JSON document to
// RFC 3339. Older files carry epoch milliseconds or bare dates; null and
// empty strings become null.
func RehydrateDates(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := walkDates(doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func walkDates(v interface{}) error {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if dateKeys[k] {
				d, err := normalizeDate(val)
				if err != nil {
					return errors.Wrapf(err, "field %s", k)
				}
				t[k] = d
				continue
			}
			if err := walkDates(val); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, e := range t {
			if err := walkDates(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeDate turns epoch milliseconds and loose date strings into RFC 3339.
func normalizeDate(v interface{}) (interface{}, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		ms, err := d.Int64()
		if err != nil {
			f, ferr := d.Float64()
			if ferr != nil {
				return nil, ferr
			}
			ms = int64(f)
		}
		return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.Format(time.RFC3339Nano), nil
			}
		}
		return nil, errors.Errorf("unrecognised date %q", d)
	}
	return nil, errors.Errorf("unexpected date value %v", v)
}
