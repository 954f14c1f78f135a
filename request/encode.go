// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const badDataTypeMsg = "ajax/request: invalid type (for data use nil, " +
	"string, []byte, Fields, url.Values, map[string]string or " +
	"map[string]interface{})"

// A Field is a single key/value pair of request data. Value should be
// a scalar: a string, a bool, a number, or nil.
type Field struct {
	Key   string
	Value interface{}
}

// Fields is an ordered list of request data pairs. Unlike the map types
// accepted by Encode, Fields are always encoded in order.
type Fields []Field

// Add returns f with the pair (key, value) appended.
func (f Fields) Add(key string, value interface{}) Fields {
	return append(f, Field{Key: key, Value: value})
}

// MarshalJSON encodes f as a JSON object with members in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(fld.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshal(fld.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode converts request data into a form-encoded payload.
//
// The conversion logic is:
//
// • If data is nil, the empty string is returned.
//
// • If data is a string or []byte, it is taken to be pre-encoded and
// returned unmodified.
//
// • If data is Fields, each pair is encoded as key=value and the pairs
// are joined with "&", in order.
//
// • If data is a url.Values, map[string]string, or
// map[string]interface{}, pairs are encoded in sorted key order. A
// url.Values key with several values produces one pair per value.
//
// • If data is any other type, an error is returned.
//
// Keys and values are escaped like the JavaScript encodeURIComponent
// function: a space becomes %20, not "+". Values are formatted the way
// JavaScript would convert them to strings, so true becomes "true" and
// nil becomes "null".
func Encode(data interface{}) (string, error) {
	switch x := data.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case Fields:
		return encodeFields(x), nil
	case url.Values:
		var f Fields
		for _, k := range sortedKeys(x) {
			for _, v := range x[k] {
				f = f.Add(k, v)
			}
		}
		return encodeFields(f), nil
	case map[string]string:
		var f Fields
		for _, k := range sortedKeys(x) {
			f = f.Add(k, x[k])
		}
		return encodeFields(f), nil
	case map[string]interface{}:
		var f Fields
		for _, k := range sortedKeys(x) {
			f = f.Add(k, x[k])
		}
		return encodeFields(f), nil
	default:
		return "", errors.New(badDataTypeMsg)
	}
}

// EncodeJSON converts request data into a JSON payload. Strings and
// byte slices are taken to be pre-encoded and returned unmodified.
// Fields become a JSON object with members in order; the map types
// become objects with members in sorted key order. A url.Values key
// with exactly one value becomes a string member, otherwise an array.
func EncodeJSON(data interface{}) ([]byte, error) {
	switch x := data.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case Fields:
		return x.MarshalJSON()
	case url.Values:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			if len(v) == 1 {
				m[k] = v[0]
			} else {
				m[k] = v
			}
		}
		return marshal(m)
	case map[string]string, map[string]interface{}:
		return marshal(x)
	default:
		return nil, errors.New(badDataTypeMsg)
	}
}

func structured(data interface{}) bool {
	switch data.(type) {
	case nil, string, []byte:
		return false
	default:
		return true
	}
}

func encodeFields(f Fields) string {
	parts := make([]string, len(f))
	for i, fld := range f {
		parts[i] = EscapeComponent(fld.Key) + "=" + EscapeComponent(formatValue(fld.Value))
	}
	return strings.Join(parts, "&")
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x, 64)
	case float32:
		return formatNumber(float64(x), 32)
	default:
		return fmt.Sprint(x)
	}
}

// formatNumber renders x the way JavaScript's Number#toString does:
// plain decimal notation for magnitudes in [1e-6, 1e21), and otherwise
// exponent notation with no zero padding in the exponent.
func formatNumber(x float64, bitSize int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	if abs := math.Abs(x); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(x, 'e', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// EscapeComponent escapes s in the same manner as the JavaScript
// encodeURIComponent function. Every byte is percent-encoded except the
// ASCII letters and digits and the marks - _ . ! ~ * ' ( ).
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// marshal is json.Marshal without HTML escaping, matching what a
// browser's JSON.stringify produces.
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
