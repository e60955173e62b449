//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve implements YAML's core schema: deciding, from a tag
// (explicit or empty) and a scalar's decoded text, which Go value and
// canonical tag the scalar denotes.
package resolve

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// scalarLiteral is a pre-resolved value for one of the fixed keyword
// spellings the core schema recognizes (true/false/null/.inf/.nan/<<).
type scalarLiteral struct {
	value interface{}
	tag   string
}

// scalarClass buckets a scalar's first byte so Resolve can skip the
// keyword table and the numeric parsers entirely for input that can't
// possibly match either.
type scalarClass byte

const (
	classNone scalarClass = 0
	classSign scalarClass = 'S'
	classDigit scalarClass = 'D'
	classWord scalarClass = 'M' // first byte of a recognized keyword
	classDot  scalarClass = '.'
)

var (
	firstByteClass [256]scalarClass
	literalsByText map[string]scalarLiteral
)

func init() {
	for _, c := range "+-" {
		firstByteClass[c] = classSign
	}
	for _, c := range "0123456789" {
		firstByteClass[c] = classDigit
	}
	for _, c := range "yYnNtTfFoO~" {
		firstByteClass[c] = classWord
	}
	firstByteClass['.'] = classDot
	firstByteClass['<'] = classWord

	groups := []struct {
		value  interface{}
		tag    string
		spellings []string
	}{
		{value: true, tag: BoolTag, spellings: []string{"true", "True", "TRUE"}},
		{value: false, tag: BoolTag, spellings: []string{"false", "False", "FALSE"}},
		{tag: NullTag, spellings: []string{"", "~", "null", "Null", "NULL"}},
		{value: math.NaN(), tag: FloatTag, spellings: []string{".nan", ".NaN", ".NAN"}},
		{value: math.Inf(1), tag: FloatTag, spellings: []string{".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF"}},
		{value: math.Inf(-1), tag: FloatTag, spellings: []string{"-.inf", "-.Inf", "-.INF"}},
		{value: "<<", tag: MergeTag, spellings: []string{"<<"}},
	}

	literalsByText = make(map[string]scalarLiteral)
	for _, g := range groups {
		for _, s := range g.spellings {
			literalsByText[s] = scalarLiteral{value: g.value, tag: g.tag}
		}
	}
}

// Core schema tag shorthands.
const (
	NullTag      = "!!null"
	BoolTag      = "!!bool"
	StrTag       = "!!str"
	IntTag       = "!!int"
	FloatTag     = "!!float"
	TimestampTag = "!!timestamp"
	SeqTag       = "!!seq"
	MapTag       = "!!map"
	BinaryTag    = "!!binary"
	MergeTag     = "!!merge"
)

const longTagPrefix = "tag:yaml.org,2002:"

// ShortTag rewrites a tag:yaml.org,2002:x tag to its !!x shorthand, and
// leaves any other tag (including one already in shorthand form)
// unchanged.
func ShortTag(tag string) string {
	if s, ok := strings.CutPrefix(tag, longTagPrefix); ok {
		return "!!" + s
	}
	return tag
}

// LongTag rewrites a !!x shorthand to its tag:yaml.org,2002:x form, and
// leaves any other tag unchanged.
func LongTag(tag string) string {
	if s, ok := strings.CutPrefix(tag, "!!"); ok {
		return longTagPrefix + s
	}
	return tag
}

func isCoreSchemaTag(tag string) bool {
	switch tag {
	case "", StrTag, BoolTag, IntTag, FloatTag, NullTag, TimestampTag:
		return true
	}
	return false
}

var yamlStyleFloat = regexp.MustCompile(`^[-+]?(\.\d+|\d+(\.\d*)?)([eE][-+]?\d+)?$`)

// Resolve decides what the scalar text in in denotes under tag (which
// may be empty for a plain, untagged scalar). It returns the resolved
// tag's short form, the decoded Go value (bool, int, int64, uint64,
// float64, string, time.Time, or nil for a null), and an error if tag demands a type
// the text cannot produce.
func Resolve(tag, in string) (rtag string, out interface{}, errOut error) {
	tag = ShortTag(tag)
	if !isCoreSchemaTag(tag) {
		return tag, in, nil
	}

	defer func() {
		if rtag == tag || tag == "" || tag == StrTag || tag == BinaryTag {
			return
		}
		if tag == FloatTag && rtag == IntTag {
			switch v := out.(type) {
			case int64:
				rtag, out = FloatTag, float64(v)
				return
			case int:
				rtag, out = FloatTag, float64(v)
				return
			}
		}
		errOut = fmt.Errorf("yaml: cannot decode %s `%s` as a %s", ShortTag(rtag), in, ShortTag(tag))
	}()

	// Any text at all is a valid !!str or !!binary. Otherwise the first
	// byte is enough of a hint to know whether trying the keyword table
	// or a numeric parse is worth it.
	// The empty text is one of the null spellings in the keyword table.
	class := classWord
	if in != "" {
		class = firstByteClass[in[0]]
	}
	if class == classNone || tag == StrTag || tag == BinaryTag {
		return StrTag, in, nil
	}

	if lit, ok := literalsByText[in]; ok {
		return lit.tag, lit.value, nil
	}

	// Base-60 sexagesimal floats are a YAML 1.1 relic, dropped in 1.2,
	// and intentionally not resolved here.
	switch class {
	case classWord:
		// Every keyword spelling starting with this byte is already in
		// literalsByText; reaching here means it's just a plain string.
	case classDot:
		if f, err := strconv.ParseFloat(in, 64); err == nil {
			return FloatTag, f, nil
		}
	case classDigit, classSign:
		if v, ok := resolveNumeric(tag, in); ok {
			return v.tag, v.value, nil
		}
	}
	return StrTag, in, nil
}

// resolveNumeric handles every text starting with a digit or sign:
// timestamps, then decimal/binary/octal integers, then a fallback
// decimal float.
func resolveNumeric(tag, in string) (scalarLiteral, bool) {
	// Only consult a timestamp grammar for an untagged or explicitly
	// tagged timestamp scalar; a plain int shaped like "2001" must stay
	// an int unless asked otherwise.
	if tag == "" || tag == TimestampTag {
		if t, ok := parseTimestamp(in); ok {
			return scalarLiteral{tag: TimestampTag, value: t}, true
		}
	}

	plain := strings.ReplaceAll(in, "_", "")
	if v, ok := parseYAMLInt(plain); ok {
		return scalarLiteral{tag: IntTag, value: v}, true
	}
	if yamlStyleFloat.MatchString(plain) {
		if f, err := strconv.ParseFloat(plain, 64); err == nil {
			return scalarLiteral{tag: FloatTag, value: f}, true
		}
	}
	return scalarLiteral{}, false
}

// parseYAMLInt accepts decimal integers (including Go's extended
// strconv.ParseInt(base 0) forms), and additionally the 0b/0o binary
// and octal spellings with an explicit sign prefix that ParseInt's
// base-0 mode does not recognize on its own. It prefers a plain int
// when the value fits, falling back to int64 or uint64.
func parseYAMLInt(plain string) (interface{}, bool) {
	if v, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return shrinkInt(v), true
	}
	if v, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return v, true
	}

	for _, prefixed := range []struct {
		prefix string
		sign   string
		base   int
	}{
		{prefix: "0b", sign: "", base: 2},
		{prefix: "-0b", sign: "-", base: 2},
		{prefix: "0o", sign: "", base: 8},
		{prefix: "-0o", sign: "-", base: 8},
	} {
		digits, ok := strings.CutPrefix(plain, prefixed.prefix)
		if !ok {
			continue
		}
		if v, err := strconv.ParseInt(prefixed.sign+digits, prefixed.base, 64); err == nil {
			return shrinkInt(v), true
		}
		if prefixed.sign == "" {
			if v, err := strconv.ParseUint(digits, prefixed.base, 64); err == nil {
				return v, true
			}
		}
	}
	return nil, false
}

func shrinkInt(v int64) interface{} {
	if v == int64(int(v)) {
		return int(v)
	}
	return v
}

// EncodeBase64 encodes s as base64 that is broken up into multiple lines
// as appropriate for the resulting length.
func EncodeBase64(s string) string {
	const lineLen = 70
	encLen := base64.StdEncoding.EncodedLen(len(s))
	lines := encLen/lineLen + 1
	buf := make([]byte, encLen*2+lines)
	in := buf[0:encLen]
	out := buf[encLen:]
	base64.StdEncoding.Encode(in, []byte(s))
	k := 0
	for i := 0; i < len(in); i += lineLen {
		j := i + lineLen
		if j > len(in) {
			j = len(in)
		}
		k += copy(out[k:], in[i:j])
		if lines > 1 {
			out[k] = '\n'
			k++
		}
	}
	return string(out[:k])
}

// allowedTimestampFormats is a subset of the formats allowed by the
// regular expression at http://yaml.org/type/timestamp.html.
var allowedTimestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00", // RFC3339Nano with short date fields.
	"2006-1-2t15:4:5.999999999Z07:00", // same, lower-case "t".
	"2006-1-2 15:4:5.999999999",       // space separated, no time zone.
	"2006-1-2",                        // date only.
}

// parseTimestamp parses s as a timestamp string and reports whether it
// succeeded. Timestamp formats are defined at
// http://yaml.org/type/timestamp.html.
func parseTimestamp(s string) (time.Time, bool) {
	if !looksLikeDate(s) {
		return time.Time{}, false
	}
	for _, format := range allowedTimestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// looksLikeDate reports whether s starts with a 4-digit year and a
// dash, a cheap filter every real timestamp format above satisfies,
// before paying for the full set of time.Parse attempts.
func looksLikeDate(s string) bool {
	i := 0
	for ; i < len(s) && i < 5; i++ {
		if c := s[i]; c < '0' || c > '9' {
			break
		}
	}
	return i == 4 && i < len(s) && s[i] == '-'
}
