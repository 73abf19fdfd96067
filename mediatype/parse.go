// Copyright 2025 The Rivaas Authors
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

package mediatype

import (
	"fmt"
	"strings"

	"github.com/jaxgo/router/span"
)

// ParseError reports a failed header parse, along with the byte offset of
// the last successfully parsed position. A media-type parse failure is
// fatal for the whole header, not per-range: there is no partial Group to
// recover.
type ParseError struct {
	Header string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mediatype: parse error at byte %d: %s", e.Offset, e.Reason)
}

// Parse tokenizes header (a Content-Type or Accept value) into an ordered
// Group. It follows the grammar:
//
//	media-range = ","? token "/" token parameter*
//	parameter   = ows ";" ows token "=" (token | quoted-string)
//
// Ranges are comma-separated; a leading comma before the first range is
// rejected, and the parser must consume the entire header or it fails with
// the offset of the last successful parse.
func Parse(header string) (Group, error) {
	p := &parser{src: header}

	if p.peek() == ',' {
		return nil, &ParseError{Header: header, Offset: 0, Reason: "unexpected leading comma"}
	}

	var group Group
	for {
		p.skipOWS()
		if p.pos >= len(p.src) {
			break
		}

		m, err := p.parseMediaRange()
		if err != nil {
			return nil, err
		}
		group = append(group, m)
		p.lastGood = p.pos

		p.skipOWS()
		if p.pos >= len(p.src) {
			break
		}
		if p.src[p.pos] != ',' {
			return nil, &ParseError{Header: header, Offset: p.lastGood, Reason: "expected comma between media ranges"}
		}
		p.pos++ // consume comma
	}

	if p.pos != len(p.src) {
		return nil, &ParseError{Header: header, Offset: p.lastGood, Reason: "trailing unparsable input"}
	}

	return group, nil
}

type parser struct {
	src      string
	pos      int
	lastGood int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipOWS() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// parseMediaRange parses a single "type/subtype;param=val;..." range
// starting at p.pos.
func (p *parser) parseMediaRange() (MediaType, error) {
	typeStart := p.pos
	typeTok, ok := p.parseToken()
	if !ok {
		return MediaType{}, &ParseError{Header: p.src, Offset: p.lastGood, Reason: "expected type token"}
	}

	if p.peek() != '/' {
		return MediaType{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "expected '/' after type"}
	}
	p.pos++ // consume '/'

	subtypeTok, ok := p.parseToken()
	if !ok {
		return MediaType{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "expected subtype token"}
	}

	typ := strings.ToLower(typeTok)
	subtype := strings.ToLower(subtypeTok)

	if typ == "*" && subtype != "*" {
		return MediaType{}, &ParseError{Header: p.src, Offset: typeStart, Reason: "concrete subtype under wildcard type (*/concrete) is not allowed"}
	}

	m := MediaType{Type: typ, Subtype: subtype, Q: 1}

	for {
		save := p.pos
		p.skipOWS()
		if p.peek() != ';' {
			p.pos = save
			break
		}
		p.pos++ // consume ';'
		p.skipOWS()

		name, ok := p.parseToken()
		if !ok {
			return MediaType{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "expected parameter name"}
		}
		if p.peek() != '=' {
			return MediaType{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "expected '=' after parameter name"}
		}
		p.pos++ // consume '='

		valSpan, err := p.parseParamValue()
		if err != nil {
			return MediaType{}, err
		}

		if strings.EqualFold(name, QualityKey) {
			q, ok := parseQualityValue(valSpan.String())
			if !ok {
				return MediaType{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "invalid q value"}
			}
			m.Q = q
			continue
		}

		m.Params = append(m.Params, Param{Name: name, Value: valSpan})
	}

	m.raw = span.New(p.src, typeStart, p.pos)

	return m, nil
}

// parseToken consumes a run of RFC 7230 "token" characters:
//
//	token = [-!#%&'*+.^`|~\w$]+
func (p *parser) parseToken() (string, bool) {
	start := p.pos
	for p.pos < len(p.src) && isTokenChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", false
	}
	return p.src[start:p.pos], true
}

// parseParamValue parses either a bare token or a quoted-string and
// returns a span over its *value* content: the bare token span, or the
// quoted-string's interior span (quotes stripped, backslash-escapes left
// as-is — materialization never needs to unescape for comparison purposes
// since qdtext/quoted-pair differ only in the presence of a leading '\').
func (p *parser) parseParamValue() (span.Span, error) {
	if p.peek() == '"' {
		return p.parseQuotedString()
	}

	start := p.pos
	if _, ok := p.parseToken(); !ok {
		return span.Span{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "expected parameter value"}
	}
	return span.New(p.src, start, p.pos), nil
}

// parseQuotedString parses:
//
//	quoted-string = '"' (qdtext | quoted-pair)* '"'
//	qdtext        = HTAB / SP / %x21 / %x23-5B / %x5D-7E / obs-text
//	quoted-pair   = "\" (HTAB / SP / VCHAR / obs-text)
func (p *parser) parseQuotedString() (span.Span, error) {
	p.pos++ // consume opening '"'
	start := p.pos

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '"':
			interior := span.New(p.src, start, p.pos)
			p.pos++ // consume closing '"'
			return interior, nil
		case c == '\\':
			if p.pos+1 >= len(p.src) || !isQuotedPairChar(p.src[p.pos+1]) {
				return span.Span{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "invalid quoted-pair"}
			}
			p.pos += 2
		case isQdtextChar(c):
			p.pos++
		default:
			return span.Span{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "invalid character in quoted-string"}
		}
	}

	return span.Span{}, &ParseError{Header: p.src, Offset: p.pos, Reason: "unterminated quoted-string"}
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '!', '#', '%', '&', '\'', '*', '+', '.', '^', '`', '|', '~', '_', '$':
		return true
	}
	return false
}

// isToken reports whether s is entirely token characters (used by
// MediaType.String to decide whether a parameter value needs quoting).
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isQdtextChar(c byte) bool {
	return c == '\t' || c == ' ' || c == 0x21 ||
		(c >= 0x23 && c <= 0x5B) ||
		(c >= 0x5D && c <= 0x7E) ||
		c >= 0x80
}

func isQuotedPairChar(c byte) bool {
	return c == '\t' || c == ' ' || (c >= 0x21 && c <= 0x7E) || c >= 0x80
}

// parseQualityValue parses an HTTP qvalue:
//
//	qvalue = ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] )
//
// generalized slightly to validate *any* numeric value in [0,1]
// representable with at most 3 decimal digits (q*1e4 mod 10 == 0), rather
// than strictly requiring the RFC grammar's all-zero decimals after a
// leading "1". Stays byte-scanning (no regexp), in the style of
// accept.go's parseQuality.
func parseQualityValue(s string) (float64, bool) {
	if len(s) == 0 || len(s) > 5 {
		return 0, false
	}

	switch s[0] {
	case '0', '1':
	default:
		return 0, false
	}

	whole := int(s[0] - '0')

	if len(s) == 1 {
		return float64(whole), true
	}

	if s[1] != '.' {
		return 0, false
	}

	decimals := s[2:]
	if len(decimals) > 3 {
		return 0, false
	}

	frac := 0
	mult := 100
	for i := 0; i < len(decimals); i++ {
		c := decimals[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		frac += int(c-'0') * mult
		mult /= 10
	}

	q := float64(whole) + float64(frac)/1000.0
	if q > 1 {
		return 0, false
	}

	return q, true
}

// formatQuality renders q (already validated to ≤3 decimals) back to its
// shortest wire form, used by MediaType.String for the round-trip
// property (P5).
func formatQuality(q float64) string {
	thousandths := int(q*1000 + 0.5)
	switch {
	case thousandths == 1000:
		return "1"
	case thousandths%100 == 0:
		return fmt.Sprintf("0.%d", thousandths/100)
	case thousandths%10 == 0:
		return fmt.Sprintf("0.%02d", thousandths/10)
	default:
		return fmt.Sprintf("0.%03d", thousandths)
	}
}
