package filter

import (
	"net/url"
	"strings"

	"storefront/internal/model"
)

// ParseQuery splits a raw URL query into parameters, keeping their order and
// any repeated keys. Only '&' separates parameters; ';' is part of the value.
func ParseQuery(rawQuery string) []model.QueryParameter {
	params := []model.QueryParameter{}
	rawQuery = strings.TrimPrefix(rawQuery, "?")

	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		params = append(params, model.QueryParameter{
			Key:   unescape(key),
			Value: unescape(value),
		})
	}

	return params
}

// EncodeQuery is the inverse of ParseQuery
func EncodeQuery(params []model.QueryParameter) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Get returns the first value of key
func Get(params []model.QueryParameter, key string) string {
	v, _ := firstValue(params, key)
	return v
}

// unescape decodes a form-encoded component. '+' is a space and every valid
// %XX escape is decoded; a '%' that does not start one is kept as is.
func unescape(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '+':
			b = append(b, ' ')
		case s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			b = append(b, s[i])
		}
	}
	return string(b)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
