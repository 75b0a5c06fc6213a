package filter

import (
	"math"
	"strconv"
	"strings"

	"storefront/internal/model"
)

// Query keys understood by the translator
const (
	KeyAvailable        = "available"
	KeyProductVendor    = "productVendor"
	KeyProductType      = "productType"
	KeyMinPrice         = "minPrice"
	KeyMaxPrice         = "maxPrice"
	variantOptionMarker = "variantOption"
	colourGroupMarker   = "colour_group"
	metafieldNamespace  = "custom"
)

// Chip labels
const (
	LabelInStock    = "In stock"
	LabelOutOfStock = "Out of stock"
	LabelColour     = "colour"
)

// Result holds the output of a translation. Both slices are never nil.
type Result struct {
	Filters        []model.FilterPredicate `json:"filters" yaml:"filters"`
	AppliedFilters []model.AppliedFilter   `json:"appliedFilters" yaml:"appliedFilters"`
}

// rule maps a query parameter to a predicate and its chip. Rules are tried in
// order and the first match wins.
type rule struct {
	name   string
	match  func(p model.QueryParameter) bool
	handle func(p model.QueryParameter) (model.FilterPredicate, model.AppliedFilter)
}

// Translator converts URL query parameters into Storefront product filters
type Translator struct {
	rules []rule
}

// NewTranslator creates a translator with the storefront's filter rules
func NewTranslator() *Translator {
	knownAttributes := map[string]bool{
		KeyProductVendor: true,
		KeyProductType:   true,
	}

	return &Translator{
		rules: []rule{
			{
				name:   "availability",
				match:  func(p model.QueryParameter) bool { return p.Key == KeyAvailable },
				handle: availabilityFilter,
			},
			{
				name:   "attribute",
				match:  func(p model.QueryParameter) bool { return knownAttributes[p.Key] },
				handle: attributeFilter,
			},
			{
				name:   "variant option",
				match:  func(p model.QueryParameter) bool { return strings.Contains(p.Key, variantOptionMarker) },
				handle: variantOptionFilter,
			},
			{
				name:   "variant metafield",
				match:  func(p model.QueryParameter) bool { return strings.Contains(p.Key, colourGroupMarker) },
				handle: variantMetafieldFilter,
			},
		},
	}
}

// RuleNames lists the per-parameter rules in priority order
func (t *Translator) RuleNames() []string {
	names := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		names = append(names, r.name)
	}
	return names
}

// Translate builds the filter list and the applied filter chips for params.
// Unknown keys are ignored and malformed values degrade instead of failing.
// Price bounds are always appended after every other filter.
func (t *Translator) Translate(params []model.QueryParameter) Result {
	res := Result{
		Filters:        []model.FilterPredicate{},
		AppliedFilters: []model.AppliedFilter{},
	}

	for _, p := range params {
		for _, r := range t.rules {
			if !r.match(p) {
				continue
			}
			predicate, chip := r.handle(p)
			res.Filters = append(res.Filters, predicate)
			res.AppliedFilters = append(res.AppliedFilters, chip)
			break
		}
	}

	minRaw, hasMin := firstValue(params, KeyMinPrice)
	maxRaw, hasMax := firstValue(params, KeyMaxPrice)
	if !hasMin && !hasMax {
		return res
	}

	var price model.FilterPredicate
	price.Kind = model.KindPrice
	if hasMin {
		v := parsePrice(minRaw)
		price.Min = &v
		res.AppliedFilters = append(res.AppliedFilters, model.AppliedFilter{
			Label:       "Min: $" + formatPrice(v),
			SourceKey:   KeyMinPrice,
			SourceValue: minRaw,
		})
	}
	if hasMax {
		v := parsePrice(maxRaw)
		price.Max = &v
		res.AppliedFilters = append(res.AppliedFilters, model.AppliedFilter{
			Label:       "Max: $" + formatPrice(v),
			SourceKey:   KeyMaxPrice,
			SourceValue: maxRaw,
		})
	}
	res.Filters = append(res.Filters, price)

	return res
}

func availabilityFilter(p model.QueryParameter) (model.FilterPredicate, model.AppliedFilter) {
	inStock := p.Value == "true"
	label := LabelOutOfStock
	if inStock {
		label = LabelInStock
	}
	return model.Availability(inStock), applied(label, p)
}

func attributeFilter(p model.QueryParameter) (model.FilterPredicate, model.AppliedFilter) {
	return model.Attribute(p.Key, p.Value), applied(p.Value, p)
}

// variantOptionFilter expects values of the form "<option name>:<option value>".
// A value without a separator is taken as the option name with an empty
// value, and the chip shows the name.
func variantOptionFilter(p model.QueryParameter) (model.FilterPredicate, model.AppliedFilter) {
	name, value, found := strings.Cut(p.Value, ":")
	label := value
	if !found {
		label = name
	}
	return model.VariantOption(name, value), applied(label, p)
}

func variantMetafieldFilter(p model.QueryParameter) (model.FilterPredicate, model.AppliedFilter) {
	return model.VariantMetafield(metafieldNamespace, p.Key, p.Value), applied(LabelColour, p)
}

func applied(label string, p model.QueryParameter) model.AppliedFilter {
	return model.AppliedFilter{Label: label, SourceKey: p.Key, SourceValue: p.Value}
}

func firstValue(params []model.QueryParameter, key string) (string, bool) {
	for _, p := range params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// parsePrice reads a price the way a browser's Number() does: decimal or
// exponent notation, or an unsigned 0x/0o/0b integer. It returns 0 for
// anything that is not a finite non-zero number.
func parsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "_") {
		return 0
	}

	var v float64
	if base := radixBase(s); base != 0 {
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return 0
		}
		v = float64(n)
	} else {
		var err error
		v, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
	}

	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func radixBase(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// formatPrice prints the shortest representation of v, switching to
// exponent notation ("1e+21", "1e-7") outside [1e-6, 1e21).
func formatPrice(v float64) string {
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
