package csvparse

import "seo-content-go/pkg/keyword"

// field is one target attribute of keyword.Record with the normalized header names
// that can carry it, most specific first. Supporting a new exporter means extending
// this table.
type field struct {
	name    string
	aliases []string
	assign  func(r *keyword.Record, value string)
}

var fields = []field{
	{"keyword", []string{"keywords", "keyword", "kw", "query"}, func(r *keyword.Record, v string) {
		r.Keyword = v
	}},
	{"volume", []string{"volume", "vol", "search volume"}, func(r *keyword.Record, v string) {
		r.Volume = nonNegative(ParseInt(v))
	}},
	{"cpc", []string{"cpc medio", "cpc", "cost per click"}, func(r *keyword.Record, v string) {
		if f := ParseFloat(v); f > 0 {
			r.CPC = f
		}
	}},
	{"difficulty", []string{"keyword difficulty", "kd", "difficulty"}, func(r *keyword.Record, v string) {
		r.Difficulty = nonNegative(ParseInt(v))
	}},
	{"opportunity", []string{"keyword opportunity", "ko", "opportunity"}, func(r *keyword.Record, v string) {
		r.Opportunity = min(nonNegative(ParseInt(v)), 100)
	}},
	{"search_appearance", []string{"sa", "search appearance"}, func(r *keyword.Record, v string) {
		r.SearchAppearance = nonNegative(ParseInt(v))
	}},
	{"commercial_intent", []string{"ic", "intent commerciale", "commercial intent"}, func(r *keyword.Record, v string) {
		r.CommercialIntent = nonNegative(ParseInt(v))
	}},
}

// resolve returns the first alias of f present in row with a non-empty value.
func (f field) resolve(row map[string]string) (string, bool) {
	for _, alias := range f.aliases {
		if v := row[alias]; v != "" {
			return v, true
		}
	}
	return "", false
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
