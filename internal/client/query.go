package client

import (
	"net/url"
	"strings"
)

// Query is one lookup against the countries API: the path below the base URL
// and any parameters added on top of the default field selection.
type Query struct {
	Segments []string
	Extra    url.Values
}

// With returns a copy of q carrying key=values as an extra parameter. Multiple
// values are comma joined, which is how the API takes lists.
func (q Query) With(key string, values ...string) Query {
	extra := cloneValues(q.Extra)
	extra.Set(key, strings.Join(values, ","))

	return Query{
		Segments: append([]string(nil), q.Segments...),
		Extra:    extra,
	}
}

// Params builds a fresh parameter set from the defaults and q's extras.
// Neither input is modified.
func (q Query) Params(fields []string) url.Values {
	params := url.Values{}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	for key, values := range q.Extra {
		params[key] = append([]string(nil), values...)
	}
	return params
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}

func queryAll() Query {
	return Query{Segments: []string{"all"}}
}

func queryName(name string) Query {
	return Query{Segments: []string{"name", name}}
}

func queryFullName(name string) Query {
	return queryName(name).With("fullText", "true")
}

func queryCode(code string) Query {
	return Query{Segments: []string{"alpha", code}}
}

func queryCodes(codes ...string) Query {
	return Query{Segments: []string{"alpha"}}.With("codes", codes...)
}

func queryCurrency(code string) Query {
	return Query{Segments: []string{"currency", code}}
}

func queryDemonym(demonym string) Query {
	return Query{Segments: []string{"demonym", demonym}}
}

func queryLanguage(lang string) Query {
	return Query{Segments: []string{"lang", lang}}
}

func queryCapital(capital string) Query {
	return Query{Segments: []string{"capital", capital}}
}

func queryRegion(region string) Query {
	return Query{Segments: []string{"region", region}}
}

func querySubregion(subregion string) Query {
	return Query{Segments: []string{"subregion", subregion}}
}

func queryTranslation(translation string) Query {
	return Query{Segments: []string{"translation", translation}}
}
