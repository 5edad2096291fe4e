package domain

import "strings"

const NoCapital = "None"

type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type CountryFlags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Country is the subset of a REST Countries v3.1 object selected by the fields parameter.
type Country struct {
	Name    CountryName  `json:"name"`
	Capital []string     `json:"capital"`
	Flags   CountryFlags `json:"flags"`
}

// CountryRow is a country flattened to display columns.
type CountryRow struct {
	Name    string
	Capital string
	Flag    string
}

// CapitalCity collapses the capital list: "None" when empty, the entry itself
// when there is one, and a comma separated list otherwise.
func (c Country) CapitalCity() string {
	switch len(c.Capital) {
	case 0:
		return NoCapital
	case 1:
		return c.Capital[0]
	default:
		return strings.Join(c.Capital, ", ")
	}
}

func (c Country) Row() CountryRow {
	return CountryRow{
		Name:    c.Name.Common,
		Capital: c.CapitalCity(),
		Flag:    c.Flags.PNG,
	}
}
