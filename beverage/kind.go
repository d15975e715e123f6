package beverage

import "strings"

// Kind is the requested beverage category
type Kind int

const (
	Unknown Kind = iota
	Coffee
	Tea
	Cocoa
	TomatoSoup
)

var kindNames = map[Kind]string{
	Unknown:    "hot_water",
	Coffee:     "coffee",
	Tea:        "tea",
	Cocoa:      "cocoa",
	TomatoSoup: "tomato_soup",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return kindNames[Unknown]
	}

	return name
}

// ParseKind resolves a beverage name. An empty name is coffee, anything
// unrecognized is Unknown and will be served as plain hot water.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)

	if name == "" {
		return Coffee
	}

	for kind, kindName := range kindNames {
		if kind != Unknown && kindName == name {
			return kind
		}
	}

	return Unknown
}

// Kinds lists the beverages on the menu, excluding the hot water fallback.
func Kinds() []Kind {
	return []Kind{Coffee, Tea, Cocoa, TomatoSoup}
}

// Options returns the options this kind honours, in the order they are applied.
func (k Kind) Options() []Option {
	var options []Option

	for _, s := range recipeFor(k) {
		if s.when != "" {
			options = append(options, s.when)
		}
	}

	return options
}
