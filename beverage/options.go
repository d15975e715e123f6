package beverage

// Option is a boolean flag that modifies the base dispense sequence
type Option string

const (
	Sweet   Option = "sweet"
	Creamy  Option = "creamy"
	Fluffy  Option = "fluffy"
	Crunchy Option = "crunchy"
	Spicy   Option = "spicy"
)

var knownOptions = map[Option]bool{
	Sweet:   true,
	Creamy:  true,
	Fluffy:  true,
	Crunchy: true,
	Spicy:   true,
}

// Options maps option names to flags. Absent keys are false.
type Options map[Option]bool

// ParseOptions keeps only the recognized option keys.
func ParseOptions(raw map[string]bool) Options {
	options := Options{}

	for name, on := range raw {
		option := Option(name)
		if knownOptions[option] {
			options[option] = on
		}
	}

	return options
}

// Has reports whether the option is set. A nil Options has nothing set.
func (o Options) Has(option Option) bool {
	return o[option]
}

// Map returns the set options keyed by name, dropping false entries.
func (o Options) Map() map[string]bool {
	m := make(map[string]bool)

	for option, on := range o {
		if on && knownOptions[option] {
			m[string(option)] = true
		}
	}

	return m
}
