package beverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingDriver struct {
	calls []string
}

func (r *recordingDriver) record(name string)     { r.calls = append(r.calls, name) }
func (r *recordingDriver) DispenseCup()           { r.record("dispense_cup") }
func (r *recordingDriver) HeatWater()             { r.record("heat_water") }
func (r *recordingDriver) PrepareGrounds()        { r.record("prepare_grounds") }
func (r *recordingDriver) DispenseWater()         { r.record("dispense_water") }
func (r *recordingDriver) DisposeOfGrounds()      { r.record("dispose_of_grounds") }
func (r *recordingDriver) DispenseTeaBag()        { r.record("dispense_tea_bag") }
func (r *recordingDriver) DispenseCocoaMix()      { r.record("dispense_cocoa_mix") }
func (r *recordingDriver) DispenseSweetener()     { r.record("dispense_sweetener") }
func (r *recordingDriver) DispenseCream()         { r.record("dispense_cream") }
func (r *recordingDriver) DispenseWhippedCream()  { r.record("dispense_whipped_cream") }
func (r *recordingDriver) DispenseCondensedSoup() { r.record("dispense_condensed_soup") }
func (r *recordingDriver) DispenseCroutons()      { r.record("dispense_croutons") }
func (r *recordingDriver) DispenseHotSauce()      { r.record("dispense_hot_sauce") }

func vend(kind Kind, options Options) []string {
	d := &recordingDriver{}
	Vend(d, kind, options)
	return d.calls
}

func count(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func index(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func TestVend(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		options Options
		want    []string
	}{
		{
			name: "plain coffee",
			kind: Coffee,
			want: []string{"dispense_cup", "heat_water", "prepare_grounds", "dispense_water", "dispose_of_grounds"},
		},
		{
			name:    "coffee with everything",
			kind:    Coffee,
			options: Options{Sweet: true, Creamy: true, Fluffy: true},
			want: []string{"dispense_cup", "heat_water", "prepare_grounds", "dispense_water",
				"dispense_sweetener", "dispense_cream", "dispense_whipped_cream", "dispose_of_grounds"},
		},
		{
			name:    "sweet creamy tea",
			kind:    Tea,
			options: Options{Sweet: true, Creamy: true},
			want:    []string{"dispense_cup", "heat_water", "dispense_tea_bag", "dispense_water", "dispense_sweetener", "dispense_cream"},
		},
		{
			name:    "fluffy cocoa",
			kind:    Cocoa,
			options: Options{Fluffy: true},
			want:    []string{"dispense_cup", "heat_water", "dispense_cocoa_mix", "dispense_water", "dispense_whipped_cream"},
		},
		{
			name:    "crunchy spicy soup",
			kind:    TomatoSoup,
			options: Options{Crunchy: true, Spicy: true},
			want:    []string{"dispense_cup", "heat_water", "dispense_condensed_soup", "dispense_water", "dispense_croutons", "dispense_hot_sauce"},
		},
		{
			name:    "unknown is hot water",
			kind:    Unknown,
			options: Options{Sweet: true, Creamy: true, Fluffy: true, Crunchy: true, Spicy: true},
			want:    []string{"dispense_cup", "heat_water", "dispense_water"},
		},
		{
			name: "out of range kind is hot water",
			kind: Kind(42),
			want: []string{"dispense_cup", "heat_water", "dispense_water"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vend(tt.kind, tt.options))
		})
	}
}

func TestTeaNeverDisposesGrounds(t *testing.T) {
	calls := vend(Tea, Options{Sweet: true, Creamy: true})
	assert.Zero(t, count(calls, "dispose_of_grounds"))
}

func TestTeaIgnoresFluffy(t *testing.T) {
	calls := vend(Tea, Options{Fluffy: true})
	assert.Zero(t, count(calls, "dispense_whipped_cream"))
}

func TestCocoaIgnoresSweetAndCreamy(t *testing.T) {
	calls := vend(Cocoa, Options{Sweet: true, Creamy: true})

	assert.Zero(t, count(calls, "dispense_sweetener"))
	assert.Zero(t, count(calls, "dispense_cream"))

	mix := index(calls, "dispense_cocoa_mix")
	assert.Greater(t, mix, index(calls, "heat_water"))
	assert.Less(t, mix, index(calls, "dispense_water"))
}

func TestFluffyCocoaWhipsOnceAfterWater(t *testing.T) {
	calls := vend(Cocoa, Options{Fluffy: true})

	assert.Equal(t, 1, count(calls, "dispense_whipped_cream"))
	assert.Greater(t, index(calls, "dispense_whipped_cream"), index(calls, "dispense_water"))
}

func TestFalseOptionsAreIgnored(t *testing.T) {
	assert.Equal(t, vend(Coffee, nil), vend(Coffee, Options{Sweet: false, Creamy: false}))
}

func TestSequenceMatchesDriverCalls(t *testing.T) {
	for _, kind := range append(Kinds(), Unknown) {
		options := Options{Sweet: true, Fluffy: true, Spicy: true}

		var names []string
		for _, step := range Sequence(kind, options) {
			names = append(names, step.String())
		}

		assert.Equal(t, names, vend(kind, options), kind.String())
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"":            Coffee,
		"coffee":      Coffee,
		"Tea":         Tea,
		" cocoa ":     Cocoa,
		"tomato-soup": TomatoSoup,
		"Tomato Soup": TomatoSoup,
		"apple_cider": Unknown,
		"hot_water":   Unknown,
		"lemonade":    Unknown,
	}

	for name, want := range tests {
		assert.Equal(t, want, ParseKind(name), name)
	}
}

func TestParseOptions(t *testing.T) {
	options := ParseOptions(map[string]bool{"sweet": true, "salty": true, "creamy": false})

	assert.Equal(t, Options{Sweet: true, Creamy: false}, options)
	assert.Equal(t, map[string]bool{"sweet": true}, options.Map())
}

func TestKindOptions(t *testing.T) {
	assert.Equal(t, []Option{Sweet, Creamy, Fluffy}, Coffee.Options())
	assert.Equal(t, []Option{Sweet, Creamy}, Tea.Options())
	assert.Equal(t, []Option{Fluffy}, Cocoa.Options())
	assert.Equal(t, []Option{Crunchy, Spicy}, TomatoSoup.Options())
	assert.Empty(t, Unknown.Options())
}

func TestStepNames(t *testing.T) {
	for _, step := range Steps() {
		assert.NotEqual(t, "invalid_step", step.String())
	}

	assert.Len(t, Steps(), 13)
	assert.Equal(t, "invalid_step", Step(-1).String())
}
