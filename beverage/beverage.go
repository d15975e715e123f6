// Package beverage decides which driver calls a vend issues and in what order.
package beverage

// stage is one entry of a recipe. A stage with an empty when is always issued.
type stage struct {
	step Step
	when Option
}

var hotWater = []stage{
	{step: DispenseCup},
	{step: HeatWater},
	{step: DispenseWater},
}

var recipes = map[Kind][]stage{
	Coffee: {
		{step: DispenseCup},
		{step: HeatWater},
		{step: PrepareGrounds},
		{step: DispenseWater},
		{step: DispenseSweetener, when: Sweet},
		{step: DispenseCream, when: Creamy},
		{step: DispenseWhippedCream, when: Fluffy},
		{step: DisposeOfGrounds},
	},
	Tea: {
		{step: DispenseCup},
		{step: HeatWater},
		{step: DispenseTeaBag},
		{step: DispenseWater},
		{step: DispenseSweetener, when: Sweet},
		{step: DispenseCream, when: Creamy},
	},
	Cocoa: {
		{step: DispenseCup},
		{step: HeatWater},
		{step: DispenseCocoaMix},
		{step: DispenseWater},
		{step: DispenseWhippedCream, when: Fluffy},
	},
	TomatoSoup: {
		{step: DispenseCup},
		{step: HeatWater},
		{step: DispenseCondensedSoup},
		{step: DispenseWater},
		{step: DispenseCroutons, when: Crunchy},
		{step: DispenseHotSauce, when: Spicy},
	},
}

func recipeFor(kind Kind) []stage {
	recipe, ok := recipes[kind]
	if !ok {
		return hotWater
	}

	return recipe
}

// Sequence returns the ordered driver steps for a vend of kind with options.
func Sequence(kind Kind, options Options) []Step {
	recipe := recipeFor(kind)
	steps := make([]Step, 0, len(recipe))

	for _, s := range recipe {
		if s.when != "" && !options.Has(s.when) {
			continue
		}

		steps = append(steps, s.step)
	}

	return steps
}

// Run issues steps on the driver in order.
func Run(d Driver, steps []Step) {
	for _, step := range steps {
		step.Apply(d)
	}
}

// Vend prepares one beverage on the driver.
func Vend(d Driver, kind Kind, options Options) {
	Run(d, Sequence(kind, options))
}
