package beverage

// Driver performs one physical action per call. Calls are synchronous and
// are expected to always succeed.
type Driver interface {
	DispenseCup()
	HeatWater()
	PrepareGrounds()
	DispenseWater()
	DisposeOfGrounds()
	DispenseTeaBag()
	DispenseCocoaMix()
	DispenseSweetener()
	DispenseCream()
	DispenseWhippedCream()
	DispenseCondensedSoup()
	DispenseCroutons()
	DispenseHotSauce()
}

// Step names a single driver action
type Step int

const (
	DispenseCup Step = iota
	HeatWater
	PrepareGrounds
	DispenseWater
	DisposeOfGrounds
	DispenseTeaBag
	DispenseCocoaMix
	DispenseSweetener
	DispenseCream
	DispenseWhippedCream
	DispenseCondensedSoup
	DispenseCroutons
	DispenseHotSauce
)

var stepNames = [...]string{
	DispenseCup:           "dispense_cup",
	HeatWater:             "heat_water",
	PrepareGrounds:        "prepare_grounds",
	DispenseWater:         "dispense_water",
	DisposeOfGrounds:      "dispose_of_grounds",
	DispenseTeaBag:        "dispense_tea_bag",
	DispenseCocoaMix:      "dispense_cocoa_mix",
	DispenseSweetener:     "dispense_sweetener",
	DispenseCream:         "dispense_cream",
	DispenseWhippedCream:  "dispense_whipped_cream",
	DispenseCondensedSoup: "dispense_condensed_soup",
	DispenseCroutons:      "dispense_croutons",
	DispenseHotSauce:      "dispense_hot_sauce",
}

var stepActions = [...]func(Driver){
	DispenseCup:           Driver.DispenseCup,
	HeatWater:             Driver.HeatWater,
	PrepareGrounds:        Driver.PrepareGrounds,
	DispenseWater:         Driver.DispenseWater,
	DisposeOfGrounds:      Driver.DisposeOfGrounds,
	DispenseTeaBag:        Driver.DispenseTeaBag,
	DispenseCocoaMix:      Driver.DispenseCocoaMix,
	DispenseSweetener:     Driver.DispenseSweetener,
	DispenseCream:         Driver.DispenseCream,
	DispenseWhippedCream:  Driver.DispenseWhippedCream,
	DispenseCondensedSoup: Driver.DispenseCondensedSoup,
	DispenseCroutons:      Driver.DispenseCroutons,
	DispenseHotSauce:      Driver.DispenseHotSauce,
}

// Steps lists every driver action in declaration order
func Steps() []Step {
	steps := make([]Step, len(stepNames))
	for i := range stepNames {
		steps[i] = Step(i)
	}

	return steps
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "invalid_step"
	}

	return stepNames[s]
}

// Apply issues the driver call this step stands for.
func (s Step) Apply(d Driver) {
	if s < 0 || int(s) >= len(stepActions) {
		return
	}

	stepActions[s](d)
}
