package machine

import (
	"fmt"
	"io"
	"io/ioutil"
	"sync"

	"github.com/gookit/color"
	"github.com/the-lightning-land/brewd/beverage"
)

// Compile time check for protocol compatibility
var _ Machine = (*MockMachine)(nil)

type MockMachineConfig struct {
	// Output receives one line per action, ioutil.Discard when nil
	Output io.Writer
	Logger Logger
}

// MockMachine pretends to be hardware. It remembers every action it was asked
// to perform.
type MockMachine struct {
	out   io.Writer
	log   Logger
	mu    sync.Mutex
	steps []beverage.Step
}

func NewMockMachine(config *MockMachineConfig) *MockMachine {
	m := &MockMachine{
		out: config.Output,
		log: config.Logger,
	}

	if m.out == nil {
		m.out = ioutil.Discard
	}

	if m.log == nil {
		m.log = noopLogger{}
	}

	return m
}

func (m *MockMachine) Start() error {
	m.log.Infof("Started mock machine")
	return nil
}

func (m *MockMachine) Stop() error {
	m.log.Infof("Stopped mock machine")
	return nil
}

// Steps returns a copy of the actions performed since the last Reset.
func (m *MockMachine) Steps() []beverage.Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	steps := make([]beverage.Step, len(m.steps))
	copy(steps, m.steps)

	return steps
}

func (m *MockMachine) Reset() {
	m.mu.Lock()
	m.steps = nil
	m.mu.Unlock()
}

func (m *MockMachine) perform(step beverage.Step) {
	m.mu.Lock()
	m.steps = append(m.steps, step)
	m.mu.Unlock()

	m.log.Debugf("Performing %v", step)

	_, err := fmt.Fprintln(m.out, color.Cyan.Sprintf("* %v", step))
	if err != nil {
		m.log.Warnf("Could not write action %v: %v", step, err)
	}
}

func (m *MockMachine) DispenseCup()           { m.perform(beverage.DispenseCup) }
func (m *MockMachine) HeatWater()             { m.perform(beverage.HeatWater) }
func (m *MockMachine) PrepareGrounds()        { m.perform(beverage.PrepareGrounds) }
func (m *MockMachine) DispenseWater()         { m.perform(beverage.DispenseWater) }
func (m *MockMachine) DisposeOfGrounds()      { m.perform(beverage.DisposeOfGrounds) }
func (m *MockMachine) DispenseTeaBag()        { m.perform(beverage.DispenseTeaBag) }
func (m *MockMachine) DispenseCocoaMix()      { m.perform(beverage.DispenseCocoaMix) }
func (m *MockMachine) DispenseSweetener()     { m.perform(beverage.DispenseSweetener) }
func (m *MockMachine) DispenseCream()         { m.perform(beverage.DispenseCream) }
func (m *MockMachine) DispenseWhippedCream()  { m.perform(beverage.DispenseWhippedCream) }
func (m *MockMachine) DispenseCondensedSoup() { m.perform(beverage.DispenseCondensedSoup) }
func (m *MockMachine) DispenseCroutons()      { m.perform(beverage.DispenseCroutons) }
func (m *MockMachine) DispenseHotSauce()      { m.perform(beverage.DispenseHotSauce) }
