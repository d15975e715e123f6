package machine

import (
	"time"

	"github.com/go-errors/errors"
	"github.com/the-lightning-land/brewd/beverage"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// Compile time check for protocol compatibility
var _ Machine = (*DispenserMachine)(nil)

const defaultPulse = 500 * time.Millisecond

type DispenserMachineConfig struct {
	// Pins maps each action to the GPIO pin name of its relay, e.g. "GPIO17".
	// Actions without a pin are skipped.
	Pins map[beverage.Step]string
	// Pulse is how long a relay is held high per action
	Pulse  time.Duration
	Logger Logger
}

// DispenserMachine drives relays attached to the GPIO header of a Raspberry Pi.
type DispenserMachine struct {
	pinNames map[beverage.Step]string
	pins     map[beverage.Step]gpio.PinIO
	pulse    time.Duration
	log      Logger
	sleep    func(time.Duration)
}

func NewDispenserMachine(config *DispenserMachineConfig) *DispenserMachine {
	m := &DispenserMachine{
		pinNames: config.Pins,
		pins:     make(map[beverage.Step]gpio.PinIO),
		pulse:    config.Pulse,
		log:      config.Logger,
		sleep:    time.Sleep,
	}

	if m.pulse <= 0 {
		m.pulse = defaultPulse
	}

	if m.log == nil {
		m.log = noopLogger{}
	}

	return m
}

func (m *DispenserMachine) Start() error {
	if _, err := host.Init(); err != nil {
		return errors.Errorf("Could not initialize periph: %v", err)
	}

	for step, name := range m.pinNames {
		if name == "" {
			continue
		}

		pin := gpioreg.ByName(name)
		if pin == nil {
			return errors.Errorf("Could not find pin %v for %v", name, step)
		}

		if err := pin.Out(gpio.Low); err != nil {
			return errors.Errorf("Could not set pin %v low: %v", name, err)
		}

		m.pins[step] = pin
	}

	m.log.Infof("Started dispenser machine with %v relays", len(m.pins))

	return nil
}

func (m *DispenserMachine) Stop() error {
	for step, pin := range m.pins {
		if err := pin.Out(gpio.Low); err != nil {
			return errors.Errorf("Could not reset relay for %v: %v", step, err)
		}
	}

	return nil
}

// actuate pulses the relay of step. Failures are logged, the vend carries on.
func (m *DispenserMachine) actuate(step beverage.Step) {
	pin, ok := m.pins[step]
	if !ok {
		m.log.Warnf("No relay configured for %v, skipping", step)
		return
	}

	m.log.Debugf("Pulsing %v on %v for %v", step, pin, m.pulse)

	if err := pin.Out(gpio.High); err != nil {
		m.log.Errorf("Could not switch on relay for %v: %v", step, err)
		return
	}

	m.sleep(m.pulse)

	if err := pin.Out(gpio.Low); err != nil {
		m.log.Errorf("Could not switch off relay for %v: %v", step, err)
	}
}

func (m *DispenserMachine) DispenseCup()           { m.actuate(beverage.DispenseCup) }
func (m *DispenserMachine) HeatWater()             { m.actuate(beverage.HeatWater) }
func (m *DispenserMachine) PrepareGrounds()        { m.actuate(beverage.PrepareGrounds) }
func (m *DispenserMachine) DispenseWater()         { m.actuate(beverage.DispenseWater) }
func (m *DispenserMachine) DisposeOfGrounds()      { m.actuate(beverage.DisposeOfGrounds) }
func (m *DispenserMachine) DispenseTeaBag()        { m.actuate(beverage.DispenseTeaBag) }
func (m *DispenserMachine) DispenseCocoaMix()      { m.actuate(beverage.DispenseCocoaMix) }
func (m *DispenserMachine) DispenseSweetener()     { m.actuate(beverage.DispenseSweetener) }
func (m *DispenserMachine) DispenseCream()         { m.actuate(beverage.DispenseCream) }
func (m *DispenserMachine) DispenseWhippedCream()  { m.actuate(beverage.DispenseWhippedCream) }
func (m *DispenserMachine) DispenseCondensedSoup() { m.actuate(beverage.DispenseCondensedSoup) }
func (m *DispenserMachine) DispenseCroutons()      { m.actuate(beverage.DispenseCroutons) }
func (m *DispenserMachine) DispenseHotSauce()      { m.actuate(beverage.DispenseHotSauce) }
