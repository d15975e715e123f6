package machine

import "github.com/the-lightning-land/brewd/beverage"

// Machine is the hardware a dispenser vends on.
type Machine interface {
	beverage.Driver
	Start() error
	Stop() error
}
