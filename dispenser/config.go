package dispenser

import (
	"github.com/the-lightning-land/brewd/brewdb"
	"github.com/the-lightning-land/brewd/machine"
)

type Config struct {
	Machine machine.Machine
	DB      *brewdb.DB
	Logger  Logger
	Api     Api
	// Listen is the address the api is served on, e.g. ":9000"
	Listen string
}
