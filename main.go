package main

import (
	"io"
	"io/ioutil"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/the-lightning-land/brewd/api"
	"github.com/the-lightning-land/brewd/brewdb"
	"github.com/the-lightning-land/brewd/dispenser"
	"github.com/the-lightning-land/brewd/machine"
)

var (
	// Commit stores the current commit hash of this build. This should be set using -ldflags during compilation.
	Commit string
	// Version stores the version string of this build. This should be set using -ldflags during compilation.
	Version string
	// Date stores the date of this build. This should be set using -ldflags during compilation.
	Date string
)

// brewdMain is the true entry point for brewd. This is required since defers
// created in the top-level scope of a main method aren't executed if os.Exit() is called.
func brewdMain() error {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// Load CLI configuration and defaults
	cfg, err := loadConfig(os.Args[1:])
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	// Set logger into debug mode if called with --debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	log.Debug("Loaded config.")

	// Print version of the daemon
	log.Infof("Version %s (commit %s)", Version, Commit)
	log.Infof("Built on %s", Date)

	// Stop here if only version was requested
	if cfg.ShowVersion {
		return nil
	}

	// brew.db persistently stores the dispenser settings and every vend
	brewDB, err := brewdb.Open(cfg.DataDir)
	if err != nil {
		return errors.Errorf("Could not open brew.db: %v", err)
	}

	log.Infof("Opened %v", brewDB.Path())

	defer func() {
		err := brewDB.Close()
		if err != nil {
			log.Errorf("Could not close brew.db: %v", err)
		} else {
			log.Info("Closed brew.db.")
		}
	}()

	// The hardware controller
	var m machine.Machine

	switch cfg.Machine {
	case "raspberry":
		m = machine.NewDispenserMachine(&machine.DispenserMachineConfig{
			Pins:   cfg.Raspberry.pins(),
			Pulse:  cfg.Raspberry.Pulse,
			Logger: log.WithField("system", "machine"),
		})

		log.Infof("Created Raspberry Pi machine with relay pulse %v.", cfg.Raspberry.Pulse)
	case "mock":
		var out io.Writer = os.Stdout
		if cfg.Mock.Quiet {
			out = ioutil.Discard
		}

		m = machine.NewMockMachine(&machine.MockMachineConfig{
			Output: out,
			Logger: log.WithField("system", "machine"),
		})

		log.Info("Created a mock machine.")
	default:
		return errors.Errorf("Unknown machine type %v", cfg.Machine)
	}

	if err := m.Start(); err != nil {
		return errors.Errorf("Could not start machine: %v", err)
	}

	defer func() {
		err := m.Stop()
		if err != nil {
			log.Errorf("Could not properly stop machine: %v", err)
		} else {
			log.Infof("Stopped machine.")
		}
	}()

	// create subsystem responsible for the http api
	api := api.New(&api.Config{
		Log:     log.WithField("system", "api"),
		Version: Version,
	})

	log.Infof("Created API")

	// central controller for everything the dispenser does
	dispenser := dispenser.NewDispenser(&dispenser.Config{
		Machine: m,
		DB:      brewDB,
		Logger:  log.WithField("system", "dispenser"),
		Api:     api,
		Listen:  cfg.Listen,
	})

	log.Infof("Created dispenser.")

	// a single vend was requested from the command line
	if cfg.Vend.Beverage != "" {
		vend, err := dispenser.Vend(cfg.Vend.Beverage, cfg.Vend.options())
		if err != nil {
			return errors.Errorf("Failed vending %v: %v", cfg.Vend.Beverage, err)
		}

		log.Infof("Served %v in %v steps.", vend.Beverage, len(vend.Steps))

		return nil
	}

	// Handle interrupt signals correctly
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		sig := <-signals
		log.Info(sig)
		log.Info("Received an interrupt, stopping dispenser...")
		dispenser.Shutdown()
	}()

	// blocks until the dispenser is shut down
	err = dispenser.Run()
	if err != nil {
		return errors.Errorf("Failed running dispenser: %v", err)
	}

	// finish with no error
	return nil
}

func main() {
	// Call the "real" main in a nested manner so the defers will properly
	// be executed in the case of a graceful shutdown.
	if err := brewdMain(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			log.WithError(err).Println("Failed running brewd.")
		}
		os.Exit(1)
	}
}
