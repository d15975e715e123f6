package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/the-lightning-land/brewd/beverage"
)

const (
	defaultConfigFilename = "brewd.conf"
	defaultDataDirname    = "data"
	defaultListen         = ":9000"
	defaultMachine        = "mock"
	defaultPulse          = 500 * time.Millisecond
)

var (
	defaultBrewdDir = func() string {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".brewd"
		}
		return filepath.Join(home, ".brewd")
	}()
	defaultConfigFile = filepath.Join(defaultBrewdDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(defaultBrewdDir, defaultDataDirname)
)

type raspberryConfig struct {
	Pulse            time.Duration `long:"pulse" description:"How long each relay is switched on"`
	CupPin           string        `long:"cuppin" description:"Relay pin that drops a cup"`
	HeaterPin        string        `long:"heaterpin" description:"Relay pin of the water heater"`
	GroundsPin       string        `long:"groundspin" description:"Relay pin that prepares coffee grounds"`
	WaterPin         string        `long:"waterpin" description:"Relay pin of the water valve"`
	DisposalPin      string        `long:"disposalpin" description:"Relay pin that disposes of grounds"`
	TeaBagPin        string        `long:"teabagpin" description:"Relay pin that drops a tea bag"`
	CocoaPin         string        `long:"cocoapin" description:"Relay pin that doses cocoa mix"`
	SweetenerPin     string        `long:"sweetenerpin" description:"Relay pin that doses sweetener"`
	CreamPin         string        `long:"creampin" description:"Relay pin that doses cream"`
	WhippedCreamPin  string        `long:"whippedcreampin" description:"Relay pin that doses whipped cream"`
	CondensedSoupPin string        `long:"souppin" description:"Relay pin that doses condensed soup"`
	CroutonsPin      string        `long:"croutonspin" description:"Relay pin that drops croutons"`
	HotSaucePin      string        `long:"hotsaucepin" description:"Relay pin that doses hot sauce"`
}

func (c *raspberryConfig) pins() map[beverage.Step]string {
	return map[beverage.Step]string{
		beverage.DispenseCup:           c.CupPin,
		beverage.HeatWater:             c.HeaterPin,
		beverage.PrepareGrounds:        c.GroundsPin,
		beverage.DispenseWater:         c.WaterPin,
		beverage.DisposeOfGrounds:      c.DisposalPin,
		beverage.DispenseTeaBag:        c.TeaBagPin,
		beverage.DispenseCocoaMix:      c.CocoaPin,
		beverage.DispenseSweetener:     c.SweetenerPin,
		beverage.DispenseCream:         c.CreamPin,
		beverage.DispenseWhippedCream:  c.WhippedCreamPin,
		beverage.DispenseCondensedSoup: c.CondensedSoupPin,
		beverage.DispenseCroutons:      c.CroutonsPin,
		beverage.DispenseHotSauce:      c.HotSaucePin,
	}
}

type mockConfig struct {
	Quiet bool `long:"quiet" description:"Do not print machine actions to stdout"`
}

type vendConfig struct {
	Beverage string `long:"vend" description:"Vend a single beverage and exit (coffee, tea, cocoa, tomato_soup)"`
	Sweet    bool   `long:"sweet" description:"Add sweetener"`
	Creamy   bool   `long:"creamy" description:"Add cream"`
	Fluffy   bool   `long:"fluffy" description:"Add whipped cream"`
	Crunchy  bool   `long:"crunchy" description:"Add croutons"`
	Spicy    bool   `long:"spicy" description:"Add hot sauce"`
}

func (c *vendConfig) options() map[string]bool {
	return map[string]bool{
		string(beverage.Sweet):   c.Sweet,
		string(beverage.Creamy):  c.Creamy,
		string(beverage.Fluffy):  c.Fluffy,
		string(beverage.Crunchy): c.Crunchy,
		string(beverage.Spicy):   c.Spicy,
	}
}

type config struct {
	ShowVersion bool             `short:"v" long:"version" description:"Display version information and exit"`
	ConfigFile  string           `long:"configfile" description:"Path to configuration file"`
	DataDir     string           `long:"datadir" description:"The directory to store brewd's data within"`
	Debug       bool             `long:"debug" description:"Start brewd in debug mode"`
	Listen      string           `long:"listen" description:"Address the api is served on"`
	Machine     string           `long:"machine" description:"The machine controller to use" choice:"raspberry" choice:"mock"`
	Raspberry   *raspberryConfig `group:"Raspberry" namespace:"raspberry"`
	Mock        *mockConfig      `group:"Mock" namespace:"mock"`
	Vend        *vendConfig      `group:"Vend"`
}

func defaultConfig() config {
	return config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		Listen:     defaultListen,
		Machine:    defaultMachine,
		Raspberry: &raspberryConfig{
			Pulse: defaultPulse,
		},
		Mock: &mockConfig{},
		Vend: &vendConfig{},
	}
}

// loadConfig reads the command line, then the config file it points to, and
// lets command line flags win over the file.
func loadConfig(args []string) (*config, error) {
	preCfg := defaultConfig()
	if _, err := flags.NewParser(&preCfg, flags.Default).ParseArgs(args); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	cfg.ConfigFile = preCfg.ConfigFile

	parser := flags.NewParser(&cfg, flags.Default)

	err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, err
		}
	}

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return &cfg, nil
}
