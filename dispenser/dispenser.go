package dispenser

import (
	"net"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/the-lightning-land/brewd/beverage"
	"github.com/the-lightning-land/brewd/brewdb"
	"github.com/the-lightning-land/brewd/machine"
)

const vendClientBuffer = 16

type Dispenser struct {
	machine          machine.Machine
	db               *brewdb.DB
	log              Logger
	api              Api
	listen           string
	done             chan struct{}
	shutdownOnce     sync.Once
	vendMtx          sync.Mutex
	vendClients      map[uint32]*VendClient
	vendClientMtx    sync.Mutex
	nextVendClientID uint32
	listenerMtx      sync.Mutex
	apiListeners     []net.Listener
	now              func() time.Time
}

// VendClient receives every completed vend until it is cancelled.
type VendClient struct {
	Vends     chan *brewdb.Vend
	Id        uint32
	dispenser *Dispenser
}

func NewDispenser(config *Config) *Dispenser {
	dispenser := &Dispenser{
		machine:     config.Machine,
		db:          config.DB,
		log:         config.Logger,
		api:         config.Api,
		listen:      config.Listen,
		done:        make(chan struct{}),
		vendClients: make(map[uint32]*VendClient),
		now:         time.Now,
	}

	if dispenser.log == nil {
		dispenser.log = noopLogger{}
	}

	if dispenser.api != nil {
		dispenser.api.SetDispenser(dispenser)
	}

	return dispenser
}

// Run serves the api and blocks until Shutdown is called.
func (d *Dispenser) Run() error {
	d.log.Infof("Starting dispenser...")

	if d.api != nil && d.listen != "" {
		lis, err := net.Listen("tcp", d.listen)
		if err != nil {
			return errors.Errorf("Unable to listen on %v: %v", d.listen, err)
		}

		d.listenerMtx.Lock()
		d.apiListeners = append(d.apiListeners, lis)
		d.listenerMtx.Unlock()

		d.log.Infof("Serving api on %v", lis.Addr())

		go func() {
			err := d.api.Serve(lis)
			if err != nil {
				d.log.Errorf("Could not serve api: %v", err)
			}
		}()
	}

	<-d.done

	return nil
}

func (d *Dispenser) Shutdown() {
	d.shutdownOnce.Do(func() {
		d.listenerMtx.Lock()
		for _, lis := range d.apiListeners {
			err := lis.Close()
			if err != nil {
				d.log.Errorf("Could not close listener: %v", err)
			}
		}
		d.apiListeners = nil
		d.listenerMtx.Unlock()

		close(d.done)
	})
}

// Vend prepares a beverage on the machine. An empty name vends the default
// beverage, an unknown one vends hot water. The vend itself always completes;
// the returned error only reports a failure to record it.
func (d *Dispenser) Vend(name string, options map[string]bool) (*brewdb.Vend, error) {
	if name == "" {
		defaultBeverage, err := d.GetDefaultBeverage()
		if err != nil {
			d.log.Warnf("Could not read default beverage, using %v: %v", brewdb.DefaultBeverage, err)
			defaultBeverage = brewdb.DefaultBeverage
		}

		name = defaultBeverage
	}

	kind := beverage.ParseKind(name)
	opts := beverage.ParseOptions(options)
	steps := beverage.Sequence(kind, opts)

	if kind == beverage.Unknown {
		d.log.Infof("Unknown beverage %q, serving hot water", name)
	}

	d.log.Infof("Vending %v with %v", kind, opts.Map())

	d.vendMtx.Lock()
	beverage.Run(d.machine, steps)
	d.vendMtx.Unlock()

	vend := &brewdb.Vend{
		Beverage: kind.String(),
		Options:  opts.Map(),
		Steps:    make([]string, len(steps)),
		Time:     d.now().UTC(),
	}

	for i, step := range steps {
		vend.Steps[i] = step.String()
	}

	err := d.db.AddVend(vend)

	d.notifyVend(vend)

	if err != nil {
		return vend, errors.Errorf("Could not record vend: %v", err)
	}

	d.log.Debugf("Recorded vend %v", vend.ID)

	return vend, nil
}

func (d *Dispenser) History(limit int) ([]*brewdb.Vend, error) {
	vends, err := d.db.ListVends(limit)
	if err != nil {
		return nil, errors.Errorf("Failed listing vends: %v", err)
	}

	return vends, nil
}

func (d *Dispenser) GetName() (string, error) {
	name, err := d.db.GetName()
	if err != nil {
		return "", errors.Errorf("Failed getting name: %v", err)
	}

	return name, nil
}

func (d *Dispenser) SetName(name string) error {
	d.log.Infof("Setting name to %v", name)

	err := d.db.SetName(name)
	if err != nil {
		return errors.Errorf("Failed setting name: %v", err)
	}

	return nil
}

func (d *Dispenser) GetDefaultBeverage() (string, error) {
	name, err := d.db.GetDefaultBeverage()
	if err != nil {
		return "", errors.Errorf("Failed getting default beverage: %v", err)
	}

	return name, nil
}

func (d *Dispenser) SetDefaultBeverage(name string) error {
	kind := beverage.ParseKind(name)
	if kind == beverage.Unknown {
		return errors.Errorf("Unknown beverage %q", name)
	}

	d.log.Infof("Setting default beverage to %v", kind)

	err := d.db.SetDefaultBeverage(kind.String())
	if err != nil {
		return errors.Errorf("Failed setting default beverage: %v", err)
	}

	return nil
}

func (d *Dispenser) SubscribeVends() *VendClient {
	client := &VendClient{
		Vends:     make(chan *brewdb.Vend, vendClientBuffer),
		dispenser: d,
	}

	d.vendClientMtx.Lock()
	client.Id = d.nextVendClientID
	d.nextVendClientID++
	d.vendClients[client.Id] = client
	d.vendClientMtx.Unlock()

	return client
}

// notifyVend hands vend to every subscriber without waiting on slow ones.
func (d *Dispenser) notifyVend(vend *brewdb.Vend) {
	d.vendClientMtx.Lock()
	defer d.vendClientMtx.Unlock()

	for id, client := range d.vendClients {
		select {
		case client.Vends <- vend:
		default:
			d.log.Warnf("Dropping vend for slow client %v", id)
		}
	}
}

func (c *VendClient) Cancel() {
	c.dispenser.vendClientMtx.Lock()
	defer c.dispenser.vendClientMtx.Unlock()

	if _, ok := c.dispenser.vendClients[c.Id]; !ok {
		return
	}

	delete(c.dispenser.vendClients, c.Id)
	close(c.Vends)
}
