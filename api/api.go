package api

import (
	"net"
	"net/http"

	"github.com/go-errors/errors"
	"github.com/gorilla/mux"
	"github.com/the-lightning-land/brewd/dispenser"
)

// Compile time check for protocol compatibility
var _ dispenser.Api = (*Api)(nil)

type Config struct {
	Log     Logger
	Version string
}

type Api struct {
	dispenser *dispenser.Dispenser
	router    *mux.Router
	log       Logger
	version   string
}

func New(config *Config) *Api {
	api := &Api{
		router:  mux.NewRouter(),
		version: config.Version,
	}

	if config.Log != nil {
		api.log = config.Log
	} else {
		api.log = noopLogger{}
	}

	api.router.Use(api.loggingMiddleware)

	api.router.Handle("/api/v1/dispenser", api.handleGetDispenser()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/dispenser", api.handlePatchDispenser()).Methods(http.MethodPatch)

	api.router.Handle("/api/v1/beverages", api.handleGetBeverages()).Methods(http.MethodGet)

	api.router.Handle("/api/v1/vends", api.handlePostVend()).Methods(http.MethodPost)
	api.router.Handle("/api/v1/vends", api.handleGetVends()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/vends/events", api.handleGetVendEvents()).Methods(http.MethodGet)

	return api
}

func (a *Api) SetDispenser(dispenser *dispenser.Dispenser) {
	a.dispenser = dispenser
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *Api) Serve(l net.Listener) error {
	err := http.Serve(l, a.router)
	if err != nil {
		return errors.Errorf("Unable to serve api: %v", err)
	}

	return nil
}

func (a *Api) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.log.Debugf("%v %v", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}
