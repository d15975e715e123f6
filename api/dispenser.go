package api

import (
	"encoding/json"
	"net/http"
)

type dispenserResponse struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	DefaultBeverage string `json:"default_beverage"`
}

type patchDispenserRequest struct {
	Name            *string `json:"name"`
	DefaultBeverage *string `json:"default_beverage"`
}

func (a *Api) currentDispenser() (*dispenserResponse, error) {
	name, err := a.dispenser.GetName()
	if err != nil {
		return nil, err
	}

	defaultBeverage, err := a.dispenser.GetDefaultBeverage()
	if err != nil {
		return nil, err
	}

	return &dispenserResponse{
		Name:            name,
		Version:         a.version,
		DefaultBeverage: defaultBeverage,
	}, nil
}

func (a *Api) handleGetDispenser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := a.currentDispenser()
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}

func (a *Api) handlePatchDispenser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := patchDispenserRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.Name != nil {
			err := a.dispenser.SetName(*req.Name)
			if err != nil {
				a.jsonError(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		if req.DefaultBeverage != nil {
			err := a.dispenser.SetDefaultBeverage(*req.DefaultBeverage)
			if err != nil {
				a.jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		res, err := a.currentDispenser()
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}
