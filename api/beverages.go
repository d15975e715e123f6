package api

import (
	"net/http"

	"github.com/the-lightning-land/brewd/beverage"
)

type beverageResponse struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

func (a *Api) handleGetBeverages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := []*beverageResponse{}

		for _, kind := range beverage.Kinds() {
			options := []string{}
			for _, option := range kind.Options() {
				options = append(options, string(option))
			}

			res = append(res, &beverageResponse{
				Name:    kind.String(),
				Options: options,
			})
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}
