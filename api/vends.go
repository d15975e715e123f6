package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/the-lightning-land/brewd/brewdb"
)

type postVendRequest struct {
	Beverage string          `json:"beverage"`
	Options  map[string]bool `json:"options"`
}

type vendResponse struct {
	Id       uint64          `json:"id"`
	Beverage string          `json:"beverage"`
	Options  map[string]bool `json:"options"`
	Steps    []string        `json:"steps"`
	Time     time.Time       `json:"time"`
}

func newVendResponse(vend *brewdb.Vend) *vendResponse {
	return &vendResponse{
		Id:       vend.ID,
		Beverage: vend.Beverage,
		Options:  vend.Options,
		Steps:    vend.Steps,
		Time:     vend.Time,
	}
}

func (a *Api) handlePostVend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := postVendRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		vend, err := a.dispenser.Vend(req.Beverage, req.Options)
		if err != nil {
			// the beverage was served, only recording it failed
			a.log.Errorf("Could not record vend: %v", err)
		}

		a.jsonResponse(w, newVendResponse(vend), http.StatusCreated)
	}
}

func (a *Api) handleGetVends() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0

		if raw := r.URL.Query().Get("limit"); raw != "" {
			var err error
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				a.jsonError(w, "limit must be a positive number", http.StatusBadRequest)
				return
			}
		}

		vends, err := a.dispenser.History(limit)
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		res := make([]*vendResponse, len(vends))
		for i, vend := range vends {
			res[i] = newVendResponse(vend)
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}

func (a *Api) handleGetVendEvents() http.HandlerFunc {
	upgrader := &websocket.Upgrader{}

	return func(w http.ResponseWriter, r *http.Request) {
		client := a.dispenser.SubscribeVends()

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			client.Cancel()
			a.log.Errorf("Could not upgrade connection: %v", err)
			return
		}

		// read pump
		go func() {
			defer client.Cancel()
			defer c.Close()

			c.SetReadLimit(512)
			c.SetReadDeadline(time.Now().Add(60 * time.Second))
			c.SetPongHandler(func(string) error {
				c.SetReadDeadline(time.Now().Add(60 * time.Second))
				return nil
			})

			for {
				_, _, err := c.ReadMessage()
				if err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						a.log.Errorf("unexpected websocket closure: %v", err)
					}
					break
				}
			}
		}()

		// write pump
		go func() {
			defer c.Close()

			ticker := time.NewTicker(54 * time.Second)
			defer ticker.Stop()

			for {
				select {
				case vend, ok := <-client.Vends:
					c.SetWriteDeadline(time.Now().Add(10 * time.Second))

					if !ok {
						c.WriteMessage(websocket.CloseMessage, []byte{})
						return
					}

					err := c.WriteJSON(newVendResponse(vend))
					if err != nil {
						return
					}
				case <-ticker.C:
					c.SetWriteDeadline(time.Now().Add(10 * time.Second))
					if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
	}
}
