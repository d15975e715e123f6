package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/the-lightning-land/brewd/brewdb"
	"github.com/the-lightning-land/brewd/dispenser"
	"github.com/the-lightning-land/brewd/machine"
)

func newTestServer(t *testing.T) (*httptest.Server, *machine.MockMachine) {
	t.Helper()

	db, err := brewdb.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := machine.NewMockMachine(&machine.MockMachineConfig{})
	a := New(&Config{Version: "test"})

	dispenser.NewDispenser(&dispenser.Config{
		Machine: m,
		DB:      db,
		Api:     a,
	})

	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)

	return srv, m
}

func doJSON(t *testing.T, method, url string, body interface{}, v interface{}) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, url, &payload)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if v != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	}

	return res.StatusCode
}

func TestPostVend(t *testing.T) {
	srv, m := newTestServer(t)

	res := vendResponse{}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/vends", &postVendRequest{
		Beverage: "tea",
		Options:  map[string]bool{"sweet": true, "creamy": true, "fluffy": true},
	}, &res)

	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "tea", res.Beverage)
	assert.Equal(t, []string{"dispense_cup", "heat_water", "dispense_tea_bag", "dispense_water", "dispense_sweetener", "dispense_cream"}, res.Steps)
	assert.Len(t, m.Steps(), 6)
}

func TestPostVendRejectsGarbage(t *testing.T) {
	srv, m := newTestServer(t)

	res, err := http.Post(srv.URL+"/api/v1/vends", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, m.Steps())
}

func TestGetVends(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, b := range []string{"coffee", "lemonade", "cocoa"} {
		doJSON(t, http.MethodPost, srv.URL+"/api/v1/vends", &postVendRequest{Beverage: b}, nil)
	}

	var res []vendResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/vends?limit=2", nil, &res)

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, res, 2)
	assert.Equal(t, "cocoa", res[0].Beverage)
	assert.Equal(t, "hot_water", res[1].Beverage)
	assert.Equal(t, []string{"dispense_cup", "heat_water", "dispense_water"}, res[1].Steps)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/vends?limit=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetBeverages(t *testing.T) {
	srv, _ := newTestServer(t)

	var res []beverageResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/beverages", nil, &res)

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, res, 4)
	assert.Equal(t, beverageResponse{Name: "cocoa", Options: []string{"fluffy"}}, res[2])
}

func TestDispenserSettings(t *testing.T) {
	srv, _ := newTestServer(t)

	res := dispenserResponse{}
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/dispenser", nil, &res)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, dispenserResponse{Name: brewdb.DefaultName, Version: "test", DefaultBeverage: "coffee"}, res)

	name, beverage := "Office", "cocoa"
	code = doJSON(t, http.MethodPatch, srv.URL+"/api/v1/dispenser", &patchDispenserRequest{
		Name:            &name,
		DefaultBeverage: &beverage,
	}, &res)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Office", res.Name)
	assert.Equal(t, "cocoa", res.DefaultBeverage)

	vend := vendResponse{}
	doJSON(t, http.MethodPost, srv.URL+"/api/v1/vends", &postVendRequest{}, &vend)
	assert.Equal(t, "cocoa", vend.Beverage)

	unknown := "lemonade"
	errRes := errorResponse{}
	code = doJSON(t, http.MethodPatch, srv.URL+"/api/v1/dispenser", &patchDispenserRequest{
		DefaultBeverage: &unknown,
	}, &errRes)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, errRes.Error)
}

func TestVendEvents(t *testing.T) {
	srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/vends/events"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	doJSON(t, http.MethodPost, srv.URL+"/api/v1/vends", &postVendRequest{
		Beverage: "tomato_soup",
		Options:  map[string]bool{"spicy": true},
	}, nil)

	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))

	event := vendResponse{}
	require.NoError(t, c.ReadJSON(&event))

	assert.Equal(t, "tomato_soup", event.Beverage)
	assert.Equal(t, "dispense_hot_sauce", event.Steps[len(event.Steps)-1])
	assert.Equal(t, uint64(1), event.Id)
}
