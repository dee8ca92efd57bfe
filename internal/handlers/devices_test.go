package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gigahouse/internal/models"
	"gigahouse/internal/service"
)

func TestDeviceHandlers_StateAndToggle(t *testing.T) {
	obs := &mockObserver{snap: models.StateSnapshot{
		Devices:     map[string]bool{"cuarto1": true},
		Temperature: 27.5,
		Siren:       models.SirenOff,
		Connected:   true,
	}}
	disp := &mockDispatcher{on: true}
	s := &service.Service{Dispatcher: disp, Observer: obs}
	r := newTestRouter(s)

	// GET /api/v1/state returns the snapshot
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var snap models.StateSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if !snap.Devices["cuarto1"] || snap.Temperature != 27.5 || !snap.Connected {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// GET one device
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/devices/cuarto1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("device status=%d", w.Code)
	}
	var dev struct {
		Device string `json:"device"`
		On     bool   `json:"on"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &dev)
	if dev.Device != "cuarto1" || !dev.On {
		t.Fatalf("device response: %+v", dev)
	}

	// POST toggle → 200 with the dispatcher's answer
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/devices/sala1/toggle", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status=%d, body=%s", w.Code, w.Body.String())
	}
	if disp.toggleCalls != 1 || disp.lastDevice != "sala1" {
		t.Fatalf("dispatcher calls=%d device=%q", disp.toggleCalls, disp.lastDevice)
	}
	var toggleResp struct {
		Status string `json:"status"`
		On     bool   `json:"on"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &toggleResp)
	if toggleResp.Status != statusToggled || !toggleResp.On {
		t.Fatalf("toggle response: %+v", toggleResp)
	}
}

func TestToggleHandler_TransportFailureReportsOff(t *testing.T) {
	disp := &mockDispatcher{err: errors.New("device unreachable")}
	s := &service.Service{Dispatcher: disp, Observer: &mockObserver{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/devices/cochera/toggle", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
		On    bool   `json:"on"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error == "" {
		t.Fatal("error message missing")
	}
	if resp.On {
		t.Fatal("failed toggle must report off")
	}
}

func TestListDevices_MergesCatalogWithSnapshot(t *testing.T) {
	obs := &mockObserver{snap: models.StateSnapshot{Devices: map[string]bool{"bano1": true}}}
	s := &service.Service{Observer: obs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/devices/", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp struct {
		Devices []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			On   bool   `json:"on"`
		} `json:"devices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Devices) != len(models.Catalog()) {
		t.Fatalf("device count = %d", len(resp.Devices))
	}
	for _, d := range resp.Devices {
		if d.ID == "bano1" && !d.On {
			t.Fatal("snapshot state not merged into catalog")
		}
		if d.Name == "" {
			t.Fatalf("device %s missing display name", d.ID)
		}
	}
}

func TestProbeHandler(t *testing.T) {
	obs := &mockObserver{}
	r := newTestRouter(&service.Service{Observer: obs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/probe", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || obs.probeCalls != 1 {
		t.Fatalf("status=%d probeCalls=%d", w.Code, obs.probeCalls)
	}

	obs.probeErr = errors.New("no route to device")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/probe", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
