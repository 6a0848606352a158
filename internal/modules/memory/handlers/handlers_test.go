package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
	"github.com/Craig444444444/sped-agi/internal/modules/mitigation"
)

func testRouter(t *testing.T, nQubits int) (chi.Router, *clock.ManualClock) {
	t.Helper()
	clk := clock.Manual(time.Date(2025, 5, 31, 18, 0, 0, 0, time.UTC))
	circuits := circuit.NewManager(nQubits, clk, audit.NopRecorder{}, zerolog.Nop())
	mitigationSystem := mitigation.NewSystem(circuits, clk, audit.NopRecorder{}, zerolog.Nop())
	service := memory.NewService(circuits, mitigationSystem, clk, audit.NopRecorder{}, zerolog.Nop(), memory.Options{})

	router := chi.NewRouter()
	NewHandler(service, clk, zerolog.Nop()).RegisterRoutes(router)
	return router, clk
}

func postJSON(t *testing.T, router chi.Router, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoreAndRetrieve(t *testing.T) {
	router, _ := testRouter(t, 20)

	rec := postJSON(t, router, "/memory/states", StoreRequest{
		Data:   []float64{0.1, 0.2, 0.3, 0.4},
		Scheme: "direct",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored struct {
		Data struct {
			StateID string `json:"state_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	require.NotEmpty(t, stored.Data.StateID)

	req := httptest.NewRequest(http.MethodGet, "/memory/states/"+stored.Data.StateID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var retrieved struct {
		Data struct {
			Decoded []float64 `json:"decoded"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &retrieved))
	require.Len(t, retrieved.Data.Decoded, 4)
	assert.InDelta(t, 0.1, retrieved.Data.Decoded[0], 1e-9)
	assert.InDelta(t, 0.4, retrieved.Data.Decoded[3], 1e-9)
}

func TestStore_DefaultsToErrorProtected(t *testing.T) {
	router, _ := testRouter(t, 20)

	rec := postJSON(t, router, "/memory/states", StoreRequest{Data: []float64{1, 2}})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/memory/states", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)

	var listed struct {
		Data []memory.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "error_protected", listed.Data[0].Encoding)
}

func TestStore_ErrorStatuses(t *testing.T) {
	router, _ := testRouter(t, 4)

	// Unknown scheme
	rec := postJSON(t, router, "/memory/states", StoreRequest{Data: []float64{1}, Scheme: "holographic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero vector
	rec = postJSON(t, router, "/memory/states", StoreRequest{Data: []float64{0, 0}, Scheme: "direct"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Capacity exceeded: repetition code needs 6 qubits, capacity is 4
	rec = postJSON(t, router, "/memory/states", StoreRequest{Data: []float64{1, 2}, Scheme: "error_protected"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRetrieve_NotFound(t *testing.T) {
	router, _ := testRouter(t, 20)

	req := httptest.NewRequest(http.MethodGet, "/memory/states/state-999999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMonitor(t *testing.T) {
	router, clk := testRouter(t, 20)

	rec := postJSON(t, router, "/memory/states", StoreRequest{Data: []float64{1, 2}, Scheme: "direct"})
	require.Equal(t, http.StatusCreated, rec.Code)

	clk.Advance(2 * time.Second)

	monitorRec := postJSON(t, router, "/memory/monitor", struct{}{})
	require.Equal(t, http.StatusOK, monitorRec.Code)

	var monitored struct {
		Data struct {
			Timestamp  string             `json:"timestamp"`
			Fidelities map[string]float64 `json:"fidelities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(monitorRec.Body.Bytes(), &monitored))
	require.Len(t, monitored.Data.Fidelities, 1)
	for _, fidelity := range monitored.Data.Fidelities {
		assert.Less(t, fidelity, 1.0)
	}
}
