package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mogul/internal/game"
	"mogul/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := game.NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	engine := game.NewEngine(store, game.NewRand(1), clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(New(slog.New(slog.NewTextHandler(io.Discard, nil)), engine).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createGame(t *testing.T, srv *httptest.Server) game.InitResult {
	t.Helper()
	var result game.InitResult
	status := doJSON(t, http.MethodPost, srv.URL+"/v1/games", map[string]any{
		"company_name": "API Test Co",
	}, &result)
	require.Equal(t, http.StatusCreated, status)
	return result
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	var out map[string]any
	status := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil, &out)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["ok"])
}

func TestCreateGameAndFetchState(t *testing.T) {
	srv := newTestServer(t)
	result := createGame(t, srv)

	assert.Equal(t, game.StartingBudget, result.Session.Budget)
	assert.Len(t, result.EmployeePool, game.InitialEmployeePool)

	var state game.State
	status := doJSON(t, http.MethodGet, srv.URL+"/v1/games/"+result.Session.ID, nil, &state)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, result.Session.ID, state.Session.ID)
	assert.Len(t, state.AvailableContracts, len(result.Contracts))
}

func TestCreateGameRejectsShortName(t *testing.T) {
	srv := newTestServer(t)
	var out map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/v1/games", map[string]any{
		"company_name": "x",
	}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, out["error"])
}

func TestGameNotFound(t *testing.T) {
	srv := newTestServer(t)
	status := doJSON(t, http.MethodGet, srv.URL+"/v1/games/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHireFlow(t *testing.T) {
	srv := newTestServer(t)
	result := createGame(t, srv)
	template := result.EmployeePool[0]

	var out struct {
		Session  game.Session  `json:"session"`
		Employee game.Employee `json:"employee"`
	}
	status := doJSON(t, http.MethodPost, srv.URL+"/v1/games/"+result.Session.ID+"/employees/hire", map[string]any{
		"employee_id": template.ID,
	}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Employee.Active)
	assert.Less(t, out.Session.Budget, game.StartingBudget)

	// Hiring the same template again conflicts.
	status = doJSON(t, http.MethodPost, srv.URL+"/v1/games/"+result.Session.ID+"/employees/hire", map[string]any{
		"employee_id": template.ID,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Unknown employee is a 404.
	status = doJSON(t, http.MethodPost, srv.URL+"/v1/games/"+result.Session.ID+"/employees/hire", map[string]any{
		"employee_id": "nope",
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestContractAndTurnFlow(t *testing.T) {
	srv := newTestServer(t)
	result := createGame(t, srv)
	gameURL := srv.URL + "/v1/games/" + result.Session.ID
	contract := result.Contracts[0]
	template := result.EmployeePool[0]

	var hired struct {
		Employee game.Employee `json:"employee"`
	}
	status := doJSON(t, http.MethodPost, gameURL+"/employees/hire", map[string]any{
		"employee_id": template.ID,
	}, &hired)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodPost, gameURL+"/contracts/"+contract.ID+"/start", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodPost, gameURL+"/contracts/"+contract.ID+"/assign", map[string]any{
		"employee_id": hired.Employee.ID,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	// Duplicate assignment in the same week conflicts.
	status = doJSON(t, http.MethodPost, gameURL+"/contracts/"+contract.ID+"/assign", map[string]any{
		"employee_id": hired.Employee.ID,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	var turn game.TurnResult
	status = doJSON(t, http.MethodPost, gameURL+"/turn", nil, &turn)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, turn.Session.CurrentWeek)
	require.Len(t, turn.ContractResults, 1)
	assert.Greater(t, turn.ContractResults[0].Contract.CurrentProgress, 0)
}

func TestListEndpoints(t *testing.T) {
	srv := newTestServer(t)
	result := createGame(t, srv)
	gameURL := srv.URL + "/v1/games/" + result.Session.ID

	var employees struct {
		Active []game.Employee `json:"active_employees"`
		Pool   []game.Employee `json:"employee_pool"`
	}
	status := doJSON(t, http.MethodGet, gameURL+"/employees", nil, &employees)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, employees.Active)
	assert.Len(t, employees.Pool, game.InitialEmployeePool)

	var contracts struct {
		Available []game.Contract `json:"available_contracts"`
		Active    []game.Contract `json:"active_contracts"`
	}
	status = doJSON(t, http.MethodGet, gameURL+"/contracts", nil, &contracts)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, contracts.Available, len(result.Contracts))
	assert.Empty(t, contracts.Active)
}

func TestEndGameEndpoint(t *testing.T) {
	srv := newTestServer(t)
	result := createGame(t, srv)
	gameURL := srv.URL + "/v1/games/" + result.Session.ID

	var out struct {
		Session game.Session `json:"session"`
		Score   int          `json:"score"`
	}
	status := doJSON(t, http.MethodPost, gameURL+"/end", nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, game.SessionCompleted, out.Session.Status)
	assert.Equal(t, game.TotalScore(out.Session), out.Score)

	// A second end conflicts, as does processing a turn.
	status = doJSON(t, http.MethodPost, gameURL+"/end", nil, nil)
	assert.Equal(t, http.StatusConflict, status)
	status = doJSON(t, http.MethodPost, gameURL+"/turn", nil, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestUnknownFieldRejected(t *testing.T) {
	srv := newTestServer(t)
	raw := []byte(`{"company_name":"Good Name","bogus":true}`)
	resp, err := http.Post(srv.URL+"/v1/games", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
