package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mogul/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	log    *slog.Logger
	engine *game.Engine
	mux    *chi.Mux
}

func New(logger *slog.Logger, engine *game.Engine) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:    logger,
		engine: engine,
		mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleNewGame)
		r.Get("/games/{id}", s.handleGameState)
		r.Post("/games/{id}/turn", s.handleProcessTurn)
		r.Post("/games/{id}/end", s.handleEndGame)
		r.Post("/games/{id}/resume", s.handleResumeGame)
		r.Get("/games/{id}/employees", s.handleListEmployees)
		r.Post("/games/{id}/employees/hire", s.handleHireEmployee)
		r.Post("/games/{id}/employees/{employee_id}/fire", s.handleFireEmployee)
		r.Get("/games/{id}/contracts", s.handleListContracts)
		r.Post("/games/{id}/contracts/{contract_id}/start", s.handleStartContract)
		r.Post("/games/{id}/contracts/{contract_id}/assign", s.handleAssignEmployee)
	})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CompanyName string `json:"company_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := game.ValidateCompanyName(in.CompanyName); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.engine.InitializeGame(r.Context(), in.CompanyName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.GameState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleProcessTurn(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.ProcessWeekTurn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.EndGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"score":   game.TotalScore(session),
	})
}

func (s *Server) handleResumeGame(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.ResumeSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.GameState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active_employees": state.ActiveEmployees,
		"employee_pool":    state.EmployeePool,
	})
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.GameState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available_contracts": state.AvailableContracts,
		"active_contracts":    state.ActiveContracts,
	})
}

func (s *Server) handleHireEmployee(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, employee, err := s.engine.HireEmployee(r.Context(), chi.URLParam(r, "id"), in.EmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  session,
		"employee": employee,
	})
}

func (s *Server) handleFireEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := s.engine.FireEmployee(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "employee_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employee": employee})
}

func (s *Server) handleStartContract(w http.ResponseWriter, r *http.Request) {
	contract, err := s.engine.StartContract(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "contract_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contract": contract})
}

func (s *Server) handleAssignEmployee(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	assignment, err := s.engine.AssignEmployee(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "contract_id"), in.EmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"assignment": assignment})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, game.ErrEmployeeNotFound),
		errors.Is(err, game.ErrContractNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrInvalidState), errors.Is(err, game.ErrDuplicateAssignment):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
