package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sprintertech/bridge-verifier/verifier"
)

type ScenarioStatus struct {
	Name           string   `json:"name"`
	State          string   `json:"state"`
	History        []string `json:"history"`
	Amount         *BigInt  `json:"amount"`
	ExpectedAmount *BigInt  `json:"expectedAmount"`
	Error          string   `json:"error,omitempty"`
}

type StatusHandler struct {
	scenarios []*verifier.Scenario
}

func NewStatusHandler(scenarios []*verifier.Scenario) *StatusHandler {
	return &StatusHandler{
		scenarios: scenarios,
	}
}

// HandleList returns the status of every scenario of the run
func (h *StatusHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	statuses := make([]ScenarioStatus, len(h.scenarios))
	for i, scenario := range h.scenarios {
		statuses[i] = status(scenario)
	}

	writeJSON(w, statuses)
}

// HandleRequest returns the status of the scenario with the requested name
func (h *StatusHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	for _, scenario := range h.scenarios {
		if scenario.Name == name {
			writeJSON(w, status(scenario))
			return
		}
	}

	writeError(w, fmt.Errorf("no scenario %s", name), http.StatusNotFound)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func status(scenario *verifier.Scenario) ScenarioStatus {
	history := scenario.History()
	states := make([]string, len(history))
	for i, state := range history {
		states[i] = string(state)
	}

	_, _, final := scenario.ExpectedAmounts()
	s := ScenarioStatus{
		Name:           scenario.Name,
		State:          states[len(states)-1],
		History:        states,
		Amount:         &BigInt{scenario.Amount},
		ExpectedAmount: &BigInt{final},
	}
	if err := scenario.Err(); err != nil {
		s.Error = err.Error()
	}
	return s
}
