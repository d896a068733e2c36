package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OpenCHAMI/pductl/pkg/eaton"
	"github.com/OpenCHAMI/pductl/pkg/pdu"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// OutletController is the part of eaton.Controller the daemon serves.
type OutletController interface {
	Get(host string, index int) (bool, error)
	Set(host string, index int, on bool) error
	Inventory(host string) (*pdu.PDUInventory, error)
}

// Recorder is called after every successful outlet get or set.
type Recorder func(host string, index int, on bool, source string)

type OutletResponse struct {
	Host   string `json:"host"`
	Outlet int    `json:"outlet"`
	On     bool   `json:"on"`
}

type SetRequest struct {
	On *bool `json:"on"`
}

// PDUResponse carries the outlets that answered and, when some did not,
// one message per failed outlet.
type PDUResponse struct {
	Inventory *pdu.PDUInventory `json:"inventory"`
	Errors    []string          `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func RunServer(endpoint string, ctl OutletController, record Recorder) error {
	log.Info().Str("endpoint", endpoint).Msg("starting daemon")
	err := http.ListenAndServe(endpoint, NewRouter(ctl, record))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func NewRouter(ctl OutletController, record Recorder) *chi.Mux {
	if record == nil {
		record = func(string, int, bool, string) {}
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/outlets/{host}/{index}", func(w http.ResponseWriter, r *http.Request) {
		host, index, ok := outletParams(w, r)
		if !ok {
			return
		}
		on, err := ctl.Get(host, index)
		if err != nil {
			writeError(w, err)
			return
		}
		record(host, index, on, "get")
		writeJSON(w, http.StatusOK, OutletResponse{Host: host, Outlet: index, On: on})
	})

	router.Put("/outlets/{host}/{index}", func(w http.ResponseWriter, r *http.Request) {
		host, index, ok := outletParams(w, r)
		if !ok {
			return
		}
		var req SetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.On == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: `body must be {"on": true|false}`})
			return
		}
		if err := ctl.Set(host, index, *req.On); err != nil {
			writeError(w, err)
			return
		}
		record(host, index, *req.On, "set")
		w.WriteHeader(http.StatusNoContent)
	})

	router.Get("/pdus/{host}", func(w http.ResponseWriter, r *http.Request) {
		host := chi.URLParam(r, "host")
		inventory, err := ctl.Inventory(host)
		if err != nil && inventory == nil {
			writeError(w, err)
			return
		}
		for _, outlet := range inventory.Outlets {
			if index, perr := strconv.Atoi(outlet.ID); perr == nil {
				record(host, index, outlet.PowerState == pdu.PowerStateOn, "get")
			}
		}

		status := http.StatusOK
		resp := PDUResponse{Inventory: inventory}
		if err != nil {
			status = statusFor(err)
			log.Error().Err(err).Int("status", status).Str("host", host).Msg("failed to read some outlets")
			resp.Errors = errorMessages(err)
		}
		writeJSON(w, status, resp)
	})

	return router
}

func outletParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "outlet index must be an integer"})
		return "", 0, false
	}
	return chi.URLParam(r, "host"), index, true
}

func statusFor(err error) int {
	var perr *eaton.ProtocolError
	switch {
	case eaton.IsContractError(err):
		return http.StatusBadRequest
	case errors.As(err, &perr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorMessages splits a joined error into one message per cause.
func errorMessages(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	msgs := []string{}
	for _, e := range joined.Unwrap() {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	log.Error().Err(err).Int("status", status).Msg("outlet request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
