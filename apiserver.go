package tossup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	apiMaxTrials  = 1000000
	apiMaxWorkers = 64
)

type apiTallyRequest struct {
	Choices []string `json:"choices"`
}

type apiSimulationRequest struct {
	Trials       int              `json:"trials"`
	Seed         *int64           `json:"seed,omitempty"`
	Workers      int              `json:"workers,omitempty"`
	Distribution DistributionSpec `json:"distribution"`
}

type apiPartyResponse struct {
	ID   PartyID `json:"id"`
	Name string  `json:"name"`
	Bias int     `json:"bias"`
}

type apiServerRouters struct {
	root  *mux.Router
	api   *mux.Router
	apiV1 *mux.Router
}

// APIServer exposes an election over HTTP: deterministic tallies, Monte Carlo
// simulations and the stored results of earlier simulations.
type APIServer struct {
	election *Election
	store    ResultStore
	logger   *zap.SugaredLogger
	simOpts  []SimulatorOption

	routers    apiServerRouters
	httpServer *http.Server
}

func NewAPIServer(election *Election, store ResultStore, logger *zap.SugaredLogger, simOpts ...SimulatorOption) *APIServer {
	s := &APIServer{
		election: election,
		store:    store,
		logger:   logger,
		simOpts:  simOpts,
	}
	// HTTP/2 without TLS
	s.httpServer = &http.Server{Handler: h2c.NewHandler(s.setupRouters(), &http2.Server{})}
	return s
}

// Handler returns the root handler, for embedding or testing.
func (s *APIServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRouters sets up the routers and returns the root router
func (s *APIServer) setupRouters() *mux.Router {
	s.routers.root = mux.NewRouter()
	s.routers.root.Use(s.logRequests)
	s.routers.api = s.routers.root.PathPrefix("/api").Subrouter()
	s.routers.apiV1 = s.routers.api.PathPrefix("/v1").Subrouter()

	s.routers.apiV1.HandleFunc("/regions", func(rw http.ResponseWriter, r *http.Request) {
		h := NewHandyRespWriter(rw, s.logger.Desugar())
		h.JSON(s.election.Model.Regions(), http.StatusOK)
	}).Methods("GET")

	s.routers.apiV1.HandleFunc("/parties", func(rw http.ResponseWriter, r *http.Request) {
		h := NewHandyRespWriter(rw, s.logger.Desugar())
		parties := make([]apiPartyResponse, 0, len(s.election.Parties))
		for _, p := range s.election.Parties {
			parties = append(parties, apiPartyResponse{ID: p.id, Name: p.name, Bias: s.election.Bias[p]})
		}
		h.JSON(parties, http.StatusOK)
	}).Methods("GET")

	s.routers.apiV1.HandleFunc("/tally", s.handleTally).Methods("POST")

	s.routers.apiV1.HandleFunc("/simulations", s.handleRunSimulation).Methods("POST")

	s.routers.apiV1.HandleFunc("/simulations", func(rw http.ResponseWriter, r *http.Request) {
		h := NewHandyRespWriter(rw, s.logger.Desugar())
		h.JSONFunc(func() (v interface{}, statusCode int, err error) {
			records, err := s.store.List()
			return records, http.StatusOK, err
		})
	}).Methods("GET")

	s.routers.apiV1.HandleFunc("/simulations/{id:[0-9]+}", func(rw http.ResponseWriter, r *http.Request) {
		h := NewHandyRespWriter(rw, s.logger.Desugar())
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			h.Error(err, http.StatusBadRequest)
			return
		}
		record, err := s.store.Get(id)
		if errors.Is(err, ErrSimulationNotFound) {
			h.Error(err, http.StatusNotFound)
			return
		} else if err != nil {
			h.Error(err, http.StatusInternalServerError)
			return
		}
		h.JSON(record, http.StatusOK)
	}).Methods("GET")

	return s.routers.root
}

func (s *APIServer) handleTally(rw http.ResponseWriter, r *http.Request) {
	h := NewHandyRespWriter(rw, s.logger.Desugar())
	var req apiTallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(err, http.StatusBadRequest)
		return
	}
	choices := make([]*Party, 0, len(req.Choices))
	for _, name := range req.Choices {
		p, ok := s.election.Party(name)
		if !ok {
			h.Error(fmt.Errorf("%w: %q", ErrUnknownParty, name), http.StatusBadRequest)
			return
		}
		choices = append(choices, p)
	}
	ledger := s.election.NewLedger()
	if err := s.election.Model.TallyVotes(choices, ledger); err != nil {
		h.Error(err, http.StatusBadRequest)
		return
	}
	h.JSON(NewLedgerReport(ledger), http.StatusOK)
}

func (s *APIServer) handleRunSimulation(rw http.ResponseWriter, r *http.Request) {
	h := NewHandyRespWriter(rw, s.logger.Desugar())
	var req apiSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(err, http.StatusBadRequest)
		return
	}
	if req.Trials <= 0 {
		h.Error(ErrNoTrials, http.StatusBadRequest)
		return
	}
	if req.Trials > apiMaxTrials {
		h.Error(fmt.Errorf("at most %d trials per request, got %d", apiMaxTrials, req.Trials), http.StatusBadRequest)
		return
	}
	if req.Workers > apiMaxWorkers {
		h.Error(fmt.Errorf("at most %d workers per request, got %d", apiMaxWorkers, req.Workers), http.StatusBadRequest)
		return
	}
	factory, err := req.Distribution.Factory(s.election)
	if err != nil {
		h.Error(err, http.StatusBadRequest)
		return
	}

	opts := append(append([]SimulatorOption(nil), s.simOpts...), LoggerOption(s.logger))
	if req.Seed != nil {
		opts = append(opts, SeedOption(*req.Seed))
	}
	if req.Workers > 0 {
		opts = append(opts, WorkersOption(req.Workers))
	}
	simulator := NewSimulator(s.election, factory, opts...)
	summary, err := simulator.Run(r.Context(), req.Trials)
	if err != nil {
		h.Error(err, http.StatusInternalServerError)
		return
	}

	record := NewSimulationRecord(simulator, req.Distribution, summary)
	if _, err := s.store.Put(record); err != nil {
		h.Error(err, http.StatusInternalServerError)
		return
	}
	h.JSON(record, http.StatusCreated)
}

func (s *APIServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		s.logger.Debugw("API request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(rw, r)
	})
}

func (s *APIServer) Serve(listener net.Listener) error {
	s.logger.Infow("API server started",
		"election", s.election.Name,
		"address", listener.Addr(),
		"endpoint", fmt.Sprintf("http://%s", listener.Addr()))
	return s.httpServer.Serve(listener)
}

func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
