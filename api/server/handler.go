// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/logging"

	rpcutils "github.com/chain4travel/nance/utils/rpc"
)

const (
	RPCEndpoint     = "/ext/nance"
	MetricsEndpoint = "/metrics"
	HealthEndpoint  = "/health"

	serviceName = "nance"
)

// Portal is the part of the portal service exposed over HTTP
type Portal interface {
	LoadSpaces(ctx context.Context) ([]nance.SpaceInfo, error)
	LoadSpace(ctx context.Context, space string, query portal.SpaceQuery) (*portal.SpaceView, error)
	LoadProposal(ctx context.Context, space, id string) (*portal.ProposalView, error)
	Schedule(ctx context.Context, space string) (*portal.ScheduleView, error)
	SubmitProposal(ctx context.Context, space string, submission portal.Submission) (*nance.UploadResult, error)
	DeleteProposal(ctx context.Context, space, uuid string) error
	CastVote(ctx context.Context, ballot portal.Ballot) (*snapshot.Receipt, error)
}

var _ Portal = (*portal.Service)(nil)

type errorReply struct {
	Error string `json:"error"`
}

// NewHandler routes the read-only pages, the JSON-RPC service and the
// metrics of [gatherer].
func NewHandler(log logging.Logger, p Portal, gatherer prometheus.Gatherer) (http.Handler, error) {
	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(newCodec(), "application/json")
	rpcServer.RegisterCodec(newCodec(), "application/json;charset=UTF-8")
	if err := rpcServer.RegisterService(&Service{log: log, portal: p}, serviceName); err != nil {
		return nil, err
	}

	h := &handler{log: log, portal: p}
	router := mux.NewRouter()
	router.Handle(RPCEndpoint, rpcServer).Methods(http.MethodPost)
	router.Handle(MetricsEndpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc(HealthEndpoint, h.health).Methods(http.MethodGet)
	router.HandleFunc("/s", h.spaces).Methods(http.MethodGet)
	router.HandleFunc("/s/{space}", h.space).Methods(http.MethodGet)
	router.HandleFunc("/s/{space}/schedule", h.schedule).Methods(http.MethodGet)
	router.HandleFunc("/s/{space}/{proposal}", h.proposal).Methods(http.MethodGet)
	return router, nil
}

type handler struct {
	log    logging.Logger
	portal Portal
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, map[string]bool{"healthy": true})
}

func (h *handler) spaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.portal.LoadSpaces(r.Context())
	h.reply(w, r, spaces, err)
}

func (h *handler) space(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := parsePage(query.Get("page"))
	if err != nil {
		h.write(w, http.StatusBadRequest, errorReply{Error: "invalid page"})
		return
	}
	view, err := h.portal.LoadSpace(r.Context(), mux.Vars(r)["space"], portal.SpaceQuery{
		Keyword: query.Get("keyword"),
		Cycle:   query.Get("cycle"),
		Page:    page,
	})
	h.reply(w, r, view, err)
}

func (h *handler) schedule(w http.ResponseWriter, r *http.Request) {
	view, err := h.portal.Schedule(r.Context(), mux.Vars(r)["space"])
	h.reply(w, r, view, err)
}

func (h *handler) proposal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.portal.LoadProposal(r.Context(), vars["space"], vars["proposal"])
	h.reply(w, r, view, err)
}

func parsePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}
	return strconv.Atoi(page)
}

func (h *handler) reply(w http.ResponseWriter, r *http.Request, value interface{}, err error) {
	if err == nil {
		h.write(w, http.StatusOK, value)
		return
	}

	status := http.StatusInternalServerError
	if rpcutils.NotFound(err) || errors.Is(err, nance.ErrNotFound) {
		status = http.StatusNotFound
	}
	h.log.Debug("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.write(w, status, errorReply{Error: rpcutils.ErrorMessage(err)})
}

func (h *handler) write(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		h.log.Debug("couldn't write response", zap.Error(err))
	}
}
