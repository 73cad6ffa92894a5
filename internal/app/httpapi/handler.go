// Package httpapi exposes the IT infrastructure access service over REST.
package httpapi

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/instance"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/internal/httputil"
	"github.com/odpi/itinfra/pkg/logger"
)

// ServicePath is the root of the access service below a server.
const ServicePath = "/servers/{serverName}/open-metadata/access-services/it-infrastructure"

// UserPath is the root of every user request.
const UserPath = ServicePath + "/users/{userId}"

// Options configure the handler. Hub, Metrics and Ready are optional.
// Middleware wraps the user routes and the out-topic.
type Options struct {
	Hub        *events.Hub
	Audit      *AuditLog
	Metrics    http.Handler
	Middleware []mux.MiddlewareFunc
	Ready      func(ctx context.Context) error
	Logger     *logger.Logger
}

// handler bundles the REST endpoints for every registered server.
type handler struct {
	registry *instance.Registry
	hub      *events.Hub
	audit    *AuditLog
	ready    func(ctx context.Context) error
	log      *logger.Logger
}

// NewHandler returns a router exposing the access service of every server
// in registry.
func NewHandler(registry *instance.Registry, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault("httpapi")
	}
	if opts.Audit == nil {
		opts.Audit = NewAuditLog(0, nil)
	}
	h := &handler{
		registry: registry,
		hub:      opts.Hub,
		audit:    opts.Audit,
		ready:    opts.Ready,
		log:      opts.Logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}
	if h.hub != nil {
		topics := r.PathPrefix(ServicePath + "/topics").Subrouter()
		for _, mw := range opts.Middleware {
			topics.Use(mw)
		}
		topics.HandleFunc("/out-topic", h.outTopic).Methods(http.MethodGet)
	}

	api := r.PathPrefix(UserPath).Subrouter()
	for _, mw := range opts.Middleware {
		api.Use(mw)
	}
	api.Use(h.audit.Middleware)
	api.HandleFunc("/audit", h.auditTrail).Methods(http.MethodGet)
	api.HandleFunc("/valid-values", h.validValues).Methods(http.MethodGet)
	api.HandleFunc("/valid-values/{enumName}", h.validValues).Methods(http.MethodGet)
	api.HandleFunc("/element-counts", h.elementCounts).Methods(http.MethodGet)
	h.assetRoutes(api)
	h.processRoutes(api)
	h.profileRoutes(api)
	h.commentRoutes(api)
	h.collectionRoutes(api)
	h.referenceRoutes(api)
	h.licenseRoutes(api)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond(w, &VoidResponse{}, errors.NotFound("endpoint", ""))
	})
	return r
}

// instance resolves the server and caller named in the request path. On
// failure the error envelope has already been written.
func (h *handler) instance(w http.ResponseWriter, r *http.Request, op string) (*instance.ServiceInstance, string, bool) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	inst, err := h.registry.Get(vars["serverName"], userID, op)
	if err != nil {
		h.log.WithError(err).WithField("operation", op).Debug("request rejected")
		respond(w, &VoidResponse{}, err)
		return nil, "", false
	}
	return inst, userID, true
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":  "ok",
		"servers": h.registry.Names(),
	}
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
			body["error"] = err.Error()
		}
	}
	httputil.WriteJSON(w, status, body)
}

func (h *handler) outTopic(w http.ResponseWriter, r *http.Request) {
	server := mux.Vars(r)["serverName"]
	if _, err := h.registry.Get(server, "out-topic", "outTopic"); err != nil {
		respond(w, &VoidResponse{}, err)
		return
	}
	h.hub.Serve(w, r, server)
}

// ValidValuesResponse lists enum vocabularies.
type ValidValuesResponse struct {
	FFDCResponse
	Vocabularies []enums.VocabularyDescriptor `json:"vocabularies,omitempty"`
}

func (h *handler) validValues(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.instance(w, r, "getValidValues"); !ok {
		return
	}
	all := enums.Vocabularies()
	resp := &ValidValuesResponse{}
	if name := mux.Vars(r)["enumName"]; name != "" {
		v, found := all[name]
		if !found {
			respond(w, resp, errors.NotFound("enum", name))
			return
		}
		resp.Vocabularies = []enums.VocabularyDescriptor{v}
		respond(w, resp, nil)
		return
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		resp.Vocabularies = append(resp.Vocabularies, all[name])
	}
	respond(w, resp, nil)
}

// ElementCountsResponse reports the number of stored elements per type.
type ElementCountsResponse struct {
	FFDCResponse
	Counts map[string]int `json:"counts,omitempty"`
}

func (h *handler) elementCounts(w http.ResponseWriter, r *http.Request) {
	inst, _, ok := h.instance(w, r, "getElementCounts")
	if !ok {
		return
	}
	counts, err := inst.Repository.CountEntities(r.Context())
	if err != nil {
		err = errors.PropertyServer("getElementCounts", err)
	}
	respond(w, &ElementCountsResponse{Counts: counts}, err)
}

func (h *handler) auditTrail(w http.ResponseWriter, r *http.Request) {
	inst, _, ok := h.instance(w, r, "getAuditTrail")
	if !ok {
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}
	respond(w, &AuditResponse{Entries: h.audit.ListServer(inst.ServerName, limit)}, nil)
}
