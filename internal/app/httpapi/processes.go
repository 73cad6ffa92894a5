package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
)

// ProcessRequestBody creates a process in an initial status.
type ProcessRequestBody struct {
	handlers.ExternalSource
	ProcessStatus enums.ProcessStatus          `json:"processStatus"`
	Properties    properties.ProcessProperties `json:"properties"`
}

// ProcessStatusRequestBody changes the status of a process.
type ProcessStatusRequestBody struct {
	ProcessStatus enums.ProcessStatus `json:"processStatus"`
}

func (h *handler) processRoutes(r *mux.Router) {
	r.HandleFunc("/processes", h.createProcess).Methods(http.MethodPost)
	r.HandleFunc("/processes/by-search-string", h.findProcesses).Methods(http.MethodPost)
	r.HandleFunc("/processes/by-name", h.processesByName).Methods(http.MethodPost)
	r.HandleFunc("/processes/{guid}", h.getProcess).Methods(http.MethodGet)
	r.HandleFunc("/processes/{guid}/update", h.updateProcess).Methods(http.MethodPost)
	r.HandleFunc("/processes/{guid}/status", h.updateProcessStatus).Methods(http.MethodPost)
	r.HandleFunc("/processes/{guid}/delete", h.removeProcess).Methods(http.MethodPost)
	r.HandleFunc("/processes/{guid}/child-processes", h.subprocesses).Methods(http.MethodGet)
	r.HandleFunc("/processes/{guid}/child-processes/{childGUID}", h.setupProcessParent).Methods(http.MethodPost)
	r.HandleFunc("/processes/{guid}/child-processes/{childGUID}/delete", h.clearProcessParent).Methods(http.MethodPost)
}

func (h *handler) createProcess(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createProcess")
	if !ok {
		return
	}
	var body ProcessRequestBody
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Processes.CreateProcess(r.Context(), userID, body.Properties, body.ProcessStatus, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateProcess(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateProcess")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.ProcessProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Processes.UpdateProcess(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) updateProcessStatus(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateProcessStatus")
	if !ok {
		return
	}
	var body ProcessStatusRequestBody
	if !bind(w, r, &body, &VoidResponse{}) {
		return
	}
	voidResult(w, inst.Processes.UpdateProcessStatus(r.Context(), userID, mux.Vars(r)["guid"], body.ProcessStatus))
}

func (h *handler) removeProcess(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeProcess")
	if !ok {
		return
	}
	voidResult(w, inst.Processes.RemoveProcess(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getProcess(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getProcess")
	if !ok {
		return
	}
	resp, err := one(inst.Processes.GetProcess(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) findProcesses(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findProcesses")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ProcessListResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &ProcessListResponse{}) {
		return
	}
	found, err := inst.Processes.FindProcesses(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) processesByName(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getProcessesByName")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ProcessListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &ProcessListResponse{}) {
		return
	}
	found, err := inst.Processes.GetProcessesByName(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) setupProcessParent(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "setupProcessParent")
	if !ok {
		return
	}
	var props properties.ProcessContainmentProperties
	if err := decodeOptional(r.Body, &props); err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Processes.SetupProcessParent(r.Context(), userID, vars["guid"], vars["childGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) clearProcessParent(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "clearProcessParent")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.Processes.ClearProcessParent(r.Context(), userID, vars["guid"], vars["childGUID"]))
}

func (h *handler) subprocesses(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getSubprocesses")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ProcessListResponse{})
	if !ok {
		return
	}
	found, err := inst.Processes.GetSubprocesses(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}
