package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/properties"
)

// URLRequestBody carries the exact URL of an external reference.
type URLRequestBody struct {
	URL string `json:"url"`
}

func (h *handler) referenceRoutes(r *mux.Router) {
	r.HandleFunc("/external-references", h.createExternalReference).Methods(http.MethodPost)
	r.HandleFunc("/external-references/by-search-string", h.findExternalReferences).Methods(http.MethodPost)
	r.HandleFunc("/external-references/by-url", h.externalReferencesByURL).Methods(http.MethodPost)
	r.HandleFunc("/external-references/{guid}", h.getExternalReference).Methods(http.MethodGet)
	r.HandleFunc("/external-references/{guid}/update", h.updateExternalReference).Methods(http.MethodPost)
	r.HandleFunc("/external-references/{guid}/delete", h.removeExternalReference).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/external-references", h.elementExternalReferences).Methods(http.MethodGet)
	r.HandleFunc("/elements/{guid}/external-references/{referenceGUID}", h.linkExternalReference).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/external-references/{referenceGUID}/delete", h.unlinkExternalReference).Methods(http.MethodPost)
}

func (h *handler) createExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createExternalReference")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.ExternalReferenceProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.References.CreateExternalReference(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateExternalReference")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.ExternalReferenceProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.References.UpdateExternalReference(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) removeExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeExternalReference")
	if !ok {
		return
	}
	voidResult(w, inst.References.RemoveExternalReference(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getExternalReference")
	if !ok {
		return
	}
	resp, err := one(inst.References.GetExternalReference(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) findExternalReferences(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findExternalReferences")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ExternalReferencesResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &ExternalReferencesResponse{}) {
		return
	}
	found, err := inst.References.FindExternalReferences(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) externalReferencesByURL(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getExternalReferencesByURL")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ExternalReferencesResponse{})
	if !ok {
		return
	}
	var body URLRequestBody
	if !bind(w, r, &body, &ExternalReferencesResponse{}) {
		return
	}
	found, err := inst.References.GetExternalReferencesByURL(r.Context(), userID, body.URL, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) linkExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "linkExternalReference")
	if !ok {
		return
	}
	props, err := relationshipProps(r)
	if err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.References.LinkExternalReference(r.Context(), userID, vars["guid"], vars["referenceGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) unlinkExternalReference(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "unlinkExternalReference")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.References.UnlinkExternalReference(r.Context(), userID, vars["guid"], vars["referenceGUID"]))
}

func (h *handler) elementExternalReferences(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getExternalReferences")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ExternalReferencesResponse{})
	if !ok {
		return
	}
	found, err := inst.References.GetExternalReferences(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}
