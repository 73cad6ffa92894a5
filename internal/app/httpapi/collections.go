package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/properties"
)

func (h *handler) collectionRoutes(r *mux.Router) {
	r.HandleFunc("/collections", h.createCollection).Methods(http.MethodPost)
	r.HandleFunc("/collections/by-search-string", h.findCollections).Methods(http.MethodPost)
	r.HandleFunc("/collections/by-name", h.collectionsByName).Methods(http.MethodPost)
	r.HandleFunc("/collections/{guid}", h.getCollection).Methods(http.MethodGet)
	r.HandleFunc("/collections/{guid}/update", h.updateCollection).Methods(http.MethodPost)
	r.HandleFunc("/collections/{guid}/delete", h.removeCollection).Methods(http.MethodPost)
	r.HandleFunc("/collections/{guid}/members", h.collectionMembers).Methods(http.MethodGet)
	r.HandleFunc("/collections/{guid}/members/{memberGUID}", h.addToCollection).Methods(http.MethodPost)
	r.HandleFunc("/collections/{guid}/members/{memberGUID}/delete", h.removeFromCollection).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/collections", h.elementCollections).Methods(http.MethodGet)
}

func (h *handler) createCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createCollection")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.CollectionProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Collections.CreateCollection(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateCollection")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.CollectionProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Collections.UpdateCollection(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) removeCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeCollection")
	if !ok {
		return
	}
	voidResult(w, inst.Collections.RemoveCollection(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getCollection")
	if !ok {
		return
	}
	resp, err := one(inst.Collections.GetCollection(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) findCollections(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findCollections")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &CollectionListResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &CollectionListResponse{}) {
		return
	}
	found, err := inst.Collections.FindCollections(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) collectionsByName(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getCollectionsByName")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &CollectionListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &CollectionListResponse{}) {
		return
	}
	found, err := inst.Collections.GetCollectionsByName(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) addToCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "addToCollection")
	if !ok {
		return
	}
	props, err := relationshipProps(r)
	if err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Collections.AddToCollection(r.Context(), userID, vars["guid"], vars["memberGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) removeFromCollection(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeFromCollection")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.Collections.RemoveFromCollection(r.Context(), userID, vars["guid"], vars["memberGUID"]))
}

func (h *handler) collectionMembers(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getCollectionMembers")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &RelatedElementListResponse{})
	if !ok {
		return
	}
	found, err := inst.Collections.GetCollectionMembers(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) elementCollections(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getElementCollections")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &CollectionListResponse{})
	if !ok {
		return
	}
	found, err := inst.Collections.GetElementCollections(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}
