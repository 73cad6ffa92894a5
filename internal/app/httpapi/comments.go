package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/properties"
)

func (h *handler) commentRoutes(r *mux.Router) {
	r.HandleFunc("/elements/{guid}/comments", h.addComment).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/comments", h.attachedComments).Methods(http.MethodGet)
	r.HandleFunc("/comments/{guid}", h.getComment).Methods(http.MethodGet)
	r.HandleFunc("/comments/{guid}/update", h.updateComment).Methods(http.MethodPost)
	r.HandleFunc("/comments/{guid}/delete", h.removeComment).Methods(http.MethodPost)
}

func (h *handler) addComment(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "addComment")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.CommentProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Feedback.AddComment(r.Context(), userID, mux.Vars(r)["guid"], body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateComment(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateComment")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.CommentProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Feedback.UpdateComment(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) removeComment(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeComment")
	if !ok {
		return
	}
	voidResult(w, inst.Feedback.RemoveComment(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getComment(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getComment")
	if !ok {
		return
	}
	resp, err := one(inst.Feedback.GetComment(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) attachedComments(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getAttachedComments")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &CommentListResponse{})
	if !ok {
		return
	}
	found, err := inst.Feedback.GetAttachedComments(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}
