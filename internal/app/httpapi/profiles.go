package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
)

// ITProfileRequestBody creates a profile, optionally with its first user
// identity.
type ITProfileRequestBody struct {
	handlers.ExternalSource
	Properties   properties.ITProfileProperties     `json:"properties"`
	UserIdentity *properties.UserIdentityProperties `json:"userIdentity,omitempty"`
}

func (h *handler) profileRoutes(r *mux.Router) {
	r.HandleFunc("/it-profiles", h.createITProfile).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/by-search-string", h.findITProfiles).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/by-name", h.itProfilesByName).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/user-ids/{profileUserId}", h.itProfileByUserID).Methods(http.MethodGet)
	r.HandleFunc("/it-profiles/{guid}", h.getITProfile).Methods(http.MethodGet)
	r.HandleFunc("/it-profiles/{guid}/update", h.updateITProfile).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/{guid}/delete", h.removeITProfile).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/{guid}/contact-methods", h.addContactMethod).Methods(http.MethodPost)
	r.HandleFunc("/contact-methods/{guid}/delete", h.removeContactMethod).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/{guid}/user-identities", h.addUserIdentity).Methods(http.MethodPost)
	r.HandleFunc("/it-profiles/{guid}/user-identities/{identityGUID}/delete", h.removeUserIdentity).Methods(http.MethodPost)
}

func (h *handler) createITProfile(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createITProfile")
	if !ok {
		return
	}
	var body ITProfileRequestBody
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Profiles.CreateITProfile(r.Context(), userID, body.Properties, body.UserIdentity, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateITProfile(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateITProfile")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.ITProfileProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Profiles.UpdateITProfile(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) removeITProfile(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeITProfile")
	if !ok {
		return
	}
	voidResult(w, inst.Profiles.RemoveITProfile(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getITProfile(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getITProfile")
	if !ok {
		return
	}
	resp, err := one(inst.Profiles.GetITProfile(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) itProfileByUserID(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getITProfileByUserId")
	if !ok {
		return
	}
	resp, err := one(inst.Profiles.GetITProfileByUserID(r.Context(), userID, mux.Vars(r)["profileUserId"]))
	respond(w, resp, err)
}

func (h *handler) itProfilesByName(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getITProfilesByName")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ITProfileListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &ITProfileListResponse{}) {
		return
	}
	found, err := inst.Profiles.GetITProfilesByName(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) findITProfiles(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findITProfiles")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &ITProfileListResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &ITProfileListResponse{}) {
		return
	}
	found, err := inst.Profiles.FindITProfiles(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) addContactMethod(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "addContactMethod")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.ContactMethodProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Profiles.AddContactMethod(r.Context(), userID, mux.Vars(r)["guid"], body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) removeContactMethod(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeContactMethod")
	if !ok {
		return
	}
	voidResult(w, inst.Profiles.RemoveContactMethod(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) addUserIdentity(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "addUserIdentity")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.UserIdentityProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Profiles.AddUserIdentity(r.Context(), userID, mux.Vars(r)["guid"], body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) removeUserIdentity(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeUserIdentity")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.Profiles.RemoveUserIdentity(r.Context(), userID, vars["guid"], vars["identityGUID"]))
}
