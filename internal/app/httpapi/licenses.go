package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/properties"
)

func (h *handler) licenseRoutes(r *mux.Router) {
	r.HandleFunc("/license-types", h.createLicenseType).Methods(http.MethodPost)
	r.HandleFunc("/license-types/by-search-string", h.findLicenseTypes).Methods(http.MethodPost)
	r.HandleFunc("/license-types/by-name", h.licenseTypesByName).Methods(http.MethodPost)
	r.HandleFunc("/license-types/{guid}", h.getLicenseType).Methods(http.MethodGet)
	r.HandleFunc("/license-types/{guid}/update", h.updateLicenseType).Methods(http.MethodPost)
	r.HandleFunc("/license-types/{guid}/delete", h.removeLicenseType).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/license-types/{licenseTypeGUID}", h.licenseElement).Methods(http.MethodPost)
	r.HandleFunc("/elements/{guid}/licenses", h.elementLicenses).Methods(http.MethodGet)
	r.HandleFunc("/licenses/{guid}/update", h.updateLicense).Methods(http.MethodPost)
	r.HandleFunc("/licenses/{guid}/delete", h.unlicenseElement).Methods(http.MethodPost)
}

func (h *handler) createLicenseType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createLicenseType")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.LicenseTypeProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Licenses.CreateLicenseType(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateLicenseType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateLicenseType")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.LicenseTypeProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Licenses.UpdateLicenseType(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) removeLicenseType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeLicenseType")
	if !ok {
		return
	}
	voidResult(w, inst.Licenses.RemoveLicenseType(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getLicenseType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getLicenseType")
	if !ok {
		return
	}
	resp, err := one(inst.Licenses.GetLicenseType(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) licenseTypesByName(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getLicenseTypesByName")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &LicenseTypeListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &LicenseTypeListResponse{}) {
		return
	}
	found, err := inst.Licenses.GetLicenseTypesByName(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) findLicenseTypes(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findLicenseTypes")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &LicenseTypeListResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &LicenseTypeListResponse{}) {
		return
	}
	found, err := inst.Licenses.FindLicenseTypes(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) licenseElement(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "licenseElement")
	if !ok {
		return
	}
	var props properties.LicenseProperties
	if err := decodeOptional(r.Body, &props); err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Licenses.LicenseElement(r.Context(), userID, vars["guid"], vars["licenseTypeGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) updateLicense(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateLicense")
	if !ok {
		return
	}
	var props properties.LicenseProperties
	if !bind(w, r, &props, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Licenses.UpdateLicense(r.Context(), userID, mux.Vars(r)["guid"], props)
	guidResult(w, guid, err)
}

func (h *handler) unlicenseElement(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "unlicenseElement")
	if !ok {
		return
	}
	voidResult(w, inst.Licenses.UnlicenseElement(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) elementLicenses(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getLicenses")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &LicenseListResponse{})
	if !ok {
		return
	}
	found, err := inst.Licenses.GetLicenses(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}
