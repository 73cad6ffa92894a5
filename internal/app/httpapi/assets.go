package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
)

// StatusRequestBody changes the status of an element.
type StatusRequestBody struct {
	Status enums.ElementStatus `json:"status"`
}

func (h *handler) assetRoutes(r *mux.Router) {
	r.HandleFunc("/assets", h.createAsset).Methods(http.MethodPost)
	r.HandleFunc("/hosts", h.createHost).Methods(http.MethodPost)
	r.HandleFunc("/software-server-platforms", h.createPlatform).Methods(http.MethodPost)
	r.HandleFunc("/software-servers", h.createServer).Methods(http.MethodPost)
	r.HandleFunc("/assets/by-search-string", h.findAssets).Methods(http.MethodPost)
	r.HandleFunc("/assets/by-name", h.assetsByName).Methods(http.MethodPost)
	r.HandleFunc("/assets/by-deployed-implementation-type", h.assetsByImplementationType).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}", h.getAsset).Methods(http.MethodGet)
	r.HandleFunc("/assets/{guid}/update", h.updateAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/status", h.updateAssetStatus).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/publish", h.publishAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/withdraw", h.withdrawAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/delete", h.removeAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/related-assets", h.relatedAssets).Methods(http.MethodGet)
	r.HandleFunc("/assets/{guid}/related-assets/{relatedGUID}", h.setupRelatedAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/related-assets/{relatedGUID}/delete", h.clearRelatedAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/deployed-on/{infrastructureGUID}", h.deployAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/deployed-on/{infrastructureGUID}/delete", h.clearDeployment).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/deployed-assets", h.deployedAssets).Methods(http.MethodGet)
	r.HandleFunc("/assets/{guid}/schema-type", h.setupSchemaType).Methods(http.MethodPost)
	r.HandleFunc("/assets/{guid}/schema-type", h.getSchemaType).Methods(http.MethodGet)
	r.HandleFunc("/software-servers/{guid}/server-asset-uses", h.serverAssetUses).Methods(http.MethodGet)
	r.HandleFunc("/software-servers/{guid}/server-asset-uses/{assetGUID}", h.setupServerAssetUse).Methods(http.MethodPost)
	r.HandleFunc("/server-asset-uses/{relationshipGUID}/delete", h.clearServerAssetUse).Methods(http.MethodPost)
}

func (h *handler) createAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createAsset")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.AssetProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Assets.CreateAsset(r.Context(), userID, r.URL.Query().Get("typeName"), body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) createHost(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createHost")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.HostProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Assets.CreateHost(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) createPlatform(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createSoftwareServerPlatform")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.PlatformProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Assets.CreateSoftwareServerPlatform(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) createServer(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "createSoftwareServer")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.ServerProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Assets.CreateSoftwareServer(r.Context(), userID, body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) updateAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateAsset")
	if !ok {
		return
	}
	merge, err := boolParam(r, "isMergeUpdate", true)
	if err != nil {
		voidResult(w, err)
		return
	}
	var body ElementRequestBody[properties.AssetProperties]
	fields, ok := bindUpdate(w, r, &body)
	if !ok {
		return
	}
	voidResult(w, inst.Assets.UpdateAsset(r.Context(), userID, mux.Vars(r)["guid"], merge, body.Properties, fields...))
}

func (h *handler) updateAssetStatus(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "updateAssetStatus")
	if !ok {
		return
	}
	var body StatusRequestBody
	if !bind(w, r, &body, &VoidResponse{}) {
		return
	}
	voidResult(w, inst.Assets.UpdateAssetStatus(r.Context(), userID, mux.Vars(r)["guid"], body.Status))
}

func (h *handler) publishAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "publishAsset")
	if !ok {
		return
	}
	voidResult(w, inst.Assets.PublishAsset(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) withdrawAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "withdrawAsset")
	if !ok {
		return
	}
	voidResult(w, inst.Assets.WithdrawAsset(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) removeAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "removeAsset")
	if !ok {
		return
	}
	voidResult(w, inst.Assets.RemoveAsset(r.Context(), userID, mux.Vars(r)["guid"]))
}

func (h *handler) getAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getAsset")
	if !ok {
		return
	}
	resp, err := one(inst.Assets.GetAsset(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}

func (h *handler) findAssets(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "findAssets")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &AssetListResponse{})
	if !ok {
		return
	}
	var body SearchStringRequestBody
	if !bind(w, r, &body, &AssetListResponse{}) {
		return
	}
	found, err := inst.Assets.FindAssets(r.Context(), userID, body.SearchString, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) assetsByName(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getAssetsByName")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &AssetListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &AssetListResponse{}) {
		return
	}
	found, err := inst.Assets.GetAssetsByName(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) assetsByImplementationType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getAssetsByDeployedImplementationType")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &AssetListResponse{})
	if !ok {
		return
	}
	var body NameRequestBody
	if !bind(w, r, &body, &AssetListResponse{}) {
		return
	}
	found, err := inst.Assets.GetAssetsByDeployedImplementationType(r.Context(), userID, body.Name, startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) setupRelatedAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "setupRelatedAsset")
	if !ok {
		return
	}
	props, err := relationshipProps(r)
	if err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Assets.SetupRelatedAsset(r.Context(), userID, vars["guid"], vars["relatedGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) clearRelatedAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "clearRelatedAsset")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.Assets.ClearRelatedAsset(r.Context(), userID, vars["guid"], vars["relatedGUID"]))
}

func (h *handler) relatedAssets(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getRelatedAssets")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &RelatedElementListResponse{})
	if !ok {
		return
	}
	found, err := inst.Assets.GetRelatedAssets(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) deployAsset(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "deployAsset")
	if !ok {
		return
	}
	var props properties.DeploymentProperties
	if err := decodeOptional(r.Body, &props); err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Assets.DeployAsset(r.Context(), userID, vars["guid"], vars["infrastructureGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) clearDeployment(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "clearDeployment")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	voidResult(w, inst.Assets.ClearDeployment(r.Context(), userID, vars["guid"], vars["infrastructureGUID"]))
}

func (h *handler) deployedAssets(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getDeployedAssets")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &RelatedElementListResponse{})
	if !ok {
		return
	}
	found, err := inst.Assets.GetDeployedAssets(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) setupServerAssetUse(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "setupServerAssetUse")
	if !ok {
		return
	}
	var props properties.ServerAssetUseProperties
	if err := decodeOptional(r.Body, &props); err != nil {
		guidResult(w, "", err)
		return
	}
	vars := mux.Vars(r)
	guid, err := inst.Assets.SetupServerAssetUse(r.Context(), userID, vars["guid"], vars["assetGUID"], props)
	guidResult(w, guid, err)
}

func (h *handler) clearServerAssetUse(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "clearServerAssetUse")
	if !ok {
		return
	}
	voidResult(w, inst.Assets.ClearServerAssetUse(r.Context(), userID, mux.Vars(r)["relationshipGUID"]))
}

func (h *handler) serverAssetUses(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getServerAssetUses")
	if !ok {
		return
	}
	startFrom, pageSize, ok := page(w, r, &RelatedElementListResponse{})
	if !ok {
		return
	}
	found, err := inst.Assets.GetServerAssetUses(r.Context(), userID, mux.Vars(r)["guid"], startFrom, pageSize)
	resp, err := many(startFrom, found, err)
	respond(w, resp, err)
}

func (h *handler) setupSchemaType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "setupSchemaType")
	if !ok {
		return
	}
	var body ElementRequestBody[properties.SchemaTypeProperties]
	if !bind(w, r, &body, &GUIDResponse{}) {
		return
	}
	guid, err := inst.Assets.SetupSchemaType(r.Context(), userID, mux.Vars(r)["guid"], body.Properties, body.ExternalSource)
	guidResult(w, guid, err)
}

func (h *handler) getSchemaType(w http.ResponseWriter, r *http.Request) {
	inst, userID, ok := h.instance(w, r, "getSchemaType")
	if !ok {
		return
	}
	resp, err := one(inst.Assets.GetSchemaType(r.Context(), userID, mux.Vars(r)["guid"]))
	respond(w, resp, err)
}
