package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/internal/httputil"
)

// FFDCResponse is embedded in every response.
type FFDCResponse = httputil.FFDCResponse

type envelope interface {
	Envelope() *FFDCResponse
}

// VoidResponse carries no result.
type VoidResponse struct {
	FFDCResponse
}

// GUIDResponse returns the GUID of a new element or relationship.
type GUIDResponse struct {
	FFDCResponse
	GUID string `json:"guid,omitempty"`
}

// CountResponse returns a count.
type CountResponse struct {
	FFDCResponse
	Count int `json:"count"`
}

// ElementResponse returns one element.
type ElementResponse[T any] struct {
	FFDCResponse
	Element *T `json:"element,omitempty"`
}

// ElementsResponse returns a page of elements.
type ElementsResponse[T any] struct {
	FFDCResponse
	StartFrom int `json:"startFrom"`
	Elements  []T `json:"elements,omitempty"`
}

// Typed envelopes returned by the access service.
type (
	AssetResponse              = ElementResponse[elements.AssetElement]
	AssetListResponse          = ElementsResponse[elements.AssetElement]
	ProcessResponse            = ElementResponse[elements.ProcessElement]
	ProcessListResponse        = ElementsResponse[elements.ProcessElement]
	SchemaTypeResponse         = ElementResponse[elements.SchemaTypeElement]
	ITProfileResponse          = ElementResponse[elements.ITProfileElement]
	ITProfileListResponse      = ElementsResponse[elements.ITProfileElement]
	CommentResponse            = ElementResponse[elements.CommentElement]
	CommentListResponse        = ElementsResponse[elements.CommentElement]
	CollectionResponse         = ElementResponse[elements.CollectionElement]
	CollectionListResponse     = ElementsResponse[elements.CollectionElement]
	ExternalReferenceResponse  = ElementResponse[elements.ExternalReferenceElement]
	ExternalReferencesResponse = ElementsResponse[elements.ExternalReferenceElement]
	LicenseTypeResponse        = ElementResponse[elements.LicenseTypeElement]
	LicenseTypeListResponse    = ElementsResponse[elements.LicenseTypeElement]
	LicenseListResponse        = ElementsResponse[elements.LicenseElement]
	RelatedElementListResponse = ElementsResponse[elements.RelatedElement]
)

// ElementRequestBody carries new or updated properties together with the
// external source that owns the element.
type ElementRequestBody[P any] struct {
	handlers.ExternalSource
	Properties P `json:"properties"`
}

// SearchStringRequestBody carries a regular expression.
type SearchStringRequestBody struct {
	SearchString string `json:"searchString"`
}

// NameRequestBody carries an exact name.
type NameRequestBody struct {
	Name string `json:"name"`
}

// respond writes resp, or an error envelope of the same type when err is
// set. The HTTP status always equals relatedHTTPCode.
func respond[E envelope](w http.ResponseWriter, resp E, err error) {
	base := resp.Envelope()
	if err != nil {
		*base = httputil.Failure(err)
	} else if base.RelatedHTTPCode == 0 {
		base.RelatedHTTPCode = http.StatusOK
	}
	httputil.WriteJSON(w, base.RelatedHTTPCode, resp)
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	empty, err := decodeBody(body, dst)
	if empty {
		return errors.NullParameter("requestBody", "decode")
	}
	return err
}

// decodeOptional accepts an empty body.
func decodeOptional(body io.ReadCloser, dst interface{}) error {
	_, err := decodeBody(body, dst)
	return err
}

func decodeBody(body io.ReadCloser, dst interface{}) (bool, error) {
	if body == nil {
		return true, nil
	}
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return true, nil
		}
		return false, errors.InvalidParameter("requestBody", err.Error())
	}
	return false, nil
}

func paging(r *http.Request) (startFrom, pageSize int, err error) {
	q := r.URL.Query()
	if startFrom, err = intParam(q.Get("startFrom"), "startFrom"); err != nil {
		return 0, 0, err
	}
	if pageSize, err = intParam(q.Get("pageSize"), "pageSize"); err != nil {
		return 0, 0, err
	}
	return startFrom, pageSize, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidParameter(name, "must be an integer")
	}
	return n, nil
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.InvalidParameter(name, "must be true or false")
	}
	return b, nil
}

// one wraps a single lookup result.
func one[T any](el T, err error) (*ElementResponse[T], error) {
	resp := &ElementResponse[T]{}
	if err == nil {
		resp.Element = &el
	}
	return resp, err
}

// many wraps a page of results.
func many[T any](startFrom int, found []T, err error) (*ElementsResponse[T], error) {
	return &ElementsResponse[T]{StartFrom: startFrom, Elements: found}, err
}

// bind decodes a required body, writing resp as the error envelope on
// failure.
func bind[E envelope](w http.ResponseWriter, r *http.Request, dst interface{}, resp E) bool {
	if err := decodeJSON(r.Body, dst); err != nil {
		respond(w, resp, err)
		return false
	}
	return true
}

// bindUpdate binds an update body and returns the names of the properties
// it carries. A merge update only touches those.
func bindUpdate[P any](w http.ResponseWriter, r *http.Request, body *ElementRequestBody[P]) ([]string, bool) {
	if r.Body == nil {
		respond(w, &VoidResponse{}, errors.NullParameter("requestBody", "decode"))
		return nil, false
	}
	raw, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		respond(w, &VoidResponse{}, errors.InvalidParameter("requestBody", err.Error()))
		return nil, false
	}
	if err := decodeJSON(io.NopCloser(bytes.NewReader(raw)), body); err != nil {
		respond(w, &VoidResponse{}, err)
		return nil, false
	}
	var sent struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &sent); err != nil || sent.Properties == nil {
		return nil, true
	}
	fields := make([]string, 0, len(sent.Properties))
	for name := range sent.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields, true
}

// page reads the paging parameters, writing resp as the error envelope on
// failure.
func page[E envelope](w http.ResponseWriter, r *http.Request, resp E) (int, int, bool) {
	startFrom, pageSize, err := paging(r)
	if err != nil {
		respond(w, resp, err)
		return 0, 0, false
	}
	return startFrom, pageSize, true
}

// relationshipProps decodes optional relationship properties. An empty body
// yields nil.
func relationshipProps(r *http.Request) (*properties.RelationshipProperties, error) {
	var props properties.RelationshipProperties
	empty, err := decodeBody(r.Body, &props)
	if err != nil || empty {
		return nil, err
	}
	return &props, nil
}

func voidResult(w http.ResponseWriter, err error) {
	respond(w, &VoidResponse{}, err)
}

func guidResult(w http.ResponseWriter, guid string, err error) {
	respond(w, &GUIDResponse{GUID: guid}, err)
}
