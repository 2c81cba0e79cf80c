package acl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

var errNotObject = errors.New("response is not a JSON object")

// translateResponse turns an HTTP response into an UpstreamResult.
// The caller still owns and closes resp.Body.
func translateResponse(resp *http.Response) *domain.UpstreamResult {
	if !acceptedStatus(resp.StatusCode) {
		return statusFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportFailure(err)
	}

	body, err := decodeObject(raw)
	if err != nil {
		return decodeFailure(resp.StatusCode, err, string(raw))
	}

	return translateBody(resp.StatusCode, body)
}

func acceptedStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated
}

// decodeObject decodes a JSON object, keeping numbers exact.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}

	return obj, nil
}

// translateBody reads the success flag and error text from a decoded body and
// injects the observed status code.
func translateBody(code int, body map[string]any) *domain.UpstreamResult {
	body["http_code"] = code

	r := &domain.UpstreamResult{
		Success:  truthy(body["success"]),
		Body:     body,
		HTTPCode: code,
	}

	if !r.Success {
		r.Kind = domain.ErrorKindBusiness
		r.Error = errorText(body["error"])
	}

	return r
}

// truthy follows loose JSON truthiness: false, 0, "", null, {} and [] are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// errorText renders the body's error field. Absent or null yields "", which
// lets callers substitute their own fallback.
func errorText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}

		return string(b)
	}
}
