package dto

import "encoding/json"

// ServiceRequest is the RPC envelope the Sankhya gateway accepts: the
// service name repeated in the body next to a service-specific payload.
type ServiceRequest struct {
	ServiceName string `json:"serviceName"`
	RequestBody any    `json:"requestBody"`
}

// ServiceResponse is the envelope every gateway response shares.
// ResponseBody is kept raw; each caller decodes its own shape.
type ServiceResponse struct {
	Status        string          `json:"status"`
	StatusMessage string          `json:"statusMessage"`
	ResponseBody  json.RawMessage `json:"responseBody"`
}

// Accepted reports whether the gateway accepted the write. Status "0"
// is success; "1" with an empty message is success with warning.
func (r ServiceResponse) Accepted() bool {
	return r.Status == "0" || (r.Status == "1" && r.StatusMessage == "")
}

// Field is Sankhya's dollar-wrapped scalar: {"$": "value"}.
type Field struct {
	Value string `json:"$"`
}
