package types

// DataEnvelope wraps every successful storefront response body.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody is the client-facing error shape: a stable machine code, a
// safe message, and optional field-level details.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed storefront response body.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
