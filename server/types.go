package server

// PlateRequest is the body of a plate resolution request
type PlateRequest struct {
	Plate string `json:"plate"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	APICode int    `json:"api_code,omitempty"` // the upstream's own error code, if any
}

// DepreciationRequest is the body of a depreciation request.
// The token comes from a resolved vehicle
type DepreciationRequest struct {
	DepreciationToken string `json:"depreciation_token"`
}
