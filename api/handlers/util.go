package handlers

import (
	"encoding/json"
	"math/big"
	"net/http"
)

// BigInt is encoded as a bare JSON number so amounts keep full precision
type BigInt struct {
	*big.Int
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	if b == nil || b.Int == nil {
		return []byte("null"), nil
	}
	return []byte(b.String()), nil
}

type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	writeResponse(w, errorResponse{Code: code, Error: err.Error()}, code)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeResponse(w, v, http.StatusOK)
}

func writeResponse(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
