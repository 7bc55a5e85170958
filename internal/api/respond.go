package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MikeSquared-Agency/CreditScore/internal/assessment"
	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
)

// maxBodyBytes bounds request bodies; applicant records are small.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeInputError answers 422 with the offending field.
func writeInputError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": err.Error(),
		"field": assessment.InvalidField(err),
	})
}

// decodeBody decodes a JSON object into v. Numbers are kept as json.Number
// so integer fields survive without float rounding.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func isInputError(err error) bool {
	return errors.Is(err, scoring.ErrInvalidInput)
}
