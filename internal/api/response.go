// Package api provides HTTP response utilities for Sampark.
package api

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sampark-health/sampark/internal/models"
)

// Pre-marshaled fallback response to avoid runtime JSON encoding failures
var fallbackErrorResponse []byte

// init validates that our fallback response can be marshaled
func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse writes a JSON response with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	// Marshal first to catch encoding errors before writing headers.
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// twimlResponse is the Twilio reply envelope. Each segment becomes its own
// Message element so the provider delivers them separately.
type twimlResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// writeTwiML writes reply segments as a TwiML document.
func writeTwiML(w http.ResponseWriter, segments []string) {
	body, err := xml.Marshal(twimlResponse{Messages: segments})
	if err != nil {
		slog.Error("Server.writeTwiML: failed to marshal TwiML response", "error", err)
		body = []byte("<Response></Response>")
	}

	w.Header().Set("Content-Type", "application/xml")
	if _, writeErr := w.Write([]byte(xml.Header)); writeErr != nil {
		slog.Error("Server.writeTwiML: failed to write TwiML header", "error", writeErr)
		return
	}
	if _, writeErr := w.Write(body); writeErr != nil {
		slog.Error("Server.writeTwiML: failed to write TwiML response", "error", writeErr)
	}
}
