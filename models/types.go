// Package models contain needed models
package models

import "lsb-steganography/carrier"

// EmbedResponse is returned when embedding fails. Successful calls stream
// the stego file and report quality figures in X-Stego-* headers.
type EmbedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExtractResponse represents the response after a failed extraction
type ExtractResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CapacityResponse reports how much a carrier can hold.
type CapacityResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message,omitempty"`
	Samples       int               `json:"samples"`
	CapacityBits  int               `json:"capacity_bits"`
	CapacityBytes int               `json:"capacity_bytes"`
	Carrier       *carrier.Metadata `json:"carrier,omitempty"`
}
