package models

import "errors"

// Error taxonomy shared by the provider client, the metrics engine and the
// refresh orchestrator. Missing data is never an error: it is encoded as
// null fields on MetricsRecord.
var (
	// ErrInputShape marks a payload that does not have the expected structure
	// at all (e.g. no closes array). It signals a caller bug or a provider
	// contract break.
	ErrInputShape = errors.New("input shape error")

	// ErrTransport marks a network or HTTP-level failure fetching a symbol.
	ErrTransport = errors.New("transport failure")
)
