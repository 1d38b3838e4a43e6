// Package verifier contains the four claim-verification backends and the
// shared outcome type the orchestrator iterates over.
package verifier

import (
	"context"

	"clarion-backend/models"
)

// Mode labels recorded on the pipeline result.
const (
	ModeOffline    = "offline"
	ModeWeb        = "web"
	ModeAssistant  = "assistant"
	ModeLocalModel = "local_model"
)

// Status distinguishes "found nothing" from "backend misbehaved". The
// fallback policy treats both the same; keeping them apart is for logging.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
)

// Outcome is the uniform result of one cascade stage.
type Outcome struct {
	Verdicts []models.VerdictResult
	Status   Status
	Reason   string
}

// Verifier is one strategy in the verification cascade. Implementations never
// return errors or panic to the caller: failures degrade into Unknown
// verdicts or a non-OK outcome status.
type Verifier interface {
	// Name is the verification-mode label recorded when this backend wins.
	Name() string
	// Polarity declares how this backend's verdicts read as safe/unsafe.
	Polarity() models.Polarity
	// Available reports whether the backend is configured and usable.
	Available(ctx context.Context) bool
	// VerifyClaims checks each claim in order, one verdict per claim.
	VerifyClaims(ctx context.Context, claims []string) Outcome
}

func unknownResult(claim string, evidence ...string) models.VerdictResult {
	return models.VerdictResult{
		Claim:      claim,
		Verdict:    models.VerdictUnknown,
		Evidence:   evidence,
		Similarity: 0.0,
	}
}
