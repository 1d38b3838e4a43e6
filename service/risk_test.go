package service

import (
	"strings"
	"testing"

	"clarion-backend/models"
	"clarion-backend/verifier"
)

func evr(claim string, v models.Verdict, evidence ...string) models.VerdictResult {
	return models.VerdictResult{Claim: claim, Verdict: v, Evidence: evidence}
}

func TestDeriveSocialEngineeringPolarity(t *testing.T) {
	// The same verdict set reads oppositely under the two polarities:
	// Supported is safe for fact checks, unsafe for phishing classification.
	verdicts := []models.VerdictResult{
		evr("a", models.VerdictSupported, "evidence a"),
		evr("b", models.VerdictSupported, "evidence b"),
	}

	factual := DeriveSocialEngineering(verdicts, models.PolarityFactual, verifier.ModeWeb)
	if factual.RiskLevel != models.RiskLow {
		t.Errorf("factual polarity risk = %v, want Low", factual.RiskLevel)
	}

	safety := DeriveSocialEngineering(verdicts, models.PolaritySafety, verifier.ModeLocalModel)
	if safety.RiskLevel != models.RiskHigh {
		t.Errorf("safety polarity risk = %v, want High", safety.RiskLevel)
	}
	if len(safety.RedFlags) != 2 || safety.RedFlags[0] != "evidence a" {
		t.Errorf("red flags = %v", safety.RedFlags)
	}
}

func TestDeriveSocialEngineeringHighThreshold(t *testing.T) {
	// Majority rule: High needs at least total/2+1 unsafe verdicts.
	verdicts := []models.VerdictResult{
		evr("a", models.VerdictRefuted, "refutation"),
		evr("b", models.VerdictSupported, "support"),
		evr("c", models.VerdictSupported, "support"),
	}
	got := DeriveSocialEngineering(verdicts, models.PolarityFactual, verifier.ModeWeb)
	if got.RiskLevel != models.RiskMedium {
		t.Errorf("risk = %v, want Medium with 1 of 3 unsafe", got.RiskLevel)
	}

	verdicts = append(verdicts, evr("d", models.VerdictRefuted, "r"))
	verdicts[2].Verdict = models.VerdictRefuted
	got = DeriveSocialEngineering(verdicts, models.PolarityFactual, verifier.ModeWeb)
	if got.RiskLevel != models.RiskHigh {
		t.Errorf("risk = %v, want High with 3 of 4 unsafe", got.RiskLevel)
	}
}

func TestDeriveSocialEngineeringUnknownsAreMedium(t *testing.T) {
	verdicts := []models.VerdictResult{
		evr("a", models.VerdictUnknown, "could not locate this claim in any source"),
	}
	got := DeriveSocialEngineering(verdicts, models.PolarityFactual, verifier.ModeOffline)
	if got.RiskLevel != models.RiskMedium {
		t.Errorf("risk = %v, want Medium for unknowns", got.RiskLevel)
	}
	if got.RedFlags[0] != "could not locate this claim in any source" {
		t.Errorf("red flags = %v", got.RedFlags)
	}
}

func TestDeriveSocialEngineeringLongUnknownEvidence(t *testing.T) {
	long := strings.Repeat("e", 180)
	got := DeriveSocialEngineering(
		[]models.VerdictResult{evr("a", models.VerdictUnknown, long)},
		models.PolarityFactual, verifier.ModeOffline)
	want := "Unclear: " + strings.Repeat("e", 150) + "..."
	if got.RedFlags[0] != want {
		t.Errorf("red flag = %q, want %q", got.RedFlags[0], want)
	}
}

func TestDeriveSocialEngineeringEmptyVerdicts(t *testing.T) {
	got := DeriveSocialEngineering(nil, models.PolarityFactual, verifier.ModeOffline)
	if got.RiskLevel != models.RiskLow {
		t.Errorf("risk = %v, want Low", got.RiskLevel)
	}
	if got.RedFlags[0] != "No claims to verify; no AI verdict available." {
		t.Errorf("red flags = %v", got.RedFlags)
	}
}

func TestDeriveMisinformation(t *testing.T) {
	verdicts := []models.VerdictResult{
		evr("a", models.VerdictRefuted, "contradicted by records"),
		evr("b", models.VerdictSupported, "matches records"),
	}
	got := DeriveMisinformation(verdicts, models.PolarityFactual, verifier.ModeWeb)
	if got.RiskScore != 0.5 {
		t.Errorf("risk score = %v, want 0.5", got.RiskScore)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "contradicted by records" {
		t.Errorf("reasons = %v", got.Reasons)
	}
}

func TestDeriveMisinformationEmptyVerdicts(t *testing.T) {
	got := DeriveMisinformation(nil, models.PolarityFactual, verifier.ModeOffline)
	if got.RiskScore != 0.0 {
		t.Errorf("risk score = %v, want 0.0", got.RiskScore)
	}
}

func TestMisclassificationNeverUnsafe(t *testing.T) {
	verdicts := []models.VerdictResult{
		evr("a", models.VerdictMisclassification, "off-topic evidence"),
	}
	for _, polarity := range []models.Polarity{models.PolarityFactual, models.PolaritySafety} {
		got := DeriveMisinformation(verdicts, polarity, verifier.ModeOffline)
		if got.RiskScore != 0.0 {
			t.Errorf("polarity %v: risk score = %v, want 0.0", polarity, got.RiskScore)
		}
	}
}
