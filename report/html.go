// Package report renders a finished analysis into a self-contained HTML
// document, styled for on-screen reading and Save-as-PDF printing.
package report

import (
	"fmt"
	"html/template"
	"strings"

	"clarion-backend/models"
	"clarion-backend/verifier"
)

// Very long inputs are truncated in the rendered report.
const maxInputDisplay = 15000

// Options carries the report metadata that is not part of the pipeline
// result itself.
type Options struct {
	SourceURL   string
	SourceLabel string
	InputText   string
}

type reportData struct {
	SourceURL    string
	SourceLabel  string
	InputText    string
	Summary      string
	Confidence   string
	ModeLabel    string
	TopReasons   []string
	Claims       []claimData
	MisScore     string
	MisReasons   []string
	RiskLevel    models.RiskLevel
	RiskClass    string
	RedFlags     []string
	SaferRewrite string
}

type claimData struct {
	Claim        string
	Verdict      models.Verdict
	VerdictClass string
	Confidence   string
	Evidence     []string
}

// RenderHTML builds the report document for one pipeline result.
func RenderHTML(result *models.PipelineResult, opts Options) (string, error) {
	data := reportData{
		SourceURL:    opts.SourceURL,
		SourceLabel:  opts.SourceLabel,
		InputText:    clipInput(opts.InputText),
		Summary:      result.FactCheckSummary,
		Confidence:   fmt.Sprintf("%.0f%%", result.ResponseConfidence*100),
		ModeLabel:    modeLabel(result.VerificationMode),
		TopReasons:   result.TopReasons,
		MisScore:     fmt.Sprintf("%.0f%%", result.Misinformation.RiskScore*100),
		MisReasons:   result.Misinformation.Reasons,
		RiskLevel:    result.SocialEngineering.RiskLevel,
		RiskClass:    riskClass(result.SocialEngineering.RiskLevel),
		RedFlags:     result.SocialEngineering.RedFlags,
		SaferRewrite: strings.TrimSpace(result.SocialEngineering.SaferRewriteSuggestion),
	}
	if data.Summary == "" {
		data.Summary = "No claims to verify"
	}

	for _, c := range result.Claims {
		cd := claimData{
			Claim:        c.Claim,
			Verdict:      c.Verdict,
			VerdictClass: verdictClass(c.Verdict),
			Confidence:   fmt.Sprintf("%.0f%%", c.Similarity*100),
		}
		for i, e := range c.Evidence {
			if i == 5 {
				break
			}
			if len(e) > 2000 {
				e = e[:2000] + "..."
			}
			cd.Evidence = append(cd.Evidence, e)
		}
		data.Claims = append(data.Claims, cd)
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}

func modeLabel(mode string) string {
	switch mode {
	case verifier.ModeAssistant:
		return "Remote assistant"
	case verifier.ModeWeb:
		return "Internet (DuckDuckGo)"
	case "web+assistant":
		return "Internet (DuckDuckGo) + assistant"
	case verifier.ModeLocalModel:
		return "Local phishing model"
	default:
		return "Local knowledge base"
	}
}

func verdictClass(v models.Verdict) string {
	switch v {
	case models.VerdictSupported:
		return "verdict-supported"
	case models.VerdictRefuted:
		return "verdict-refuted"
	default:
		return "verdict-unknown"
	}
}

func riskClass(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return "risk-high"
	case models.RiskMedium:
		return "risk-medium"
	default:
		return "risk-low"
	}
}

func clipInput(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxInputDisplay {
		return text[:maxInputDisplay] + "\n\n[... truncated for report ...]"
	}
	return text
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Clarion Report</title>
<style>
* { box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  font-size: 15px;
  line-height: 1.5;
  color: #1f2937;
  max-width: 800px;
  margin: 0 auto;
  padding: 2rem 1.5rem;
  background: #fff;
}
.report-header { border-bottom: 3px solid #1e3a5f; padding-bottom: 1rem; margin-bottom: 1.5rem; }
.report-header h1 { margin: 0; font-size: 1.75rem; font-weight: 700; color: #1e3a5f; }
.meta-block { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
.meta-line { margin: 0.25rem 0; font-size: 0.95rem; }
.meta-line:first-child { margin-top: 0; }
h2 { font-size: 1.15rem; font-weight: 600; color: #1e3a5f; margin: 1.5rem 0 0.75rem; padding-bottom: 0.35rem; border-bottom: 1px solid #e2e8f0; }
ul { margin: 0.5rem 0; padding-left: 1.5rem; }
li { margin: 0.35rem 0; }
.claim-block { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem 1.25rem; margin: 1rem 0; break-inside: avoid; }
.claim-text { margin: 0 0 0.5rem; }
.claim-verdict { margin: 0 0 0.5rem; font-size: 0.95rem; }
.evidence-list { margin: 0.5rem 0 0; padding-left: 1.25rem; font-size: 0.9rem; }
.verdict-supported { color: #059669; font-weight: 600; }
.verdict-refuted { color: #dc2626; font-weight: 600; }
.verdict-unknown { color: #d97706; font-weight: 600; }
.risk-low { color: #059669; }
.risk-medium { color: #d97706; }
.risk-high { color: #dc2626; }
.section-block { margin-bottom: 1.25rem; }
.report-footer { margin-top: 2rem; padding-top: 1rem; border-top: 1px solid #e2e8f0; font-size: 0.8rem; color: #64748b; }
.input-text { white-space: pre-wrap; word-break: break-word; background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 6px; padding: 1rem; font-size: 0.9rem; max-height: 40em; overflow: auto; margin: 0.5rem 0 0; }
a { color: #1e40af; text-decoration: none; }
a:hover { text-decoration: underline; }
@media print {
  body { padding: 1rem; font-size: 11pt; }
  h2 { break-after: avoid; }
  .claim-block { break-inside: avoid; page-break-inside: avoid; }
}
</style>
</head>
<body>
<header class="report-header">
  <h1>Clarion Report</h1>
</header>

{{if or .SourceLabel .SourceURL .InputText}}
<section class="section-block">
<h2>Input / Analyzed content</h2>
<div class="meta-block">
{{if .SourceLabel}}<p class="meta-line"><strong>Source:</strong> {{if .SourceURL}}<a href="{{.SourceURL}}">{{.SourceLabel}}</a>{{else}}{{.SourceLabel}}{{end}}</p>
{{else if .SourceURL}}<p class="meta-line"><strong>Source URL:</strong> <a href="{{.SourceURL}}">{{.SourceURL}}</a></p>
{{end}}{{if .InputText}}<p class="meta-line"><strong>Text analyzed:</strong></p><pre class="input-text">{{.InputText}}</pre>{{end}}
</div>
</section>
{{end}}

<div class="meta-block">
<p class="meta-line"><strong>Fact check summary:</strong> {{.Summary}}</p>
<p class="meta-line"><strong>Confidence in response:</strong> {{.Confidence}}</p>
<p class="meta-line"><strong>Verification source:</strong> {{.ModeLabel}}</p>
</div>

<section class="section-block">
<h2>Top reasons</h2>
<ul>{{range .TopReasons}}<li>{{.}}</li>{{end}}</ul>
</section>

<section class="section-block">
<h2>Claims and evidence</h2>
{{if .Claims}}{{range .Claims}}<section class="claim-block">
<p class="claim-text"><strong>Claim:</strong> {{.Claim}}</p>
<p class="claim-verdict"><strong>Verdict:</strong> <span class="{{.VerdictClass}}">{{.Verdict}}</span> (confidence: {{.Confidence}})</p>
<ul class="evidence-list">{{range .Evidence}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}{{else}}<p>No claims extracted.</p>{{end}}
</section>

<section class="section-block">
<h2>Misinformation risk</h2>
<p><strong>Risk score:</strong> {{.MisScore}}</p>
<ul>{{range .MisReasons}}<li>{{.}}</li>{{end}}</ul>
</section>

<section class="section-block">
<h2>Social engineering</h2>
<p><strong>Risk level:</strong> <span class="{{.RiskClass}}">{{.RiskLevel}}</span></p>
<ul>{{range .RedFlags}}<li>{{.}}</li>{{end}}</ul>
{{if .SaferRewrite}}<p><strong>Safer approach:</strong> {{.SaferRewrite}}</p>{{end}}
</section>

<footer class="report-footer">
Generated by Clarion
</footer>
</body>
</html>
`))
