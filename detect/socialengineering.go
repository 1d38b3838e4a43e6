package detect

import (
	"fmt"
	"regexp"
	"strings"

	"clarion-backend/models"
	"clarion-backend/textproc"
)

var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(act now|act immediately|within 24 hours|within 48 hours)\b`),
	regexp.MustCompile(`(?i)\b(urgent|asap|right away|don't wait)\b`),
	regexp.MustCompile(`(?i)\b(limited time|expires soon|last chance)\b`),
	regexp.MustCompile(`(?i)\b(account (will be|has been) (suspended|closed|locked))\b`),
	regexp.MustCompile(`(?i)\b(verify (now|immediately)|confirm (now|immediately))\b`),
}

var authorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(IRS|Internal Revenue Service|tax (authority|office))\b`),
	regexp.MustCompile(`(?i)\b(bank|credit union|financial institution)\b`),
	regexp.MustCompile(`(?i)\b(police|FBI|law enforcement|government)\b`),
	regexp.MustCompile(`(?i)\b(tech support|Microsoft|Apple|Amazon)\b`),
	regexp.MustCompile(`(?i)\b(Social Security|SSA|Medicare)\b`),
}

var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(password|login|credentials|account (details|info))\b`),
	regexp.MustCompile(`(?i)\b(verify your (identity|account|email))\b`),
	regexp.MustCompile(`(?i)\b(click (here|below) to (log in|verify|confirm))\b`),
	regexp.MustCompile(`(?i)\b(enter your (password|PIN|SSN))\b`),
}

var moneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(wire (transfer|money)|send (money|cash))\b`),
	regexp.MustCompile(`(?i)\b(gift card|iTunes|Amazon|Google Play)\b`),
	regexp.MustCompile(`(?i)\b(pay (now|immediately)|payment (required|due))\b`),
	regexp.MustCompile(`(?i)\b(bitcoin|crypto|cryptocurrency)\b`),
	regexp.MustCompile(`(?i)\b(prize|winner|you've won|claim your)\b`),
}

var genericGreetingRE = regexp.MustCompile(`(?i)\b(dear (customer|user|valued))\b`)

func countMatches(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

// SocialEngineering flags phishing and scam pressure tactics in the text and
// suggests how a legitimate version of the message would read.
func SocialEngineering(text string) models.SocialEngineeringResult {
	if strings.TrimSpace(text) == "" {
		return models.SocialEngineeringResult{
			RiskLevel:              models.RiskLow,
			RedFlags:               []string{},
			SaferRewriteSuggestion: "No content to analyze.",
		}
	}
	text = textproc.CleanText(text)

	var redFlags []string

	urgency := countMatches(text, urgencyPatterns)
	switch {
	case urgency >= 2:
		redFlags = append(redFlags, "Strong urgency pressure (act now, limited time)")
	case urgency == 1:
		redFlags = append(redFlags, "Urgency language detected")
	}

	if countMatches(text, authorityPatterns) >= 1 {
		redFlags = append(redFlags, "Possible authority impersonation (bank, IRS, etc.)")
	}

	credentials := countMatches(text, credentialPatterns)
	switch {
	case credentials >= 2:
		redFlags = append(redFlags, "Multiple credential/verification requests")
	case credentials == 1:
		redFlags = append(redFlags, "Request for login/verification")
	}

	if countMatches(text, moneyPatterns) >= 1 {
		redFlags = append(redFlags, "Money/gift card/crypto request")
	}

	if urls := textproc.ExtractURLs(text); len(urls) > 0 {
		redFlags = append(redFlags, fmt.Sprintf("Suspicious links present (%d URL(s))", len(urls)))
	}

	if genericGreetingRE.MatchString(text) {
		redFlags = append(redFlags, "Generic greeting (common in phishing)")
	}

	level := models.RiskLow
	switch {
	case len(redFlags) >= 4:
		level = models.RiskHigh
	case len(redFlags) >= 2:
		level = models.RiskMedium
	}

	suggestion := saferRewrite(redFlags)
	if len(redFlags) == 0 {
		redFlags = []string{"No obvious scam signals detected"}
	}
	return models.SocialEngineeringResult{
		RiskLevel:              level,
		RedFlags:               redFlags,
		SaferRewriteSuggestion: suggestion,
	}
}

func saferRewrite(redFlags []string) string {
	if len(redFlags) == 0 {
		return "Original text appears low-risk. No rewrite needed."
	}

	var tips []string
	flagged := func(substrings ...string) bool {
		for _, f := range redFlags {
			lower := strings.ToLower(f)
			for _, s := range substrings {
				if strings.Contains(lower, s) {
					return true
				}
			}
		}
		return false
	}
	if flagged("urgency") {
		tips = append(tips, "Remove urgency language—legitimate organizations don't pressure you to act immediately.")
	}
	if flagged("authority") {
		tips = append(tips, "Verify sender through official channels—don't trust contact info in the message.")
	}
	if flagged("credential", "login") {
		tips = append(tips, "Never enter passwords via links in messages—go directly to the official site.")
	}
	if flagged("money", "gift") {
		tips = append(tips, "Legitimate organizations rarely ask for gift cards or wire transfers.")
	}
	if flagged("link") {
		tips = append(tips, "Hover over links to check URLs before clicking—or avoid clicking entirely.")
	}
	return "Safer approach: " + strings.Join(tips, " ")
}
