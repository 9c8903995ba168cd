package rules

// Built-in rules. Positive patterns over-approximate real credentials; the
// allowlists only cover the placeholder forms used in docs and examples.
var builtin = []Rule{
	MustNew(Spec{
		Name: "google_oauth_client_secret",
		// real secrets are long; the minimum length keeps GOCSPX-your-client-secret out
		Pattern: `GOCSPX-[0-9A-Za-z_-]{24,}`,
		Allowlist: []string{
			`GOCSPX-your-`,
			`GOCSPX-REDACTED`,
		},
	}),
	MustNew(Spec{
		Name: "google_api_key",
		// AIza + 35 chars (Gemini / Google API keys)
		Pattern: `AIza[0-9A-Za-z_-]{35}`,
		Allowlist: []string{
			`AIza\.{3}`,
			`AIza-your-`,
			`AIza-REDACTED`,
		},
	}),
}

// Default returns the built-in rule set.
func Default() RuleSet {
	return RuleSet{rules: append([]Rule(nil), builtin...)}
}
