package core

import (
	"github.com/dlclark/regexp2"
)

// FeatureSet holds the launch feature flags that rules can test. Only the
// custom-resolution feature exists in current manifests.
type FeatureSet struct {
	CustomResolution bool
	// Fullscreen swaps the resolution value pair for the fullscreen flag
	// when the custom-resolution rule fires.
	Fullscreen bool
}

func (f FeatureSet) active(name string) bool {
	switch name {
	case "has_custom_resolution":
		return f.CustomResolution
	}
	return false
}

// RuleContext carries the host facts a rule list is evaluated against.
type RuleContext struct {
	Platform  string // runtime.GOOS value
	OS        string // manifest OS name: osx, windows, linux
	OSVersion string
	Arch      string // compact form
	Features  FeatureSet
}

// NewRuleContext builds the evaluation context for the resolved host
// architecture.
func NewRuleContext(arch Architecture, features FeatureSet) RuleContext {
	return RuleContext{
		Platform:  arch.Platform,
		OS:        ManifestOS(arch.Platform),
		OSVersion: osVersion(),
		Arch:      arch.Arch,
		Features:  features,
	}
}

// RuleOutcome is the result of evaluating a rule list. ReplaceWith is
// non-nil when a feature rule substitutes the declared value (the fullscreen
// flag replacing the width/height pair).
type RuleOutcome struct {
	Allowed     bool
	ReplaceWith []string
}

// Evaluate runs the rule list under a counting model: each rule that
// permits inclusion adds to an allow count, and the value is included only
// when the count equals the rule count. An empty rule list always allows.
func (c RuleContext) Evaluate(rules []Rule) RuleOutcome {
	allowed := 0
	var replace []string

	for _, rule := range rules {
		switch {
		case rule.OS != nil:
			matched := c.osRuleMatches(rule.OS)
			if rule.Action == ActionDisallow {
				if !matched {
					allowed++
				}
			} else if matched {
				allowed++
			}
		case rule.Features != nil:
			if c.featuresMatch(rule.Features) {
				allowed++
				if c.Features.CustomResolution && c.Features.Fullscreen {
					replace = []string{"--fullscreen", "true"}
				}
			}
		default:
			// A bare rule matches unconditionally; a bare disallow can
			// therefore never contribute.
			if rule.Action != ActionDisallow {
				allowed++
			}
		}
	}

	if allowed != len(rules) {
		return RuleOutcome{}
	}
	return RuleOutcome{Allowed: true, ReplaceWith: replace}
}

// Allows reports whether a rule list permits the current host, ignoring any
// value replacement. Library filtering uses this form.
func (c RuleContext) Allows(rules []Rule) bool {
	return c.Evaluate(rules).Allowed
}

func (c RuleContext) osRuleMatches(os *OSRule) bool {
	if os.Name != "" && !SameOS(os.Name, c.OS) {
		return false
	}
	if os.Arch != "" && !SameArch(os.Arch, c.Arch, c.Platform) {
		return false
	}
	if os.Version != "" && !versionRegexMatches(os.Version, c.OSVersion) {
		return false
	}
	return true
}

func (c RuleContext) featuresMatch(features map[string]bool) bool {
	for name, want := range features {
		if c.Features.active(name) != want {
			return false
		}
	}
	return true
}

// versionRegexMatches tests a manifest version constraint against the host
// OS version. Manifest patterns are authored for a .NET-style engine, so a
// pattern that the stdlib engine rejects must still evaluate instead of
// erroring; a pattern that fails to compile never matches.
func versionRegexMatches(pattern, version string) bool {
	re, err := regexp2.Compile(pattern, 0)
	if err != nil {
		return false
	}
	matched, err := re.MatchString(version)
	return err == nil && matched
}
