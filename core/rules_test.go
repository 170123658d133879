package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func linuxContext() RuleContext {
	return RuleContext{
		Platform:  "linux",
		OS:        "linux",
		OSVersion: "6.8.0",
		Arch:      ArchX64,
	}
}

func TestEvaluateOSRules(t *testing.T) {
	tests := []struct {
		name    string
		ctx     RuleContext
		rules   []Rule
		allowed bool
	}{
		{
			name:    "allow on matching os",
			ctx:     linuxContext(),
			rules:   []Rule{{Action: ActionAllow, OS: &OSRule{Name: "linux"}}},
			allowed: true,
		},
		{
			name:    "allow on mismatched os",
			ctx:     linuxContext(),
			rules:   []Rule{{Action: ActionAllow, OS: &OSRule{Name: "osx"}}},
			allowed: false,
		},
		{
			name: "mojang allow-all plus disallow osx on linux",
			ctx:  linuxContext(),
			rules: []Rule{
				{Action: ActionAllow},
				{Action: ActionDisallow, OS: &OSRule{Name: "osx"}},
			},
			allowed: true,
		},
		{
			name: "mojang allow-all plus disallow osx on osx",
			ctx:  RuleContext{Platform: "darwin", OS: "osx", Arch: ArchARM64},
			rules: []Rule{
				{Action: ActionAllow},
				{Action: ActionDisallow, OS: &OSRule{Name: "osx"}},
			},
			allowed: false,
		},
		{
			name: "version constraint matches",
			ctx:  RuleContext{Platform: "windows", OS: "windows", OSVersion: "10.0.19045", Arch: ArchX64},
			rules: []Rule{
				{Action: ActionAllow, OS: &OSRule{Name: "windows", Version: `^10\.`}},
			},
			allowed: true,
		},
		{
			name: "version constraint rejects",
			ctx:  RuleContext{Platform: "windows", OS: "windows", OSVersion: "6.1.7601", Arch: ArchX64},
			rules: []Rule{
				{Action: ActionAllow, OS: &OSRule{Name: "windows", Version: `^10\.`}},
			},
			allowed: false,
		},
		{
			name:    "arch constraint",
			ctx:     linuxContext(),
			rules:   []Rule{{Action: ActionAllow, OS: &OSRule{Arch: "x86"}}},
			allowed: false,
		},
		{
			name:    "empty rule list allows",
			ctx:     linuxContext(),
			rules:   nil,
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.ctx.Allows(tt.rules))
		})
	}
}

func TestEvaluateFeatureRules(t *testing.T) {
	rules := []Rule{{Action: ActionAllow, Features: map[string]bool{"has_custom_resolution": true}}}

	ctx := linuxContext()
	assert.False(t, ctx.Allows(rules), "inactive feature must not allow")

	ctx.Features.CustomResolution = true
	out := ctx.Evaluate(rules)
	assert.True(t, out.Allowed)
	assert.Nil(t, out.ReplaceWith)

	// Fullscreen replaces the declared width/height value pair.
	ctx.Features.Fullscreen = true
	out = ctx.Evaluate(rules)
	assert.True(t, out.Allowed)
	assert.Equal(t, []string{"--fullscreen", "true"}, out.ReplaceWith)
}

func TestEvaluateUnknownFeatureNeverMatches(t *testing.T) {
	ctx := linuxContext()
	ctx.Features.CustomResolution = true
	rules := []Rule{{Action: ActionAllow, Features: map[string]bool{"is_demo_user": true}}}
	assert.False(t, ctx.Allows(rules))
}

func TestVersionRegexMatches(t *testing.T) {
	assert.True(t, versionRegexMatches(`^10\.`, "10.0.19045"))
	assert.False(t, versionRegexMatches(`^10\.`, "6.1.7601"))
	// A pattern that fails to compile never matches instead of erroring.
	assert.False(t, versionRegexMatches(`(`, "10.0"))
}
