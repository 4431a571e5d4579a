package spec

import (
	"strings"

	"specgen/internal/naming"
)

// DefaultMaxDepth is the nesting depth beyond which the builder warns.
const DefaultMaxDepth = 50

// BuildConfig is the immutable configuration threaded into Build.
type BuildConfig struct {
	// MaxDepth is the nesting depth that triggers a warning. Exceeding it is not fatal.
	MaxDepth int
	// Naming controls identifier normalization.
	Naming naming.Normalizer
	// Sections maps lowercased section names to scopes.
	Sections map[string]ScopeName
}

// DefaultSections lists the section aliases understood out of the box.
func DefaultSections() map[string]ScopeName {
	return map[string]ScopeName{
		"sharedheader":  ScopeSharedHeader,
		"shared header": ScopeSharedHeader,
		"shared_header": ScopeSharedHeader,
		"header":        ScopeSharedHeader,
		"common":        ScopeSharedHeader,
		"request":       ScopeRequest,
		"req":           ScopeRequest,
		"input":         ScopeRequest,
		"response":      ScopeResponse,
		"resp":          ScopeResponse,
		"output":        ScopeResponse,
	}
}

// DefaultBuildConfig returns the default builder configuration.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxDepth: DefaultMaxDepth,
		Naming:   naming.Normalizer{MaxLength: naming.DefaultMaxLength},
		Sections: DefaultSections(),
	}
}

// ResolveScope maps a section name to its scope.
func (c BuildConfig) ResolveScope(section string) (ScopeName, bool) {
	key := strings.ToLower(strings.TrimSpace(section))

	if name, ok := c.Sections[key]; ok {
		return name, true
	}

	for _, name := range AllScopes {
		if strings.EqualFold(key, string(name)) {
			return name, true
		}
	}

	return "", false
}

func (c BuildConfig) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return c.MaxDepth
}
