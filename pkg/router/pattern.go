package router

import (
	"regexp"
	"strings"
	"sync"
)

// placeholderPattern matches {name} segments in a route template.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// pattern is a compiled route template: an anchored regular expression with
// one capturing group per placeholder.
type pattern struct {
	re    *regexp.Regexp
	names []string
}

// patternCache memoizes compilation per distinct template string, so two
// routes sharing a template compile once. A lost store race recompiles an
// identical pattern, which is harmless.
var patternCache sync.Map // template string -> *pattern

// compiledPattern returns the compiled pattern for a template, compiling and
// caching it on first use.
func compiledPattern(template string) *pattern {
	if p, ok := patternCache.Load(template); ok {
		return p.(*pattern)
	}
	p := compilePattern(template)
	patternCache.Store(template, p)
	return p
}

// compilePattern converts a route template into an anchored regexp. Each
// {name} placeholder becomes a capturing group restricted to [a-zA-Z0-9_-]+;
// everything else matches literally. The request may carry a trailing slash
// and a query-string suffix, both ignored.
func compilePattern(template string) *pattern {
	var b strings.Builder
	var names []string
	b.WriteString("^")
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		b.WriteString(`([a-zA-Z0-9_-]+)`)
		names = append(names, template[loc[2]:loc[3]])
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteString(`/?(?:\?.*)?$`)
	return &pattern{re: regexp.MustCompile(b.String()), names: names}
}

// match tests a request URI against the pattern. On success the captured
// parameter values are returned in placeholder declaration order, one per
// placeholder.
func (p *pattern) match(uri string) (bool, []string) {
	m := p.re.FindStringSubmatch(uri)
	if m == nil {
		return false, nil
	}
	params := make([]string, len(p.names))
	copy(params, m[1:])
	return true, params
}
