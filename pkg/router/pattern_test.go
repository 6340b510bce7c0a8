package router

import (
	"reflect"
	"testing"
)

func TestCompilePatternMatching(t *testing.T) {
	tests := []struct {
		name       string
		template   string
		uri        string
		wantMatch  bool
		wantParams []string
	}{
		{"exact literal", "/users", "/users", true, []string{}},
		{"literal with trailing slash", "/users", "/users/", true, []string{}},
		{"literal with query string", "/users", "/users?page=2", true, []string{}},
		{"literal trailing slash and query", "/users", "/users/?page=2", true, []string{}},
		{"literal mismatch", "/users", "/user", false, nil},
		{"literal is not a prefix match", "/users", "/users/42", false, nil},
		{"root", "/", "/", true, []string{}},
		{"single param", "/users/{id}", "/users/42", true, []string{"42"}},
		{"param with allowed charset", "/users/{id}", "/users/abc_DEF-123", true, []string{"abc_DEF-123"}},
		{"param rejects extra segment", "/users/{id}", "/users/42/posts", false, nil},
		{"param rejects empty segment", "/users/{id}", "/users/", false, nil},
		{"param rejects disallowed chars", "/users/{id}", "/users/a.b", false, nil},
		{"param with query string", "/users/{id}", "/users/42?full=1", true, []string{"42"}},
		{"two params in order", "/users/{uid}/posts/{pid}", "/users/7/posts/9", true, []string{"7", "9"}},
		{"literal dot is escaped", "/files/v1.2", "/files/v1.2", true, []string{}},
		{"literal dot does not wildcard", "/files/v1.2", "/files/v1x2", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compilePattern(tt.template)
			ok, params := p.match(tt.uri)
			if ok != tt.wantMatch {
				t.Fatalf("match(%q) = %v, want %v", tt.uri, ok, tt.wantMatch)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("params = %v, want %v", params, tt.wantParams)
			}
		})
	}
}

func TestCompilePatternParamCountMatchesPlaceholders(t *testing.T) {
	p := compilePattern("/a/{x}/b/{y}/c/{z}")
	ok, params := p.match("/a/1/b/2/c/3")
	if !ok {
		t.Fatal("expected match")
	}
	if len(params) != 3 {
		t.Fatalf("len(params) = %d, want 3", len(params))
	}
}

func TestCompiledPatternMemoizesPerTemplate(t *testing.T) {
	first := compiledPattern("/memo/{id}")
	second := compiledPattern("/memo/{id}")
	if first != second {
		t.Error("expected identical *pattern for repeated template")
	}

	other := compiledPattern("/memo/{name}")
	if first == other {
		t.Error("expected distinct patterns for distinct templates")
	}
}
