package rewrite

import "github.com/shardeum/sec-im-cleanup/internal/js"

// Matcher decides whether a call expression is an instrumentation call
// eligible for removal.
type Matcher struct {
	sinkObject string
	sinkMethod string
	denylist   map[string]struct{}
}

// NewMatcher builds a Matcher from the configured logging sink pair and the
// denylist of method names.
func NewMatcher(sinkObject, sinkMethod string, names []string) *Matcher {
	m := &Matcher{
		sinkObject: sinkObject,
		sinkMethod: sinkMethod,
		denylist:   make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		m.denylist[name] = struct{}{}
	}
	return m
}

// Removable reports whether the call should be stripped. Only member-style
// calls are eligible: the callee must be a property access `X.method` where
// either X is the logging sink identifier and method its entry point, or the
// method name is on the denylist regardless of receiver. Calls to bare
// identifiers never match.
func (m *Matcher) Removable(call *js.CallExpr) bool {
	member, ok := call.Callee.(*js.MemberExpr)
	if !ok {
		return false
	}
	if obj, ok := member.Obj.(*js.Ident); ok &&
		obj.Name == m.sinkObject && member.Prop == m.sinkMethod {
		return true
	}
	_, listed := m.denylist[member.Prop]
	return listed
}
