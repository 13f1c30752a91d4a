package rewrite

import "github.com/shardeum/sec-im-cleanup/internal/js"

// RemoveCalls strips removable instrumentation calls from the tree and
// cascades the removal through enclosing if/else structure. The input tree
// is never mutated; unaffected subtrees are reused as-is.
func RemoveCalls(prog *js.Program, m *Matcher) *js.Program {
	r := &callRemover{matcher: m}
	body, changed := rewriteList(r, prog.Body)
	if !changed {
		return prog
	}
	return &js.Program{Body: body, Trailing: prog.Trailing}
}

type callRemover struct {
	matcher *Matcher
}

func (r *callRemover) rewriteStmt(s js.Stmt) (js.Stmt, bool) {
	switch s := s.(type) {
	case *js.ExprStmt:
		if call, ok := s.X.(*js.CallExpr); ok && r.matcher.Removable(call) {
			return nil, true
		}
		return rewriteGeneric(r, s)
	case *js.IfStmt:
		return r.rewriteIf(s)
	case *js.BlockStmt:
		list, ch := rewriteList(r, s.List)
		if len(list) == 0 {
			// an emptied block vanishes rather than serializing as {}
			return nil, true
		}
		if !ch {
			return s, false
		}
		return &js.BlockStmt{Leading: s.Leading, List: list}, true
	}
	return rewriteGeneric(r, s)
}

// rewriteIf applies the removal cascade. Branch shapes are judged on the
// original, pre-rewrite nodes; the surviving side carries its rewritten form.
func (r *callRemover) rewriteIf(s *js.IfStmt) (js.Stmt, bool) {
	newThen, thenChanged := r.rewriteStmt(s.Then)
	var newElse js.Stmt
	elseChanged := false
	if s.Else != nil {
		newElse, elseChanged = r.rewriteStmt(s.Else)
	}

	switch {
	case r.soleRemovableCall(s.Then):
		// The branch existed only to fire the instrumentation call: the
		// whole conditional collapses to the else side, condition and all.
		return newElse, true
	case s.Else != nil && r.soleRemovableCall(s.Else):
		if newThen == nil {
			return nil, true
		}
		return &js.IfStmt{Leading: s.Leading, Cond: s.Cond, Then: newThen, Else: nil}, true
	case newThen == nil:
		return newElse, true
	case thenChanged || elseChanged:
		return &js.IfStmt{Leading: s.Leading, Cond: s.Cond, Then: newThen, Else: newElse}, true
	}
	return s, false
}

// soleRemovableCall reports whether a branch consists of exactly one
// expression statement wrapping a removable call, either bare or as the only
// statement of a block.
func (r *callRemover) soleRemovableCall(s js.Stmt) bool {
	if block, ok := s.(*js.BlockStmt); ok {
		if len(block.List) != 1 {
			return false
		}
		s = block.List[0]
	}
	es, ok := s.(*js.ExprStmt)
	if !ok {
		return false
	}
	call, ok := es.X.(*js.CallExpr)
	return ok && r.matcher.Removable(call)
}
