package rewrite

import "github.com/shardeum/sec-im-cleanup/internal/js"

// SimplifyBlocks removes unnecessary braces around single-statement if/else
// branches. Only expression and return statements are unwrapped: a lone
// nested if, loop or declaration keeps its braces, which is what prevents
// the simplification from ever introducing a dangling-else ambiguity.
func SimplifyBlocks(prog *js.Program) *js.Program {
	s := &blockSimplifier{}
	body, changed := rewriteList(s, prog.Body)
	if !changed {
		return prog
	}
	return &js.Program{Body: body, Trailing: prog.Trailing}
}

type blockSimplifier struct{}

func (bs *blockSimplifier) rewriteStmt(s js.Stmt) (js.Stmt, bool) {
	ifStmt, ok := s.(*js.IfStmt)
	if !ok {
		return rewriteGeneric(bs, s)
	}

	then, thenChanged := rewriteBody(bs, ifStmt.Then)
	if bare, ok := unwrapSingle(then); ok {
		then = bare
		thenChanged = true
	}

	var alt js.Stmt
	altChanged := false
	if ifStmt.Else != nil {
		alt, altChanged = rewriteBody(bs, ifStmt.Else)
		if bare, ok := unwrapSingle(alt); ok {
			alt = bare
			altChanged = true
		}
	}

	if !thenChanged && !altChanged {
		return ifStmt, false
	}
	return &js.IfStmt{Leading: ifStmt.Leading, Cond: ifStmt.Cond, Then: then, Else: alt}, true
}

// unwrapSingle returns the bare statement of a one-statement block when that
// statement is an expression or return statement.
func unwrapSingle(s js.Stmt) (js.Stmt, bool) {
	block, ok := s.(*js.BlockStmt)
	if !ok || len(block.List) != 1 {
		return nil, false
	}
	switch inner := block.List[0].(type) {
	case *js.ExprStmt, *js.ReturnStmt:
		return inner, true
	}
	return nil, false
}
