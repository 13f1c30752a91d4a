package rewrite

import "github.com/shardeum/sec-im-cleanup/internal/js"

// pass is a bottom-up statement transform. rewriteStmt returns the
// replacement statement and whether anything changed; a nil statement means
// the position is removed entirely.
type pass interface {
	rewriteStmt(s js.Stmt) (js.Stmt, bool)
}

// rewriteList applies the pass to every statement of a list, dropping
// removed positions. An if statement that collapsed to its else block has
// that block's statements spliced in rather than kept as a braced block,
// unless the block carries block-scoped declarations whose bindings the
// braces establish. The input slice is never mutated.
func rewriteList(p pass, list []js.Stmt) ([]js.Stmt, bool) {
	changed := false
	out := make([]js.Stmt, 0, len(list))
	for _, s := range list {
		ns, ch := p.rewriteStmt(s)
		changed = changed || ch
		if ns == nil {
			changed = true
			continue
		}
		if _, wasIf := s.(*js.IfStmt); wasIf {
			if block, ok := ns.(*js.BlockStmt); ok && spliceSafe(block.List) {
				out = append(out, block.List...)
				changed = true
				continue
			}
		}
		out = append(out, ns)
	}
	if !changed {
		return list, false
	}
	return out, true
}

// spliceSafe reports whether the statements can be lifted out of their block
// without moving a binding into the enclosing scope. let/const, function and
// class declarations are scoped to the block that holds them; var is not.
func spliceSafe(list []js.Stmt) bool {
	for _, s := range list {
		switch s := s.(type) {
		case *js.VarDecl:
			if s.Kind != "var" {
				return false
			}
		case *js.FuncDecl, *js.ClassDecl:
			return false
		}
	}
	return true
}

// rewriteBody rewrites a loop or branch body statement. A body that resolves
// to nothing becomes an empty block so the enclosing construct stays valid.
func rewriteBody(p pass, s js.Stmt) (js.Stmt, bool) {
	ns, ch := p.rewriteStmt(s)
	if ns == nil {
		return &js.BlockStmt{}, true
	}
	return ns, ch
}

// rewriteBlock rewrites a required block (function body, try clause),
// keeping the block node even when it empties.
func rewriteBlock(p pass, b *js.BlockStmt) (*js.BlockStmt, bool) {
	if b == nil {
		return nil, false
	}
	list, ch := rewriteList(p, b.List)
	if !ch {
		return b, false
	}
	return &js.BlockStmt{Leading: b.Leading, List: list}, true
}

// rewriteGeneric handles every statement kind that a pass does not treat
// specially: children are rewritten independently and the node is rebuilt
// only when at least one of them changed.
func rewriteGeneric(p pass, s js.Stmt) (js.Stmt, bool) {
	switch s := s.(type) {
	case *js.BlockStmt:
		list, ch := rewriteList(p, s.List)
		if !ch {
			return s, false
		}
		return &js.BlockStmt{Leading: s.Leading, List: list}, true
	case *js.ExprStmt:
		x, ch := rewriteExpr(p, s.X)
		if !ch {
			return s, false
		}
		return &js.ExprStmt{Leading: s.Leading, X: x}, true
	case *js.ReturnStmt:
		if s.X == nil {
			return s, false
		}
		x, ch := rewriteExpr(p, s.X)
		if !ch {
			return s, false
		}
		return &js.ReturnStmt{Leading: s.Leading, X: x}, true
	case *js.ThrowStmt:
		x, ch := rewriteExpr(p, s.X)
		if !ch {
			return s, false
		}
		return &js.ThrowStmt{Leading: s.Leading, X: x}, true
	case *js.VarDecl:
		return rewriteVarDecl(p, s)
	case *js.FuncDecl:
		body, ch := rewriteBlock(p, s.Body)
		if !ch {
			return s, false
		}
		return &js.FuncDecl{Leading: s.Leading, Async: s.Async, Name: s.Name, Params: s.Params, Body: body}, true
	case *js.WhileStmt:
		body, ch := rewriteBody(p, s.Body)
		cond, ch2 := rewriteExpr(p, s.Cond)
		if !ch && !ch2 {
			return s, false
		}
		return &js.WhileStmt{Leading: s.Leading, Cond: cond, Body: body}, true
	case *js.DoWhileStmt:
		body, ch := rewriteBody(p, s.Body)
		cond, ch2 := rewriteExpr(p, s.Cond)
		if !ch && !ch2 {
			return s, false
		}
		return &js.DoWhileStmt{Leading: s.Leading, Body: body, Cond: cond}, true
	case *js.ForStmt:
		return rewriteFor(p, s)
	case *js.ForInStmt:
		right, ch := rewriteExpr(p, s.Right)
		body, ch2 := rewriteBody(p, s.Body)
		if !ch && !ch2 {
			return s, false
		}
		return &js.ForInStmt{Leading: s.Leading, Kind: s.Kind, Left: s.Left, Of: s.Of, Right: right, Body: body}, true
	case *js.TryStmt:
		block, ch := rewriteBlock(p, s.Block)
		catch, ch2 := rewriteBlock(p, s.Catch)
		fin, ch3 := rewriteBlock(p, s.Finally)
		if !ch && !ch2 && !ch3 {
			return s, false
		}
		return &js.TryStmt{Leading: s.Leading, Block: block, Param: s.Param, Catch: catch, Finally: fin}, true
	case *js.SwitchStmt:
		changed := false
		cases := make([]js.SwitchCase, len(s.Cases))
		for i, c := range s.Cases {
			body, ch := rewriteList(p, c.Body)
			changed = changed || ch
			cases[i] = js.SwitchCase{Test: c.Test, Body: body}
		}
		if !changed {
			return s, false
		}
		return &js.SwitchStmt{Leading: s.Leading, Disc: s.Disc, Cases: cases}, true
	case *js.ClassDecl:
		changed := false
		members := make([]js.ClassMember, len(s.Members))
		for i, m := range s.Members {
			nm := m
			if m.Body != nil {
				body, ch := rewriteBlock(p, m.Body)
				changed = changed || ch
				nm.Body = body
			}
			if m.Value != nil {
				value, ch := rewriteExpr(p, m.Value)
				changed = changed || ch
				nm.Value = value
			}
			members[i] = nm
		}
		if !changed {
			return s, false
		}
		return &js.ClassDecl{Leading: s.Leading, Name: s.Name, Super: s.Super, Members: members}, true
	case *js.ExportStmt:
		if s.Decl == nil {
			return s, false
		}
		decl, ch := p.rewriteStmt(s.Decl)
		if decl == nil {
			return nil, true
		}
		if !ch {
			return s, false
		}
		return &js.ExportStmt{Leading: s.Leading, Default: s.Default, Decl: decl}, true
	}
	// Ident-able leaves: break, continue, empty, import
	return s, false
}

func rewriteVarDecl(p pass, s *js.VarDecl) (js.Stmt, bool) {
	changed := false
	decls := make([]js.VarDeclarator, len(s.Decls))
	for i, d := range s.Decls {
		nd := d
		if d.Init != nil {
			init, ch := rewriteExpr(p, d.Init)
			changed = changed || ch
			nd.Init = init
		}
		decls[i] = nd
	}
	if !changed {
		return s, false
	}
	return &js.VarDecl{Leading: s.Leading, Kind: s.Kind, Decls: decls}, true
}

func rewriteFor(p pass, s *js.ForStmt) (js.Stmt, bool) {
	changed := false
	init := s.Init
	switch i := s.Init.(type) {
	case *js.VarDecl:
		ni, ch := rewriteVarDecl(p, i)
		changed = changed || ch
		init = ni
	case js.Expr:
		ni, ch := rewriteExpr(p, i)
		changed = changed || ch
		init = ni
	}
	cond := s.Cond
	if cond != nil {
		var ch bool
		cond, ch = rewriteExpr(p, cond)
		changed = changed || ch
	}
	post := s.Post
	if post != nil {
		var ch bool
		post, ch = rewriteExpr(p, post)
		changed = changed || ch
	}
	body, ch := rewriteBody(p, s.Body)
	changed = changed || ch
	if !changed {
		return s, false
	}
	return &js.ForStmt{Leading: s.Leading, Init: init, Cond: cond, Post: post, Body: body}, true
}

// rewriteExpr descends into expressions so statements nested in function
// literals are still visited. Expression structure itself is never changed
// by any pass, only the statement lists inside function bodies.
func rewriteExpr(p pass, e js.Expr) (js.Expr, bool) {
	switch e := e.(type) {
	case *js.FuncExpr:
		body, ch := rewriteBlock(p, e.Body)
		if !ch {
			return e, false
		}
		return &js.FuncExpr{Async: e.Async, Name: e.Name, Params: e.Params, Body: body}, true
	case *js.ArrowFunc:
		if block, ok := e.Body.(*js.BlockStmt); ok {
			body, ch := rewriteBlock(p, block)
			if !ch {
				return e, false
			}
			return &js.ArrowFunc{Async: e.Async, Params: e.Params, Body: body}, true
		}
		x, ch := rewriteExpr(p, e.Body.(js.Expr))
		if !ch {
			return e, false
		}
		return &js.ArrowFunc{Async: e.Async, Params: e.Params, Body: x}, true
	case *js.CallExpr:
		callee, ch := rewriteExpr(p, e.Callee)
		args, ch2 := rewriteExprList(p, e.Args)
		if !ch && !ch2 {
			return e, false
		}
		return &js.CallExpr{Callee: callee, Args: args}, true
	case *js.NewExpr:
		callee, ch := rewriteExpr(p, e.Callee)
		args, ch2 := rewriteExprList(p, e.Args)
		if !ch && !ch2 {
			return e, false
		}
		return &js.NewExpr{Callee: callee, Args: args}, true
	case *js.MemberExpr:
		obj, ch := rewriteExpr(p, e.Obj)
		if !ch {
			return e, false
		}
		return &js.MemberExpr{Obj: obj, Prop: e.Prop, Optional: e.Optional}, true
	case *js.IndexExpr:
		obj, ch := rewriteExpr(p, e.Obj)
		idx, ch2 := rewriteExpr(p, e.Index)
		if !ch && !ch2 {
			return e, false
		}
		return &js.IndexExpr{Obj: obj, Index: idx}, true
	case *js.UnaryExpr:
		x, ch := rewriteExpr(p, e.X)
		if !ch {
			return e, false
		}
		return &js.UnaryExpr{Op: e.Op, X: x, Postfix: e.Postfix}, true
	case *js.BinaryExpr:
		l, ch := rewriteExpr(p, e.L)
		r, ch2 := rewriteExpr(p, e.R)
		if !ch && !ch2 {
			return e, false
		}
		return &js.BinaryExpr{Op: e.Op, L: l, R: r}, true
	case *js.AssignExpr:
		l, ch := rewriteExpr(p, e.L)
		r, ch2 := rewriteExpr(p, e.R)
		if !ch && !ch2 {
			return e, false
		}
		return &js.AssignExpr{Op: e.Op, L: l, R: r}, true
	case *js.CondExpr:
		cond, ch := rewriteExpr(p, e.Cond)
		then, ch2 := rewriteExpr(p, e.Then)
		alt, ch3 := rewriteExpr(p, e.Else)
		if !ch && !ch2 && !ch3 {
			return e, false
		}
		return &js.CondExpr{Cond: cond, Then: then, Else: alt}, true
	case *js.ParenExpr:
		x, ch := rewriteExpr(p, e.X)
		if !ch {
			return e, false
		}
		return &js.ParenExpr{X: x}, true
	case *js.SpreadExpr:
		x, ch := rewriteExpr(p, e.X)
		if !ch {
			return e, false
		}
		return &js.SpreadExpr{X: x}, true
	case *js.ObjectLit:
		changed := false
		props := make([]js.Property, len(e.Props))
		for i, prop := range e.Props {
			np := prop
			if prop.Value != nil {
				value, ch := rewriteExpr(p, prop.Value)
				changed = changed || ch
				np.Value = value
			}
			props[i] = np
		}
		if !changed {
			return e, false
		}
		return &js.ObjectLit{Props: props}, true
	case *js.ArrayLit:
		elems, ch := rewriteExprList(p, e.Elems)
		if !ch {
			return e, false
		}
		return &js.ArrayLit{Elems: elems}, true
	}
	// identifiers, literals, templates
	return e, false
}

func rewriteExprList(p pass, list []js.Expr) ([]js.Expr, bool) {
	changed := false
	out := make([]js.Expr, len(list))
	for i, e := range list {
		ne, ch := rewriteExpr(p, e)
		changed = changed || ch
		out[i] = ne
	}
	if !changed {
		return list, false
	}
	return out, true
}
