package js

import (
	"strings"
)

// Options controls how a tree is rendered back to source text.
type Options struct {
	// PreserveComments emits comment trivia. When Marker is also set, only
	// comments containing the marker substring are emitted.
	PreserveComments bool
	Marker           string
}

// Print renders a Program to source text with LF newlines and two-space
// indentation.
func Print(prog *Program, opts Options) string {
	pr := &printer{opts: opts}
	for _, stmt := range prog.Body {
		pr.stmt(stmt)
	}
	pr.comments(prog.Trailing)
	return pr.b.String()
}

type printer struct {
	b      strings.Builder
	opts   Options
	indent int
}

func (p *printer) line(s string) {
	p.b.WriteString(strings.Repeat("  ", p.indent))
	p.b.WriteString(s)
	p.b.WriteString("\n")
}

func (p *printer) keep(c Comment) bool {
	if !p.opts.PreserveComments {
		return false
	}
	if p.opts.Marker == "" {
		return true
	}
	return strings.Contains(c.Text, p.opts.Marker)
}

func (p *printer) comments(cs []Comment) {
	for _, c := range cs {
		if !p.keep(c) {
			continue
		}
		if c.Block {
			p.line("/*" + c.Text + "*/")
		} else {
			p.line("//" + c.Text)
		}
	}
}

func (p *printer) stmt(s Stmt) {
	p.comments(leadingOf(s))
	switch s := s.(type) {
	case *BlockStmt:
		p.line("{")
		p.indent++
		for _, inner := range s.List {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case *IfStmt:
		p.ifStmt(s)
	case *ExprStmt:
		p.line(p.expr(s.X) + ";")
	case *ReturnStmt:
		if s.X == nil {
			p.line("return;")
		} else {
			p.line("return " + p.expr(s.X) + ";")
		}
	case *ThrowStmt:
		p.line("throw " + p.expr(s.X) + ";")
	case *BreakStmt:
		if s.Label == "" {
			p.line("break;")
		} else {
			p.line("break " + s.Label + ";")
		}
	case *ContinueStmt:
		if s.Label == "" {
			p.line("continue;")
		} else {
			p.line("continue " + s.Label + ";")
		}
	case *VarDecl:
		p.line(p.varDecl(s) + ";")
	case *FuncDecl:
		head := "function " + s.Name + "(" + p.exprList(s.Params) + ") {"
		if s.Async {
			head = "async " + head
		}
		p.line(head)
		p.indent++
		for _, inner := range s.Body.List {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case *WhileStmt:
		p.headAndBody("while ("+p.expr(s.Cond)+")", s.Body)
	case *DoWhileStmt:
		p.line("do {")
		p.indent++
		for _, inner := range bodyList(s.Body) {
			p.stmt(inner)
		}
		p.indent--
		p.line("} while (" + p.expr(s.Cond) + ");")
	case *ForStmt:
		head := "for ("
		switch init := s.Init.(type) {
		case *VarDecl:
			head += p.varDecl(init)
		case Expr:
			head += p.expr(init)
		}
		head += "; "
		if s.Cond != nil {
			head += p.expr(s.Cond)
		}
		head += "; "
		if s.Post != nil {
			head += p.expr(s.Post)
		}
		head += ")"
		p.headAndBody(head, s.Body)
	case *ForInStmt:
		op := "in"
		if s.Of {
			op = "of"
		}
		head := "for ("
		if s.Kind != "" {
			head += s.Kind + " "
		}
		head += p.expr(s.Left) + " " + op + " " + p.expr(s.Right) + ")"
		p.headAndBody(head, s.Body)
	case *TryStmt:
		p.line("try {")
		p.indent++
		for _, inner := range s.Block.List {
			p.stmt(inner)
		}
		p.indent--
		if s.Catch != nil {
			if s.Param != nil {
				p.line("} catch (" + p.expr(s.Param) + ") {")
			} else {
				p.line("} catch {")
			}
			p.indent++
			for _, inner := range s.Catch.List {
				p.stmt(inner)
			}
			p.indent--
		}
		if s.Finally != nil {
			p.line("} finally {")
			p.indent++
			for _, inner := range s.Finally.List {
				p.stmt(inner)
			}
			p.indent--
		}
		p.line("}")
	case *SwitchStmt:
		p.line("switch (" + p.expr(s.Disc) + ") {")
		p.indent++
		for _, c := range s.Cases {
			if c.Test != nil {
				p.line("case " + p.expr(c.Test) + ":")
			} else {
				p.line("default:")
			}
			p.indent++
			for _, inner := range c.Body {
				p.stmt(inner)
			}
			p.indent--
		}
		p.indent--
		p.line("}")
	case *ClassDecl:
		head := "class " + s.Name
		if s.Super != nil {
			head += " extends " + p.expr(s.Super)
		}
		p.line(head + " {")
		p.indent++
		for _, m := range s.Members {
			p.classMember(m)
		}
		p.indent--
		p.line("}")
	case *ImportStmt:
		p.line(s.Raw + ";")
	case *ExportStmt:
		if s.Decl != nil {
			prefix := "export "
			if s.Default {
				prefix = "export default "
			}
			p.b.WriteString(strings.Repeat("  ", p.indent))
			p.b.WriteString(prefix)
			p.inlineStmt(s.Decl)
		} else {
			p.line(s.Raw + ";")
		}
	case *EmptyStmt:
		// dropped from output
	}
}

// inlineStmt prints a statement whose first line continues the current line
// (used for `export <decl>`).
func (p *printer) inlineStmt(s Stmt) {
	var sub printer
	sub.opts = p.opts
	sub.indent = p.indent
	sub.stmt(s)
	out := sub.b.String()
	p.b.WriteString(strings.TrimLeft(out, " "))
}

func (p *printer) classMember(m ClassMember) {
	head := ""
	if m.Static {
		head += "static "
	}
	if m.Async {
		head += "async "
	}
	if m.Kind == "get" || m.Kind == "set" {
		head += m.Kind + " "
	}
	head += m.Name
	if m.Body != nil {
		p.line(head + "(" + p.exprList(m.Params) + ") {")
		p.indent++
		for _, inner := range m.Body.List {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
		return
	}
	if m.Value != nil {
		p.line(head + " = " + p.expr(m.Value) + ";")
	} else {
		p.line(head + ";")
	}
}

// ifStmt prints an if/else chain. Bare single-statement branches print on
// one line; block branches open a brace. A bare then-branch that would
// capture the trailing else on reparse is braced to keep the else bound
// where it is.
func (p *printer) ifStmt(s *IfStmt) {
	head := "if (" + p.expr(s.Cond) + ")"
	if block, ok := s.Then.(*BlockStmt); ok {
		p.line(head + " {")
		p.indent++
		for _, inner := range block.List {
			p.stmt(inner)
		}
		p.indent--
		if s.Else == nil {
			p.line("}")
			return
		}
		p.elseBranch("} ", s.Else)
		return
	}
	if s.Else != nil && absorbsElse(s.Then) {
		p.line(head + " {")
		p.indent++
		p.stmt(s.Then)
		p.indent--
		p.elseBranch("} ", s.Else)
		return
	}
	p.line(head + " " + p.inlineOneliner(s.Then))
	if s.Else != nil {
		p.elseBranch("", s.Else)
	}
}

// absorbsElse reports whether an `else` printed directly after s would bind
// to an if statement inside s when the output is parsed again.
func absorbsElse(s Stmt) bool {
	switch s := s.(type) {
	case *IfStmt:
		if s.Else == nil {
			return true
		}
		return absorbsElse(s.Else)
	case *WhileStmt:
		return absorbsElse(s.Body)
	case *ForStmt:
		return absorbsElse(s.Body)
	case *ForInStmt:
		return absorbsElse(s.Body)
	}
	return false
}

func (p *printer) elseBranch(prefix string, alt Stmt) {
	switch alt := alt.(type) {
	case *BlockStmt:
		p.line(prefix + "else {")
		p.indent++
		for _, inner := range alt.List {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case *IfStmt:
		// else-if chain stays flat
		var sub printer
		sub.opts = p.opts
		sub.indent = p.indent
		sub.ifStmt(alt)
		out := strings.TrimLeft(sub.b.String(), " ")
		p.line(prefix + "else " + strings.TrimRight(out[:strings.IndexByte(out, '\n')+1], "\n"))
		rest := out[strings.IndexByte(out, '\n')+1:]
		p.b.WriteString(rest)
	default:
		p.line(prefix + "else " + p.inlineOneliner(alt))
	}
}

// inlineOneliner renders a bare (non-block) statement on a single line.
func (p *printer) inlineOneliner(s Stmt) string {
	var sub printer
	sub.opts = Options{} // trivia never prints inline
	sub.stmt(s)
	out := strings.TrimRight(sub.b.String(), "\n")
	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " ")
}

func (p *printer) headAndBody(head string, body Stmt) {
	if block, ok := body.(*BlockStmt); ok {
		p.line(head + " {")
		p.indent++
		for _, inner := range block.List {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
		return
	}
	p.line(head + " " + p.inlineOneliner(body))
}

func (p *printer) varDecl(d *VarDecl) string {
	parts := make([]string, 0, len(d.Decls))
	for _, decl := range d.Decls {
		s := p.expr(decl.Name)
		if decl.Init != nil {
			s += " = " + p.expr(decl.Init)
		}
		parts = append(parts, s)
	}
	return d.Kind + " " + strings.Join(parts, ", ")
}

func (p *printer) exprList(list []Expr) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, p.expr(e))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) expr(e Expr) string {
	switch e := e.(type) {
	case *Ident:
		return e.Name
	case *Literal:
		return e.Raw
	case *TemplateLit:
		return e.Raw
	case *MemberExpr:
		if e.Optional {
			return p.expr(e.Obj) + "?." + e.Prop
		}
		return p.expr(e.Obj) + "." + e.Prop
	case *IndexExpr:
		return p.expr(e.Obj) + "[" + p.expr(e.Index) + "]"
	case *CallExpr:
		if m, ok := e.Callee.(*MemberExpr); ok && m.Optional && m.Prop == "" {
			return p.expr(m.Obj) + "?.(" + p.exprList(e.Args) + ")"
		}
		return p.expr(e.Callee) + "(" + p.exprList(e.Args) + ")"
	case *NewExpr:
		return "new " + p.expr(e.Callee) + "(" + p.exprList(e.Args) + ")"
	case *UnaryExpr:
		if e.Postfix {
			return p.expr(e.X) + e.Op
		}
		x := p.expr(e.X)
		switch e.Op {
		case "typeof", "void", "delete", "await", "yield":
			return e.Op + " " + x
		}
		if (e.Op == "-" || e.Op == "+") && strings.HasPrefix(x, e.Op) {
			return e.Op + " " + x
		}
		return e.Op + x
	case *BinaryExpr:
		if e.Op == "," {
			return p.expr(e.L) + ", " + p.expr(e.R)
		}
		return p.expr(e.L) + " " + e.Op + " " + p.expr(e.R)
	case *AssignExpr:
		return p.expr(e.L) + " " + e.Op + " " + p.expr(e.R)
	case *CondExpr:
		return p.expr(e.Cond) + " ? " + p.expr(e.Then) + " : " + p.expr(e.Else)
	case *ArrowFunc:
		head := "(" + p.exprList(e.Params) + ") =>"
		if e.Async {
			head = "async " + head
		}
		if block, ok := e.Body.(*BlockStmt); ok {
			return head + " " + p.blockInline(block)
		}
		return head + " " + p.expr(e.Body.(Expr))
	case *FuncExpr:
		head := "function"
		if e.Async {
			head = "async function"
		}
		if e.Name != "" {
			head += " " + e.Name
		}
		return head + "(" + p.exprList(e.Params) + ") " + p.blockInline(e.Body)
	case *ObjectLit:
		if len(e.Props) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(e.Props))
		for _, prop := range e.Props {
			parts = append(parts, p.property(prop))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ArrayLit:
		return "[" + p.exprList(e.Elems) + "]"
	case *ParenExpr:
		return "(" + p.expr(e.X) + ")"
	case *SpreadExpr:
		return "..." + p.expr(e.X)
	}
	return ""
}

func (p *printer) property(prop Property) string {
	if spread, ok := prop.Key.(*SpreadExpr); ok {
		return p.expr(spread)
	}
	key := p.expr(prop.Key)
	if prop.Computed {
		key = "[" + key + "]"
	}
	if prop.Shorthand {
		if assign, ok := prop.Value.(*AssignExpr); ok {
			return p.expr(assign.L) + " = " + p.expr(assign.R)
		}
		return key
	}
	if fn, ok := prop.Value.(*FuncExpr); ok && fn.Name == "" && !fn.Async {
		return key + "(" + p.exprList(fn.Params) + ") " + p.blockInline(fn.Body)
	}
	return key + ": " + p.expr(prop.Value)
}

// blockInline renders a function body whose opening brace continues the
// current line; inner statements still start on their own lines.
func (p *printer) blockInline(block *BlockStmt) string {
	if len(block.List) == 0 {
		return "{}"
	}
	var sub printer
	sub.opts = p.opts
	sub.indent = p.indent + 1
	for _, inner := range block.List {
		sub.stmt(inner)
	}
	return "{\n" + sub.b.String() + strings.Repeat("  ", p.indent) + "}"
}

// bodyList flattens a loop body to its statement list.
func bodyList(s Stmt) []Stmt {
	if block, ok := s.(*BlockStmt); ok {
		return block.List
	}
	return []Stmt{s}
}

// leadingOf returns the leading comments attached to a statement.
func leadingOf(s Stmt) []Comment {
	switch s := s.(type) {
	case *BlockStmt:
		return s.Leading
	case *IfStmt:
		return s.Leading
	case *ExprStmt:
		return s.Leading
	case *ReturnStmt:
		return s.Leading
	case *ThrowStmt:
		return s.Leading
	case *BreakStmt:
		return s.Leading
	case *ContinueStmt:
		return s.Leading
	case *VarDecl:
		return s.Leading
	case *FuncDecl:
		return s.Leading
	case *WhileStmt:
		return s.Leading
	case *DoWhileStmt:
		return s.Leading
	case *ForStmt:
		return s.Leading
	case *ForInStmt:
		return s.Leading
	case *EmptyStmt:
		return s.Leading
	case *ImportStmt:
		return s.Leading
	case *ExportStmt:
		return s.Leading
	case *ClassDecl:
		return s.Leading
	case *TryStmt:
		return s.Leading
	case *SwitchStmt:
		return s.Leading
	}
	return nil
}
