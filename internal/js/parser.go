package js

import "fmt"

// Recursive-descent parser for the JavaScript subset the rewrite engine
// operates on. Anything outside the subset fails with a *ParseError; callers
// treat that as "skip this file".

type parser struct {
	src     string
	toks    []token
	pos     int
	pending []Comment
	noIn    bool // suppress `in` as a binary operator inside for-loop heads
}

// Parse parses source text into a Program. Comments are collected and
// attached as leading trivia to the statement that follows them.
func Parse(src string) (*Program, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	p.collectComments()

	prog := &Program{}
	for !p.atEOF() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	prog.Trailing = p.takeLeading()
	return prog, nil
}

func (p *parser) collectComments() {
	for p.pos < len(p.toks) && p.toks[p.pos].typ == tokComment {
		t := p.toks[p.pos]
		p.pending = append(p.pending, Comment{Text: t.lit, Block: t.block})
		p.pos++
	}
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) peekTok(n int) token {
	i := p.pos
	for n > 0 && i < len(p.toks)-1 {
		i++
		if p.toks[i].typ == tokComment {
			continue
		}
		n--
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.collectComments()
	return t
}

func (p *parser) atEOF() bool { return p.cur().typ == tokEOF }

func (p *parser) is(lit string) bool {
	t := p.cur()
	return (t.typ == tokPunct || t.typ == tokKeyword) && t.lit == lit
}

func (p *parser) accept(lit string) bool {
	if p.is(lit) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(lit string) error {
	if !p.accept(lit) {
		return p.errf("expected %q, found %q", lit, p.cur().lit)
	}
	return nil
}

func (p *parser) errf(format string, args ...any) error {
	t := p.cur()
	return &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) takeLeading() []Comment {
	lead := p.pending
	p.pending = nil
	return lead
}

// terminator consumes an explicit semicolon or applies automatic semicolon
// insertion: a closing brace, EOF, or a line break before the next token all
// terminate the statement.
func (p *parser) terminator() error {
	if p.accept(";") {
		return nil
	}
	t := p.cur()
	if t.typ == tokEOF || t.newline || p.is("}") {
		return nil
	}
	return p.errf("expected ; before %q", t.lit)
}

func (p *parser) parseStmt() (Stmt, error) {
	lead := p.takeLeading()
	t := p.cur()

	if t.typ == tokPunct {
		switch t.lit {
		case "{":
			return p.parseBlock(lead)
		case ";":
			p.next()
			return &EmptyStmt{Leading: lead}, nil
		}
	}

	if t.typ == tokKeyword {
		switch t.lit {
		case "if":
			return p.parseIf(lead)
		case "return":
			return p.parseReturn(lead)
		case "throw":
			p.next()
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ThrowStmt{Leading: lead, X: x}, p.terminator()
		case "break", "continue":
			return p.parseBreakContinue(lead)
		case "var", "let", "const":
			decl, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			decl.Leading = lead
			return decl, p.terminator()
		case "function":
			return p.parseFuncDecl(lead, false)
		case "class":
			return p.parseClass(lead)
		case "while":
			return p.parseWhile(lead)
		case "do":
			return p.parseDoWhile(lead)
		case "for":
			return p.parseFor(lead)
		case "try":
			return p.parseTry(lead)
		case "switch":
			return p.parseSwitch(lead)
		case "import":
			return p.parseRawStmt(lead)
		case "export":
			return p.parseExport(lead)
		}
	}

	if t.typ == tokIdent && t.lit == "async" && p.peekTok(1).typ == tokKeyword && p.peekTok(1).lit == "function" {
		p.next()
		return p.parseFuncDecl(lead, true)
	}

	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Leading: lead, X: x}, p.terminator()
}

func (p *parser) parseBlock(lead []Comment) (*BlockStmt, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	b := &BlockStmt{Leading: lead}
	for !p.is("}") {
		if p.atEOF() {
			return nil, p.errf("unexpected end of input in block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.List = append(b.List, stmt)
	}
	p.next()
	return b, nil
}

func (p *parser) parseIf(lead []Comment) (Stmt, error) {
	p.next()
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var alt Stmt
	if p.accept("else") {
		alt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Leading: lead, Cond: cond, Then: then, Else: alt}, nil
}

func (p *parser) parseReturn(lead []Comment) (Stmt, error) {
	p.next()
	t := p.cur()
	// restricted production: a line break after `return` ends the statement
	if t.typ == tokEOF || t.newline || p.is(";") || p.is("}") {
		return &ReturnStmt{Leading: lead}, p.terminator()
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Leading: lead, X: x}, p.terminator()
}

func (p *parser) parseBreakContinue(lead []Comment) (Stmt, error) {
	kw := p.next().lit
	label := ""
	if t := p.cur(); t.typ == tokIdent && !t.newline {
		label = p.next().lit
	}
	if err := p.terminator(); err != nil {
		return nil, err
	}
	if kw == "break" {
		return &BreakStmt{Leading: lead, Label: label}, nil
	}
	return &ContinueStmt{Leading: lead, Label: label}, nil
}

func (p *parser) parseVarDecl() (*VarDecl, error) {
	kind := p.next().lit
	decl := &VarDecl{Kind: kind}
	for {
		name, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		d := VarDeclarator{Name: name}
		if p.accept("=") {
			d.Init, err = p.parseAssign()
			if err != nil {
				return nil, err
			}
		}
		decl.Decls = append(decl.Decls, d)
		if !p.accept(",") {
			return decl, nil
		}
	}
}

// parseBindingTarget parses an identifier or a destructuring pattern, which
// the engine represents with the matching literal expression shapes.
func (p *parser) parseBindingTarget() (Expr, error) {
	t := p.cur()
	switch {
	case t.typ == tokIdent:
		p.next()
		return &Ident{Name: t.lit}, nil
	case p.is("{"), p.is("["):
		return p.parsePrimary()
	}
	return nil, p.errf("expected binding target, found %q", t.lit)
}

func (p *parser) parseFuncDecl(lead []Comment, async bool) (Stmt, error) {
	p.next() // function
	t := p.cur()
	if t.typ != tokIdent {
		return nil, p.errf("expected function name, found %q", t.lit)
	}
	name := p.next().lit
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Leading: lead, Async: async, Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseParams() ([]Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []Expr
	for !p.is(")") {
		param, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(",") {
			break
		}
	}
	return params, p.expect(")")
}

func (p *parser) parseClass(lead []Comment) (Stmt, error) {
	p.next()
	t := p.cur()
	if t.typ != tokIdent {
		return nil, p.errf("expected class name, found %q", t.lit)
	}
	decl := &ClassDecl{Leading: lead, Name: p.next().lit}
	if p.accept("extends") {
		super, err := p.parseCallMember()
		if err != nil {
			return nil, err
		}
		decl.Super = super
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.is("}") {
		if p.atEOF() {
			return nil, p.errf("unexpected end of input in class body")
		}
		if p.accept(";") {
			continue
		}
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
	}
	p.next()
	return decl, nil
}

func (p *parser) parseClassMember() (ClassMember, error) {
	var m ClassMember
	if p.cur().lit == "static" && p.peekTok(1).lit != "(" && p.peekTok(1).lit != "=" {
		p.next()
		m.Static = true
	}
	if p.cur().lit == "async" && p.peekTok(1).lit != "(" && p.peekTok(1).lit != "=" {
		p.next()
		m.Async = true
	}
	if (p.cur().lit == "get" || p.cur().lit == "set") && p.peekTok(1).lit != "(" && p.peekTok(1).lit != "=" {
		m.Kind = p.next().lit
	}
	t := p.cur()
	if t.typ != tokIdent && t.typ != tokKeyword && t.typ != tokString {
		return m, p.errf("expected class member name, found %q", t.lit)
	}
	m.Name = p.next().lit
	if p.is("(") {
		if m.Kind == "" {
			m.Kind = "method"
		}
		params, err := p.parseParams()
		if err != nil {
			return m, err
		}
		body, err := p.parseBlock(nil)
		if err != nil {
			return m, err
		}
		m.Params = params
		m.Body = body
		return m, nil
	}
	m.Kind = "field"
	if p.accept("=") {
		value, err := p.parseAssign()
		if err != nil {
			return m, err
		}
		m.Value = value
	}
	return m, p.terminator()
}

func (p *parser) parseWhile(lead []Comment) (Stmt, error) {
	p.next()
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Leading: lead, Cond: cond, Body: body}, nil
}

func (p *parser) parseDoWhile(lead []Comment) (Stmt, error) {
	p.next()
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if err := p.expect("while"); err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return &DoWhileStmt{Leading: lead, Body: body, Cond: cond}, p.terminator()
}

func (p *parser) parseFor(lead []Comment) (Stmt, error) {
	p.next()
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var init Node
	kind := ""
	p.noIn = true
	if p.is("var") || p.is("let") || p.is("const") {
		kind = p.cur().lit
		decl, err := p.parseVarDecl()
		if err != nil {
			p.noIn = false
			return nil, err
		}
		if len(decl.Decls) == 1 && decl.Decls[0].Init == nil && (p.is("in") || p.is("of")) {
			p.noIn = false
			return p.parseForIn(lead, kind, decl.Decls[0].Name)
		}
		init = decl
	} else if !p.is(";") {
		x, err := p.parseExpression()
		if err != nil {
			p.noIn = false
			return nil, err
		}
		if p.is("in") || p.is("of") {
			p.noIn = false
			return p.parseForIn(lead, "", x)
		}
		init = x
	}
	p.noIn = false

	if err := p.expect(";"); err != nil {
		return nil, err
	}
	var cond, post Expr
	var err error
	if !p.is(";") {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	if !p.is(")") {
		post, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Leading: lead, Init: init, Cond: cond, Post: post, Body: body}, nil
}

func (p *parser) parseForIn(lead []Comment, kind string, left Expr) (Stmt, error) {
	of := p.next().lit == "of"
	right, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ForInStmt{Leading: lead, Kind: kind, Left: left, Of: of, Right: right, Body: body}, nil
}

func (p *parser) parseTry(lead []Comment) (Stmt, error) {
	p.next()
	block, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	stmt := &TryStmt{Leading: lead, Block: block}
	if p.accept("catch") {
		if p.accept("(") {
			stmt.Param, err = p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		stmt.Catch, err = p.parseBlock(nil)
		if err != nil {
			return nil, err
		}
	}
	if p.accept("finally") {
		stmt.Finally, err = p.parseBlock(nil)
		if err != nil {
			return nil, err
		}
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		return nil, p.errf("try statement without catch or finally")
	}
	return stmt, nil
}

func (p *parser) parseSwitch(lead []Comment) (Stmt, error) {
	p.next()
	if err := p.expect("("); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	stmt := &SwitchStmt{Leading: lead, Disc: disc}
	for !p.is("}") {
		if p.atEOF() {
			return nil, p.errf("unexpected end of input in switch")
		}
		var c SwitchCase
		if p.accept("case") {
			c.Test, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		} else if err := p.expect("default"); err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		for !p.is("case") && !p.is("default") && !p.is("}") {
			s, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			c.Body = append(c.Body, s)
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.next()
	return stmt, nil
}

// parseRawStmt consumes an import statement verbatim, without interpreting
// its structure.
func (p *parser) parseRawStmt(lead []Comment) (Stmt, error) {
	start := p.cur().off
	end := p.cur().end
	p.next()
	return &ImportStmt{Leading: lead, Raw: p.rawUntilTerminator(start, end)}, nil
}

// rawUntilTerminator extends the [start, end) span over tokens until an
// explicit semicolon or a statement-ending line break at bracket depth zero.
func (p *parser) rawUntilTerminator(start, end int) string {
	depth := 0
	for {
		t := p.cur()
		if t.typ == tokEOF || (t.newline && depth == 0) {
			break
		}
		if t.typ == tokPunct {
			switch t.lit {
			case "{", "(", "[":
				depth++
			case "}", ")", "]":
				depth--
			case ";":
				if depth == 0 {
					p.next()
					return p.src[start:end]
				}
			}
		}
		end = t.end
		p.next()
	}
	return p.src[start:end]
}

func (p *parser) parseExport(lead []Comment) (Stmt, error) {
	start := p.cur().off
	end := p.next().end
	stmt := &ExportStmt{Leading: lead}
	if p.is("default") {
		end = p.next().end
		stmt.Default = true
	}
	t := p.cur()
	declStart := t.typ == tokKeyword &&
		(t.lit == "function" || t.lit == "class" || t.lit == "var" || t.lit == "let" || t.lit == "const")
	if !declStart && t.typ == tokIdent && t.lit == "async" &&
		p.peekTok(1).typ == tokKeyword && p.peekTok(1).lit == "function" {
		declStart = true
	}
	if declStart {
		decl, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmt.Decl = decl
		return stmt, nil
	}
	// re-export or expression form: keep the raw text
	stmt.Default = false
	stmt.Raw = p.rawUntilTerminator(start, end)
	return stmt, nil
}
