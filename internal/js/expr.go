package js

// binaryPrec maps binary and logical operators to their precedence level.
// Higher binds tighter. Assignment, ternary and sequence are handled
// separately above this ladder.
var binaryPrec = map[string]int{
	"??":         1,
	"||":         2,
	"&&":         3,
	"|":          4,
	"^":          5,
	"&":          6,
	"==":         7,
	"!=":         7,
	"===":        7,
	"!==":        7,
	"<":          8,
	">":          8,
	"<=":         8,
	">=":         8,
	"in":         8,
	"instanceof": 8,
	"<<":         9,
	">>":         9,
	">>>":        9,
	"+":          10,
	"-":          10,
	"*":          11,
	"/":          11,
	"%":          11,
	"**":         12,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true,
	"&=": true, "|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
}

// parseExpression parses a possibly comma-separated sequence expression.
func (p *parser) parseExpression() (Expr, error) {
	x, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for p.is(",") {
		p.next()
		r, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		x = &BinaryExpr{Op: ",", L: x, R: r}
	}
	return x, nil
}

func (p *parser) parseAssign() (Expr, error) {
	if arrow, ok, err := p.tryArrow(); ok || err != nil {
		return arrow, err
	}
	x, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	t := p.cur()
	if t.typ == tokPunct && assignOps[t.lit] {
		p.next()
		r, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Op: t.lit, L: x, R: r}, nil
	}
	return x, nil
}

// tryArrow detects an arrow function head by lookahead and parses it when
// present; otherwise it consumes nothing.
func (p *parser) tryArrow() (Expr, bool, error) {
	async := false
	i := 0
	t := p.peekTok(0)
	if t.typ == tokIdent && t.lit == "async" && !p.peekTok(1).newline {
		nxt := p.peekTok(1)
		if nxt.typ == tokIdent || (nxt.typ == tokPunct && nxt.lit == "(") {
			async = true
			i = 1
			t = nxt
		}
	}
	switch {
	case t.typ == tokIdent && !(async && t.lit == "async"):
		if nxt := p.peekTok(i + 1); !(nxt.typ == tokPunct && nxt.lit == "=>") {
			return nil, false, nil
		}
		if async {
			p.next()
		}
		name := p.next().lit
		p.next() // =>
		body, err := p.parseArrowBody()
		if err != nil {
			return nil, true, err
		}
		return &ArrowFunc{Async: async, Params: []Expr{&Ident{Name: name}}, Body: body}, true, nil
	case t.typ == tokPunct && t.lit == "(":
		if !p.arrowFollowsParen(i) {
			return nil, false, nil
		}
		if async {
			p.next()
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, true, err
		}
		if err := p.expect("=>"); err != nil {
			return nil, true, err
		}
		body, err := p.parseArrowBody()
		if err != nil {
			return nil, true, err
		}
		return &ArrowFunc{Async: async, Params: params, Body: body}, true, nil
	}
	return nil, false, nil
}

// arrowFollowsParen scans past a balanced parenthesis group starting at
// lookahead offset i and reports whether `=>` follows it.
func (p *parser) arrowFollowsParen(i int) bool {
	depth := 0
	for n := i; ; n++ {
		t := p.peekTok(n)
		if t.typ == tokEOF {
			return false
		}
		if t.typ != tokPunct {
			continue
		}
		switch t.lit {
		case "(", "[", "{":
			depth++
		case "]", "}":
			depth--
		case ")":
			depth--
			if depth == 0 {
				after := p.peekTok(n + 1)
				return after.typ == tokPunct && after.lit == "=>"
			}
		}
	}
}

func (p *parser) parseArrowBody() (Node, error) {
	if p.is("{") {
		return p.parseBlock(nil)
	}
	return p.parseAssign()
}

func (p *parser) parseCond() (Expr, error) {
	x, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.is("?") {
		return x, nil
	}
	p.next()
	then, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &CondExpr{Cond: x, Then: then, Else: alt}, nil
}

func (p *parser) parseBinary(minPrec int) (Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.typ != tokPunct && t.typ != tokKeyword {
			return x, nil
		}
		prec, ok := binaryPrec[t.lit]
		if !ok || prec < minPrec {
			return x, nil
		}
		if t.lit == "in" && p.noIn {
			return x, nil
		}
		p.next()
		// ** is right-associative, everything else left
		next := prec + 1
		if t.lit == "**" {
			next = prec
		}
		r, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}
		x = &BinaryExpr{Op: t.lit, L: x, R: r}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.cur()
	if t.typ == tokPunct {
		switch t.lit {
		case "!", "~", "+", "-", "++", "--":
			p.next()
			x, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &UnaryExpr{Op: t.lit, X: x}, nil
		case "...":
			p.next()
			x, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			return &SpreadExpr{X: x}, nil
		}
	}
	if t.typ == tokKeyword {
		switch t.lit {
		case "typeof", "void", "delete", "await", "yield":
			p.next()
			x, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &UnaryExpr{Op: t.lit, X: x}, nil
		}
	}
	x, err := p.parseCallMember()
	if err != nil {
		return nil, err
	}
	// postfix ++/-- must be on the same line as the operand
	if t := p.cur(); t.typ == tokPunct && (t.lit == "++" || t.lit == "--") && !t.newline {
		p.next()
		return &UnaryExpr{Op: t.lit, X: x, Postfix: true}, nil
	}
	return x, nil
}

func (p *parser) parseCallMember() (Expr, error) {
	x, err := p.parseNewOrPrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.typ != tokPunct {
			return x, nil
		}
		switch t.lit {
		case ".":
			p.next()
			name := p.cur()
			if name.typ != tokIdent && name.typ != tokKeyword {
				return nil, p.errf("expected property name, found %q", name.lit)
			}
			p.next()
			x = &MemberExpr{Obj: x, Prop: name.lit}
		case "?.":
			p.next()
			if p.is("(") {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				x = &CallExpr{Callee: &MemberExpr{Obj: x, Prop: "", Optional: true}, Args: args}
				continue
			}
			name := p.cur()
			if name.typ != tokIdent && name.typ != tokKeyword {
				return nil, p.errf("expected property name, found %q", name.lit)
			}
			p.next()
			x = &MemberExpr{Obj: x, Prop: name.lit, Optional: true}
		case "[":
			p.next()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			x = &IndexExpr{Obj: x, Index: idx}
		case "(":
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &CallExpr{Callee: x, Args: args}
		default:
			return x, nil
		}
	}
}

func (p *parser) parseNewOrPrimary() (Expr, error) {
	if p.is("new") {
		p.next()
		callee, err := p.parseNewOrPrimary()
		if err != nil {
			return nil, err
		}
		// member access binds tighter than new-with-arguments
		for {
			if p.is(".") {
				p.next()
				name := p.cur()
				if name.typ != tokIdent && name.typ != tokKeyword {
					return nil, p.errf("expected property name, found %q", name.lit)
				}
				p.next()
				callee = &MemberExpr{Obj: callee, Prop: name.lit}
				continue
			}
			break
		}
		var args []Expr
		if p.is("(") {
			var err error
			args, err = p.parseArgs()
			if err != nil {
				return nil, err
			}
		}
		return &NewExpr{Callee: callee, Args: args}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parseArgs() ([]Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var args []Expr
	for !p.is(")") {
		arg, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(",") {
			break
		}
	}
	return args, p.expect(")")
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch t.typ {
	case tokNumber, tokRegex, tokString:
		p.next()
		return &Literal{Raw: t.lit}, nil
	case tokTemplate:
		p.next()
		return &TemplateLit{Raw: t.lit}, nil
	case tokIdent:
		if t.lit == "async" && p.peekTok(1).typ == tokKeyword && p.peekTok(1).lit == "function" {
			p.next()
			return p.parseFuncExpr(true)
		}
		p.next()
		switch t.lit {
		case "true", "false", "null":
			return &Literal{Raw: t.lit}, nil
		}
		return &Ident{Name: t.lit}, nil
	case tokKeyword:
		switch t.lit {
		case "function":
			return p.parseFuncExpr(false)
		case "class":
			return nil, p.errf("class expressions are not supported")
		}
	case tokPunct:
		switch t.lit {
		case "(":
			p.next()
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return &ParenExpr{X: x}, nil
		case "[":
			return p.parseArrayLit()
		case "{":
			return p.parseObjectLit()
		}
	}
	return nil, p.errf("unexpected token %q", t.lit)
}

func (p *parser) parseFuncExpr(async bool) (Expr, error) {
	p.next() // function
	name := ""
	if t := p.cur(); t.typ == tokIdent {
		name = p.next().lit
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	return &FuncExpr{Async: async, Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseArrayLit() (Expr, error) {
	p.next() // [
	lit := &ArrayLit{}
	for !p.is("]") {
		if p.atEOF() {
			return nil, p.errf("unexpected end of input in array literal")
		}
		elem, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		lit.Elems = append(lit.Elems, elem)
		if !p.accept(",") {
			break
		}
	}
	return lit, p.expect("]")
}

func (p *parser) parseObjectLit() (Expr, error) {
	p.next() // {
	lit := &ObjectLit{}
	for !p.is("}") {
		if p.atEOF() {
			return nil, p.errf("unexpected end of input in object literal")
		}
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		lit.Props = append(lit.Props, prop)
		if !p.accept(",") {
			break
		}
	}
	return lit, p.expect("}")
}

func (p *parser) parseProperty() (Property, error) {
	var prop Property
	t := p.cur()

	if t.typ == tokPunct && t.lit == "..." {
		p.next()
		x, err := p.parseAssign()
		if err != nil {
			return prop, err
		}
		prop.Key = &SpreadExpr{X: x}
		prop.Shorthand = true
		return prop, nil
	}

	switch {
	case t.typ == tokPunct && t.lit == "[":
		p.next()
		key, err := p.parseAssign()
		if err != nil {
			return prop, err
		}
		if err := p.expect("]"); err != nil {
			return prop, err
		}
		prop.Key = key
		prop.Computed = true
	case t.typ == tokIdent || t.typ == tokKeyword:
		p.next()
		prop.Key = &Ident{Name: t.lit}
	case t.typ == tokString || t.typ == tokNumber:
		p.next()
		prop.Key = &Literal{Raw: t.lit}
	default:
		return prop, p.errf("expected property key, found %q", t.lit)
	}

	switch {
	case p.is(":"):
		p.next()
		value, err := p.parseAssign()
		if err != nil {
			return prop, err
		}
		prop.Value = value
	case p.is("("):
		// method shorthand
		params, err := p.parseParams()
		if err != nil {
			return prop, err
		}
		body, err := p.parseBlock(nil)
		if err != nil {
			return prop, err
		}
		prop.Value = &FuncExpr{Params: params, Body: body}
	case p.is("="):
		// destructuring default: { a = 1 }
		p.next()
		value, err := p.parseAssign()
		if err != nil {
			return prop, err
		}
		prop.Shorthand = true
		prop.Value = &AssignExpr{Op: "=", L: prop.Key, R: value}
	default:
		prop.Shorthand = true
	}
	return prop, nil
}
