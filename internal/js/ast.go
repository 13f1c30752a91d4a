package js

// Node is the base interface for all syntax nodes.
type Node interface {
	node()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	expr()
}

// Comment is a single source comment. Text holds the comment body without
// the `//` or `/* */` delimiters.
type Comment struct {
	Text  string
	Block bool
}

// Program is the root node of a parsed source file.
type Program struct {
	Body []Stmt
	// Trailing holds comments that appear after the last statement.
	Trailing []Comment
}

func (*Program) node() {}

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	Leading []Comment
	List    []Stmt
}

// IfStmt is an if/else statement. Then is never nil in a well-formed tree;
// Else is nil when there is no else clause.
type IfStmt struct {
	Leading []Comment
	Cond    Expr
	Then    Stmt
	Else    Stmt
}

// ExprStmt is a bare expression in statement position.
type ExprStmt struct {
	Leading []Comment
	X       Expr
}

// ReturnStmt is a return statement; X is nil for a bare `return`.
type ReturnStmt struct {
	Leading []Comment
	X       Expr
}

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	Leading []Comment
	X       Expr
}

// BreakStmt is a break statement with an optional label.
type BreakStmt struct {
	Leading []Comment
	Label   string
}

// ContinueStmt is a continue statement with an optional label.
type ContinueStmt struct {
	Leading []Comment
	Label   string
}

// VarDecl is a `var`, `let` or `const` declaration.
type VarDecl struct {
	Leading []Comment
	Kind    string
	Decls   []VarDeclarator
}

// VarDeclarator is one name/initializer pair of a VarDecl.
type VarDeclarator struct {
	Name Expr
	Init Expr // nil when declared without an initializer
}

// FuncDecl is a function declaration.
type FuncDecl struct {
	Leading []Comment
	Async   bool
	Name    string
	Params  []Expr
	Body    *BlockStmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Leading []Comment
	Cond    Expr
	Body    Stmt
}

// DoWhileStmt is a do/while loop.
type DoWhileStmt struct {
	Leading []Comment
	Body    Stmt
	Cond    Expr
}

// ForStmt is a classic three-clause for loop. Init is either a *VarDecl,
// an Expr, or nil; Cond and Post may be nil.
type ForStmt struct {
	Leading []Comment
	Init    Node
	Cond    Expr
	Post    Expr
	Body    Stmt
}

// ForInStmt covers both for-in and for-of loops.
type ForInStmt struct {
	Leading []Comment
	Kind    string // "", "var", "let" or "const"
	Left    Expr
	Of      bool
	Right   Expr
	Body    Stmt
}

// EmptyStmt is a stray semicolon.
type EmptyStmt struct {
	Leading []Comment
}

// ImportStmt is an import statement kept as raw source text; the engine never
// inspects its structure.
type ImportStmt struct {
	Leading []Comment
	Raw     string
}

// ExportStmt is an export statement. When the export wraps a declaration,
// Decl holds it and Raw is empty; otherwise Raw holds the statement text.
type ExportStmt struct {
	Leading []Comment
	Default bool
	Decl    Stmt
	Raw     string
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Leading []Comment
	Name    string
	Super   Expr
	Members []ClassMember
}

// ClassMember is one method or field of a class body.
type ClassMember struct {
	Static bool
	Async  bool
	Kind   string // "method", "get", "set" or "field"
	Name   string
	Params []Expr
	Body   *BlockStmt // methods only
	Value  Expr       // field initializer, may be nil
}

// TryStmt is a try/catch/finally statement.
type TryStmt struct {
	Leading []Comment
	Block   *BlockStmt
	Param   Expr // catch binding, may be nil
	Catch   *BlockStmt
	Finally *BlockStmt
}

// SwitchStmt is a switch statement.
type SwitchStmt struct {
	Leading []Comment
	Disc    Expr
	Cases   []SwitchCase
}

// SwitchCase is one case (or default, when Test is nil) clause.
type SwitchCase struct {
	Test Expr
	Body []Stmt
}

func (*BlockStmt) node()    {}
func (*IfStmt) node()       {}
func (*ExprStmt) node()     {}
func (*ReturnStmt) node()   {}
func (*ThrowStmt) node()    {}
func (*BreakStmt) node()    {}
func (*ContinueStmt) node() {}
func (*VarDecl) node()      {}
func (*FuncDecl) node()     {}
func (*WhileStmt) node()    {}
func (*DoWhileStmt) node()  {}
func (*ForStmt) node()      {}
func (*ForInStmt) node()    {}
func (*EmptyStmt) node()    {}
func (*ImportStmt) node()   {}
func (*ExportStmt) node()   {}
func (*ClassDecl) node()    {}
func (*TryStmt) node()      {}
func (*SwitchStmt) node()   {}

func (*BlockStmt) stmt()    {}
func (*IfStmt) stmt()       {}
func (*ExprStmt) stmt()     {}
func (*ReturnStmt) stmt()   {}
func (*ThrowStmt) stmt()    {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*VarDecl) stmt()      {}
func (*FuncDecl) stmt()     {}
func (*WhileStmt) stmt()    {}
func (*DoWhileStmt) stmt()  {}
func (*ForStmt) stmt()      {}
func (*ForInStmt) stmt()    {}
func (*EmptyStmt) stmt()    {}
func (*ImportStmt) stmt()   {}
func (*ExportStmt) stmt()   {}
func (*ClassDecl) stmt()    {}
func (*TryStmt) stmt()      {}
func (*SwitchStmt) stmt()   {}

// Ident is a plain identifier reference.
type Ident struct {
	Name string
}

// Literal is a number, string, regex, boolean or null literal. Raw holds the
// exact source spelling including quotes.
type Literal struct {
	Raw string
}

// TemplateLit is a template literal kept as raw source text, backticks included.
type TemplateLit struct {
	Raw string
}

// MemberExpr is dot property access: Obj.Prop.
type MemberExpr struct {
	Obj      Expr
	Prop     string
	Optional bool // ?. access
}

// IndexExpr is bracket property access: Obj[Index].
type IndexExpr struct {
	Obj   Expr
	Index Expr
}

// CallExpr is a function or method call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

// NewExpr is a constructor call.
type NewExpr struct {
	Callee Expr
	Args   []Expr
}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	Op      string
	X       Expr
	Postfix bool
}

// BinaryExpr covers binary and logical operators.
type BinaryExpr struct {
	Op string
	L  Expr
	R  Expr
}

// AssignExpr covers plain and compound assignment.
type AssignExpr struct {
	Op string
	L  Expr
	R  Expr
}

// CondExpr is the ternary conditional operator.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// ArrowFunc is an arrow function expression. Body is either a *BlockStmt or
// an Expr for the concise form.
type ArrowFunc struct {
	Async  bool
	Params []Expr
	Body   Node
}

// FuncExpr is a function expression with an optional name.
type FuncExpr struct {
	Async  bool
	Name   string
	Params []Expr
	Body   *BlockStmt
}

// Property is one key/value member of an ObjectLit.
type Property struct {
	Key       Expr
	Value     Expr
	Computed  bool
	Shorthand bool
}

// ObjectLit is an object literal.
type ObjectLit struct {
	Props []Property
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elems []Expr
}

// ParenExpr preserves explicit grouping parentheses.
type ParenExpr struct {
	X Expr
}

// SpreadExpr is `...X` in call-argument or literal position.
type SpreadExpr struct {
	X Expr
}

func (*Ident) node()       {}
func (*Literal) node()     {}
func (*TemplateLit) node() {}
func (*MemberExpr) node()  {}
func (*IndexExpr) node()   {}
func (*CallExpr) node()    {}
func (*NewExpr) node()     {}
func (*UnaryExpr) node()   {}
func (*BinaryExpr) node()  {}
func (*AssignExpr) node()  {}
func (*CondExpr) node()    {}
func (*ArrowFunc) node()   {}
func (*FuncExpr) node()    {}
func (*ObjectLit) node()   {}
func (*ArrayLit) node()    {}
func (*ParenExpr) node()   {}
func (*SpreadExpr) node()  {}

func (*Ident) expr()       {}
func (*Literal) expr()     {}
func (*TemplateLit) expr() {}
func (*MemberExpr) expr()  {}
func (*IndexExpr) expr()   {}
func (*CallExpr) expr()    {}
func (*NewExpr) expr()     {}
func (*UnaryExpr) expr()   {}
func (*BinaryExpr) expr()  {}
func (*AssignExpr) expr()  {}
func (*CondExpr) expr()    {}
func (*ArrowFunc) expr()   {}
func (*FuncExpr) expr()    {}
func (*ObjectLit) expr()   {}
func (*ArrayLit) expr()    {}
func (*ParenExpr) expr()   {}
func (*SpreadExpr) expr()  {}
