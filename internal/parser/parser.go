// Package parser implements shiro's recursive-descent, Pratt-style
// expression parser and its surrounding statement/top-level grammar
// (§4.4). It never fails outright: malformed input is recorded to a
// diag.Bag and the parser resynchronizes at the nearest statement or
// top-level boundary so one mistake does not stop the whole file from
// being parsed.
package parser

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/diag"
	"github.com/shiro-lang/shiro/internal/lexer"
)

// precedence levels for the Pratt expression parser, lowest to highest.
// Assignment is right-associative; everything else in this table is
// left-associative (§4.4's operator table).
const (
	precLowest = iota
	precAssign
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.ASSIGN: precAssign, lexer.PLUSEQ: precAssign, lexer.MINUSEQ: precAssign,
	lexer.STAREQ: precAssign, lexer.SLASHEQ: precAssign, lexer.PERCENTEQ: precAssign,
	lexer.EQ: precEquality, lexer.NEQ: precEquality,
	lexer.LT: precRelational, lexer.LE: precRelational, lexer.GT: precRelational, lexer.GE: precRelational,
	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,
	lexer.STAR: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
}

func isRightAssociative(tt lexer.TokenType) bool {
	switch tt {
	case lexer.ASSIGN, lexer.PLUSEQ, lexer.MINUSEQ, lexer.STAREQ, lexer.SLASHEQ, lexer.PERCENTEQ:
		return true
	default:
		return false
	}
}

// Parser holds one file's worth of parsing state: the lexer feeding it
// tokens and the diagnostic bag errors are reported to.
type Parser struct {
	lex  *lexer.Lexer
	bag  *diag.Bag
	file string
	tok  lexer.Token
}

// New creates a parser over src, identified by file for diagnostics.
func New(file, src string, bag *diag.Bag) *Parser {
	p := &Parser{lex: lexer.New(file, src), bag: bag, file: file}
	p.advance()
	return p
}

func (p *Parser) advance() { p.tok = p.lex.Next() }

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.bag.Error(diag.Position{File: p.file, Line: pos.Line, Column: pos.Column}, format, args...)
}

// savepoint mirrors the lexer's own savepoint but also captures the
// parser's current token, since the parser buffers one token of its own
// outside the lexer's internal peek buffer (§4.3).
type savepoint struct{ tok lexer.Token }

func (p *Parser) enterSpeculative() savepoint {
	p.lex.EnterSpeculativeMode()
	return savepoint{tok: p.tok}
}

func (p *Parser) commitSpeculative() { p.lex.CommitSpeculation() }

func (p *Parser) rollbackSpeculative(sp savepoint) {
	p.lex.RollbackSpeculation()
	p.tok = sp.tok
}

// expect consumes the current token if it matches tt, reporting an error
// and leaving the cursor unmoved otherwise (the caller's resync logic
// handles unwinding from there).
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.tok.Type != tt {
		p.errorf(p.tok.Pos, "expected %s, found %s", tt.String(), p.tok.Type.String())
		return p.tok, false
	}
	tok := p.tok
	p.advance()
	return tok, true
}

// synchronizeStmt discards tokens until a statement boundary: a
// consumed `;`, an unconsumed `}`, or EOF (§7's error-recovery rule).
func (p *Parser) synchronizeStmt() {
	for {
		switch p.tok.Type {
		case lexer.SEMI:
			p.advance()
			return
		case lexer.RBRACE, lexer.EOF:
			return
		default:
			p.advance()
		}
	}
}

// synchronizeTopLevel discards tokens until one that can start a new
// top-level definition, or EOF.
func (p *Parser) synchronizeTopLevel() {
	for {
		switch p.tok.Type {
		case lexer.FN, lexer.CLASS, lexer.IMPORT, lexer.EXPORT, lexer.EXTERN, lexer.EOF:
			return
		default:
			p.advance()
		}
	}
}

// ParseFile parses one complete source file into a Root. Imports must
// precede every other definition; a later import is still parsed (so the
// rest of the file keeps its shape) but flagged as misplaced (§4.4).
func ParseFile(file, src string, bag *diag.Bag) *ast.Root {
	p := New(file, src, bag)
	startPos := p.tok.Pos
	root := ast.NewRoot(file, startPos, startPos)

	for p.tok.Type == lexer.IMPORT {
		if imp := p.parseImportDef(); imp != nil {
			root.Imports = append(root.Imports, imp)
		}
	}
	for p.tok.Type != lexer.EOF {
		if p.tok.Type == lexer.IMPORT {
			p.errorf(p.tok.Pos, "import must appear before all other definitions")
			if imp := p.parseImportDef(); imp != nil {
				root.Imports = append(root.Imports, imp)
			}
			continue
		}
		before := len(root.Defs)
		if def := p.parseTopLevelDef(); def != nil {
			root.Defs = append(root.Defs, def)
		}
		if len(root.Defs) == before {
			p.synchronizeTopLevel()
		}
	}
	return root
}

func (p *Parser) parseImportDef() *ast.ImportDef {
	pos := p.tok.Pos
	p.advance() // 'import'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.synchronizeStmt()
		return nil
	}
	namespace := nameTok.Literal
	module := ""
	if p.tok.Type == lexer.DOT {
		p.advance()
		modTok, ok := p.expect(lexer.IDENT)
		if ok {
			module = modTok.Literal
		}
	}
	endPos := p.tok.Pos
	if _, ok := p.expect(lexer.SEMI); !ok {
		p.synchronizeStmt()
	}
	return ast.NewImportDef(namespace, module, pos, endPos)
}

func (p *Parser) parseTopLevelDef() ast.TopLevelDef {
	pos := p.tok.Pos
	exported := false
	extern := ""

	for {
		switch p.tok.Type {
		case lexer.EXPORT:
			exported = true
			p.advance()
			continue
		case lexer.EXTERN:
			p.advance()
			if p.tok.Type == lexer.STRING {
				extern = p.tok.Literal
				p.advance()
			} else {
				extern = "C"
			}
			continue
		}
		break
	}

	switch p.tok.Type {
	case lexer.FN:
		return p.parseFnDef(pos, exported, extern)
	case lexer.CLASS:
		return p.parseClassDef(pos, exported)
	default:
		p.errorf(p.tok.Pos, "expected a top-level definition, found %s", p.tok.Type.String())
		return nil
	}
}

func (p *Parser) parseTypeParams() []*ast.TypeParamDecl {
	if p.tok.Type != lexer.LT {
		return nil
	}
	p.advance()
	var params []*ast.TypeParamDecl
	for {
		tok, ok := p.expect(lexer.IDENT)
		if !ok {
			break
		}
		params = append(params, ast.NewTypeParamDecl(tok.Literal, tok.Pos, p.tok.Pos))
		if p.tok.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.GT)
	return params
}

func (p *Parser) parseParams() []*ast.ParamDecl {
	p.expect(lexer.LPAREN)
	var params []*ast.ParamDecl
	for p.tok.Type != lexer.RPAREN && p.tok.Type != lexer.EOF {
		nameTok, ok := p.expect(lexer.IDENT)
		if !ok {
			break
		}
		p.expect(lexer.COLON)
		te := p.parseTypeExpr()
		params = append(params, ast.NewParamDecl(nameTok.Literal, te, nameTok.Pos, p.tok.Pos))
		if p.tok.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseFnDef(pos lexer.Position, exported bool, extern string) *ast.FnDef {
	p.advance() // 'fn'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.synchronizeTopLevel()
		return nil
	}
	fn := ast.NewFnDef(nameTok.Literal, pos, pos)
	fn.Exported = exported
	fn.Extern = extern
	fn.TypeParams = p.parseTypeParams()
	fn.Params = p.parseParams()
	if p.tok.Type == lexer.ARROW {
		p.advance()
		fn.ReturnType = p.parseTypeExpr()
	}
	if extern != "" && p.tok.Type == lexer.SEMI {
		p.advance()
		return fn
	}
	fn.Body = p.parseCompoundStmt()
	return fn
}

func (p *Parser) parseClassDef(pos lexer.Position, exported bool) *ast.ClassDef {
	p.advance() // 'class'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.synchronizeTopLevel()
		return nil
	}
	cls := ast.NewClassDef(nameTok.Literal, pos, pos)
	cls.Exported = exported
	cls.TypeParams = p.parseTypeParams()
	p.expect(lexer.LBRACE)
	for p.tok.Type != lexer.RBRACE && p.tok.Type != lexer.EOF {
		memberExported := false
		if p.tok.Type == lexer.EXPORT {
			memberExported = true
			p.advance()
		}
		if p.tok.Type == lexer.FN {
			meth := p.parseMethodDef()
			meth.Exported = memberExported
			cls.Methods = append(cls.Methods, meth)
			continue
		}
		if m := p.parseMemberDecl(); m != nil {
			cls.Members = append(cls.Members, m)
		} else {
			p.synchronizeStmt()
		}
	}
	p.expect(lexer.RBRACE)
	return cls
}

func (p *Parser) parseMethodDef() *ast.MethodDef {
	pos := p.tok.Pos
	p.advance() // 'fn'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.synchronizeStmt()
		return ast.NewMethodDef("", pos, pos)
	}
	meth := ast.NewMethodDef(nameTok.Literal, pos, pos)
	meth.TypeParams = p.parseTypeParams()
	meth.Params = p.parseParams()
	if p.tok.Type == lexer.ARROW {
		p.advance()
		meth.ReturnType = p.parseTypeExpr()
	}
	meth.Body = p.parseCompoundStmt()
	return meth
}

func (p *Parser) parseMemberDecl() *ast.MemberDecl {
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	p.expect(lexer.COLON)
	te := p.parseTypeExpr()
	var init ast.Expr
	if p.tok.Type == lexer.ASSIGN {
		p.advance()
		init = p.parseExpr(precLowest)
	}
	endPos := p.tok.Pos
	p.expect(lexer.SEMI)
	return ast.NewMemberDecl(nameTok.Literal, te, init, nameTok.Pos, endPos)
}

// ---- Type expressions ----

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	pos := p.tok.Pos
	switch {
	case lexer.IsBuiltinTypeKeyword(p.tok.Type):
		kw := p.tok.Type
		p.advance()
		return ast.NewBuiltinTypeExpr(kw, pos, p.tok.Pos)
	case p.tok.Type == lexer.STAR:
		p.advance()
		return ast.NewPointerTypeExpr(p.parseTypeExpr(), pos, p.tok.Pos)
	case p.tok.Type == lexer.VIEW:
		p.advance()
		p.expect(lexer.LBRACKET)
		elem := p.parseTypeExpr()
		p.expect(lexer.RBRACKET)
		return ast.NewViewTypeExpr(elem, pos, p.tok.Pos)
	case p.tok.Type == lexer.LBRACKET:
		p.advance()
		elem := p.parseTypeExpr()
		p.expect(lexer.COMMA)
		size := p.parseExpr(precLowest)
		p.expect(lexer.RBRACKET)
		return ast.NewArrayTypeExpr(elem, size, pos, p.tok.Pos)
	case p.tok.Type == lexer.IDENT:
		name := p.tok.Literal
		p.advance()
		var args []ast.TypeExpr
		if p.tok.Type == lexer.LT {
			p.advance()
			for {
				args = append(args, p.parseTypeExpr())
				if p.tok.Type == lexer.COMMA {
					p.advance()
					continue
				}
				break
			}
			p.expect(lexer.GT)
		}
		return ast.NewNamedTypeExpr(name, args, pos, p.tok.Pos)
	default:
		p.errorf(pos, "expected a type, found %s", p.tok.Type.String())
		p.advance()
		return ast.NewNamedTypeExpr("<error>", nil, pos, pos)
	}
}

// tryParseTypeExpr is a non-erroring twin of parseTypeExpr used only
// inside a speculative attempt: it reports failure by returning ok=false
// instead of writing to the diagnostic bag, since a failed speculative
// parse must leave no trace once rolled back.
func (p *Parser) tryParseTypeExpr() (ast.TypeExpr, bool) {
	pos := p.tok.Pos
	switch {
	case lexer.IsBuiltinTypeKeyword(p.tok.Type):
		kw := p.tok.Type
		p.advance()
		return ast.NewBuiltinTypeExpr(kw, pos, p.tok.Pos), true
	case p.tok.Type == lexer.STAR:
		p.advance()
		inner, ok := p.tryParseTypeExpr()
		if !ok {
			return nil, false
		}
		return ast.NewPointerTypeExpr(inner, pos, p.tok.Pos), true
	case p.tok.Type == lexer.IDENT:
		name := p.tok.Literal
		p.advance()
		var args []ast.TypeExpr
		if p.tok.Type == lexer.LT {
			p.advance()
			for {
				te, ok := p.tryParseTypeExpr()
				if !ok {
					return nil, false
				}
				args = append(args, te)
				if p.tok.Type == lexer.COMMA {
					p.advance()
					continue
				}
				break
			}
			if p.tok.Type != lexer.GT {
				return nil, false
			}
			p.advance()
		}
		return ast.NewNamedTypeExpr(name, args, pos, p.tok.Pos), true
	default:
		return nil, false
	}
}

// ---- Statements ----

func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	pos := p.tok.Pos
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for p.tok.Type != lexer.RBRACE && p.tok.Type != lexer.EOF {
		before := len(stmts)
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
		if len(stmts) == before {
			p.synchronizeStmt()
		}
	}
	endPos := p.tok.Pos
	p.expect(lexer.RBRACE)
	return ast.NewCompoundStmt(stmts, pos, endPos)
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case lexer.LBRACE:
		return p.parseCompoundStmt()
	case lexer.VAR:
		return p.parseDeclStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprOrIncDecStmt()
	}
}

func (p *Parser) parseDeclStmt() *ast.DeclStmt {
	pos := p.tok.Pos
	p.advance() // 'var'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.synchronizeStmt()
		return nil
	}
	var te ast.TypeExpr
	if p.tok.Type == lexer.COLON {
		p.advance()
		te = p.parseTypeExpr()
	}
	var init ast.Expr
	if p.tok.Type == lexer.ASSIGN {
		p.advance()
		init = p.parseExpr(precLowest)
	}
	endPos := p.tok.Pos
	p.expect(lexer.SEMI)
	decl := ast.NewVarDecl(nameTok.Literal, te, init, nameTok.Pos, endPos)
	return ast.NewDeclStmt(decl, pos, endPos)
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.tok.Pos
	p.advance() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(precLowest)
	p.expect(lexer.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.tok.Type == lexer.ELSE {
		p.advance()
		els = p.parseStmt()
	}
	return ast.NewIfStmt(cond, then, els, pos, p.tok.Pos)
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.tok.Pos
	p.advance() // 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(precLowest)
	p.expect(lexer.RPAREN)
	body := p.parseStmt()
	return ast.NewWhileStmt(cond, body, pos, p.tok.Pos)
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.tok.Pos
	p.advance() // 'return'
	var value ast.Expr
	if p.tok.Type != lexer.SEMI {
		value = p.parseExpr(precLowest)
	}
	endPos := p.tok.Pos
	p.expect(lexer.SEMI)
	return ast.NewReturnStmt(value, pos, endPos)
}

func (p *Parser) parseExprOrIncDecStmt() ast.Stmt {
	pos := p.tok.Pos
	expr := p.parseExpr(precLowest)
	if p.tok.Type == lexer.INC || p.tok.Type == lexer.DEC {
		isInc := p.tok.Type == lexer.INC
		p.advance()
		endPos := p.tok.Pos
		p.expect(lexer.SEMI)
		return ast.NewIncDecStmt(expr, isInc, pos, endPos)
	}
	endPos := p.tok.Pos
	p.expect(lexer.SEMI)
	return ast.NewExprStmt(expr, pos, endPos)
}

// ---- Expressions ----

func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.tok.Type]
		if !ok || prec < minPrec {
			return left
		}
		op := p.tok.Type
		pos := p.tok.Pos
		p.advance()
		nextMin := prec + 1
		if isRightAssociative(op) {
			nextMin = prec
		}
		right := p.parseExpr(nextMin)
		left = ast.NewBinOp(op, left, right, pos, p.tok.Pos)
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case lexer.MINUS:
		pos := p.tok.Pos
		switch p.lex.Peek(0).Type {
		case lexer.INT:
			p.advance()
			tok := p.tok
			p.advance()
			lit := parseIntLit(tok)
			return ast.NewIntLit(lit.Magnitude, true, lit.Suffix, pos, p.tok.Pos)
		case lexer.FLOAT:
			p.advance()
			tok := p.tok
			p.advance()
			lit := parseFloatLit(tok)
			return ast.NewFloatLit(-lit.Value, lit.Suffix, pos, p.tok.Pos)
		}
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryOp(lexer.MINUS, operand, pos, p.tok.Pos)
	case lexer.PLUS, lexer.BANG, lexer.AMP, lexer.STAR, lexer.INC, lexer.DEC:
		op := p.tok.Type
		pos := p.tok.Pos
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryOp(op, operand, pos, p.tok.Pos)
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.tok.Type {
		case lexer.DOT:
			p.advance()
			memberTok, ok := p.expect(lexer.IDENT)
			if !ok {
				return expr
			}
			expr = ast.NewAccessExpr(expr, memberTok.Literal, expr.Pos(), p.tok.Pos)
		case lexer.LPAREN:
			p.advance()
			var args []ast.Expr
			for p.tok.Type != lexer.RPAREN && p.tok.Type != lexer.EOF {
				args = append(args, p.parseExpr(precAssign))
				if p.tok.Type == lexer.COMMA {
					p.advance()
					continue
				}
				break
			}
			endPos := p.tok.Pos
			p.expect(lexer.RPAREN)
			expr = ast.NewCallExpr(expr, args, expr.Pos(), endPos)
		case lexer.LBRACKET:
			p.advance()
			expr = p.parseSubscriptOrSlice(expr)
		case lexer.AS:
			p.advance()
			te := p.parseTypeExpr()
			expr = ast.NewCastExpr(expr, te, expr.Pos(), p.tok.Pos)
		default:
			return expr
		}
	}
}

func (p *Parser) parseSubscriptOrSlice(target ast.Expr) ast.Expr {
	var start ast.Expr
	if p.tok.Type != lexer.DOTDOT {
		start = p.parseExpr(precLowest)
	}
	if p.tok.Type == lexer.DOTDOT {
		p.advance()
		var end ast.Expr
		if p.tok.Type != lexer.RBRACKET {
			end = p.parseExpr(precLowest)
		}
		endPos := p.tok.Pos
		p.expect(lexer.RBRACKET)
		return ast.NewArraySlice(target, start, end, target.Pos(), endPos)
	}
	endPos := p.tok.Pos
	p.expect(lexer.RBRACKET)
	return ast.NewArraySubscript(target, start, target.Pos(), endPos)
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Type {
	case lexer.INT:
		tok := p.tok
		p.advance()
		return parseIntLit(tok)
	case lexer.FLOAT:
		tok := p.tok
		p.advance()
		return parseFloatLit(tok)
	case lexer.TRUE:
		p.advance()
		return ast.NewBoolLit(true, pos, p.tok.Pos)
	case lexer.FALSE:
		p.advance()
		return ast.NewBoolLit(false, pos, p.tok.Pos)
	case lexer.STRING:
		tok := p.tok
		p.advance()
		return ast.NewStrLit(tok.Literal, pos, p.tok.Pos)
	case lexer.NULL:
		p.advance()
		return ast.NewNullLit(pos, p.tok.Pos)
	case lexer.UNINIT:
		p.advance()
		return ast.NewUninitLit(pos, p.tok.Pos)
	case lexer.SELF:
		p.advance()
		return ast.NewSelfExpr(pos, p.tok.Pos)
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr(precLowest)
		endPos := p.tok.Pos
		p.expect(lexer.RPAREN)
		return ast.NewParenExpr(inner, pos, endPos)
	case lexer.LBRACKET:
		p.advance()
		var elems []ast.Expr
		for p.tok.Type != lexer.RBRACKET && p.tok.Type != lexer.EOF {
			elems = append(elems, p.parseExpr(precAssign))
			if p.tok.Type == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
		endPos := p.tok.Pos
		p.expect(lexer.RBRACKET)
		return ast.NewArrayLit(elems, pos, endPos)
	case lexer.IDENT:
		name := p.tok.Literal
		p.advance()
		return p.parseIdentPrimary(name, pos)
	default:
		p.errorf(pos, "unexpected token %s in expression", p.tok.Type.String())
		p.advance()
		return ast.NewNullLit(pos, pos)
	}
}

// parseIdentPrimary continues parsing after an identifier has already
// been consumed: plain construction (`Name{...}`), generic construction
// requiring a speculative disambiguation against `Name < expr` (§4.3,
// §4.4), or a bare name reference.
func (p *Parser) parseIdentPrimary(name string, pos lexer.Position) ast.Expr {
	if p.tok.Type == lexer.LBRACE {
		return p.parseConstructExpr(ast.NewNamedTypeExpr(name, nil, pos, pos), pos)
	}
	if p.tok.Type == lexer.LT {
		if classTE, ok := p.tryParseGenericConstructHead(name, pos); ok {
			return p.parseConstructExpr(classTE, pos)
		}
	}
	return ast.NewRefExpr(name, pos, p.tok.Pos)
}

// tryParseGenericConstructHead speculatively parses `<TypeExpr, ...>`
// followed by `{`, rolling back entirely on any mismatch so a false
// start is indistinguishable from never having tried (§4.3's speculative
// mode contract). On success the parser is left positioned at the `{`.
func (p *Parser) tryParseGenericConstructHead(name string, namePos lexer.Position) (ast.TypeExpr, bool) {
	sp := p.enterSpeculative()
	if p.tok.Type != lexer.LT {
		p.rollbackSpeculative(sp)
		return nil, false
	}
	p.advance()
	var args []ast.TypeExpr
	for {
		te, ok := p.tryParseTypeExpr()
		if !ok {
			p.rollbackSpeculative(sp)
			return nil, false
		}
		args = append(args, te)
		if p.tok.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if p.tok.Type != lexer.GT {
		p.rollbackSpeculative(sp)
		return nil, false
	}
	p.advance()
	if p.tok.Type != lexer.LBRACE {
		p.rollbackSpeculative(sp)
		return nil, false
	}
	p.commitSpeculative()
	return ast.NewNamedTypeExpr(name, args, namePos, namePos), true
}

func (p *Parser) parseConstructExpr(classTE ast.TypeExpr, pos lexer.Position) ast.Expr {
	p.expect(lexer.LBRACE)
	var inits []ast.MemberInit
	for p.tok.Type != lexer.RBRACE && p.tok.Type != lexer.EOF {
		nameTok, ok := p.expect(lexer.IDENT)
		if !ok {
			break
		}
		p.expect(lexer.ASSIGN)
		expr := p.parseExpr(precAssign)
		inits = append(inits, ast.MemberInit{Name: nameTok.Literal, Expr: expr})
		if p.tok.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	endPos := p.tok.Pos
	p.expect(lexer.RBRACE)
	return ast.NewConstructExpr(classTE, inits, pos, endPos)
}

func parseIntLit(tok lexer.Token) *ast.IntLit {
	var magnitude uint64
	for _, r := range tok.Literal {
		if r < '0' || r > '9' {
			break
		}
		magnitude = magnitude*10 + uint64(r-'0')
	}
	return ast.NewIntLit(magnitude, false, tok.Suffix, tok.Pos, tok.Pos)
}

func parseFloatLit(tok lexer.Token) *ast.FloatLit {
	var value float64
	var frac float64 = 1
	seenDot := false
	for _, r := range tok.Literal {
		switch {
		case r == '.':
			seenDot = true
		case r >= '0' && r <= '9':
			if !seenDot {
				value = value*10 + float64(r-'0')
			} else {
				frac /= 10
				value += float64(r-'0') * frac
			}
		}
	}
	return ast.NewFloatLit(value, tok.Suffix, tok.Pos, tok.Pos)
}
