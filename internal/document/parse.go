package document

import (
	"bytes"
	"strconv"

	"depsort/internal/diag"
	"depsort/internal/lexer"
	"depsort/internal/source"
)

type parser struct {
	file    *source.File
	cur     lexer.Cursor
	doc     *Document
	table   *Table
	pending []string
}

// Parse builds a Document from raw manifest text. The input is rejected as
// a whole on the first structural error or when the TOML decoder refuses it.
func Parse(path string, src []byte) (*Document, error) {
	return ParseFile(source.NewFile(path, src))
}

// ParseFile is Parse over an already loaded source file.
func ParseFile(f *source.File) (*Document, error) {
	p := &parser{file: f, cur: lexer.NewCursor(f)}
	p.doc = &Document{Path: f.Path, crlf: f.HasCRLF()}
	p.table = &Table{}
	p.doc.tables = []*Table{p.table}

	if bytes.HasPrefix(f.Content, []byte("\xEF\xBB\xBF")) {
		p.doc.bom = string(f.Content[:3])
		p.cur.BumpN(3)
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if err := validate(f, len(p.doc.bom)); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) parse() error {
	for !p.cur.EOF() {
		lineStart := p.cur.Mark()
		indent := p.cur.Text(p.cur.SkipSpaces())

		switch b := p.cur.Peek(); {
		case p.cur.EOF():
			p.pending = append(p.pending, indent+p.eol())
		case b == '\n' || b == '\r':
			if _, _, err := p.cur.ScanNewline(); err != nil {
				return p.lexFail(err)
			}
			p.pending = append(p.pending, p.cur.Text(p.cur.SpanFrom(lineStart)))
		case b == '#':
			if _, err := p.cur.ScanComment(); err != nil {
				return p.lexFail(err)
			}
			line := p.cur.Text(p.cur.SpanFrom(lineStart))
			nl, err := p.lineEnd()
			if err != nil {
				return err
			}
			p.pending = append(p.pending, line+nl)
		case b == '[':
			if err := p.parseHeader(indent); err != nil {
				return err
			}
		default:
			if err := p.parseEntry(indent); err != nil {
				return err
			}
		}
	}
	// всё, что осталось после последней записи, закрепляем за текущей таблицей
	p.table.Trailer = append(p.table.Trailer, p.pending...)
	p.pending = nil
	return nil
}

// eol is used for a last line that has no line break: the break is added to
// the model and dropped again on serialization.
func (p *parser) eol() string {
	p.doc.noEOL = true
	return p.doc.Newline()
}

// lineEnd consumes the line break ending a statement.
func (p *parser) lineEnd() (string, error) {
	if p.cur.EOF() {
		return p.eol(), nil
	}
	sp, ok, lerr := p.cur.ScanNewline()
	if lerr != nil {
		return "", p.lexFail(lerr)
	}
	if !ok {
		return "", p.fail(diag.SynExpectNewline, "expected newline, found "+strconv.QuoteRune(rune(p.cur.Peek())))
	}
	return p.cur.Text(sp), nil
}

// trailer reads optional blanks and a comment after a statement.
func (p *parser) trailer() (pad, comment, nl string, err error) {
	pad = p.cur.Text(p.cur.SkipSpaces())
	if p.cur.Peek() == '#' {
		sp, lerr := p.cur.ScanComment()
		if lerr != nil {
			return "", "", "", p.lexFail(lerr)
		}
		comment = p.cur.Text(sp)
	}
	nl, err = p.lineEnd()
	return pad, comment, nl, err
}

func (p *parser) parseHeader(indent string) error {
	start := p.cur.Mark()
	array := p.cur.HasPrefix("[[")
	if array {
		p.cur.BumpN(2)
	} else {
		p.cur.Bump()
	}
	p.cur.SkipSpaces()
	key, err := p.parseKey()
	if err != nil {
		return err
	}
	p.cur.SkipSpaces()
	closing := "]"
	if array {
		closing = "]]"
	}
	if !p.cur.HasPrefix(closing) {
		return p.fail(diag.SynUnclosedHeader, "expected "+strconv.Quote(closing)+" to close table header")
	}
	p.cur.BumpN(len(closing))
	raw := p.cur.Text(p.cur.SpanFrom(start))

	pad, comment, nl, err := p.trailer()
	if err != nil {
		return err
	}

	before, adjacent := splitPending(p.pending)
	p.pending = nil
	p.table.Trailer = append(p.table.Trailer, before...)

	p.table = &Table{Header: &Header{
		Leading: adjacent,
		Indent:  indent,
		Raw:     raw,
		Key:     key,
		Array:   array,
		Pad:     pad,
		Comment: comment,
		Newline: nl,
	}}
	p.doc.tables = append(p.doc.tables, p.table)
	return nil
}

func (p *parser) parseEntry(indent string) error {
	key, err := p.parseKey()
	if err != nil {
		return err
	}
	eqStart := p.cur.Mark()
	p.cur.SkipSpaces()
	if !p.cur.Eat('=') {
		return p.fail(diag.SynExpectEquals, "expected '=' after key "+strconv.Quote(key.Raw))
	}
	p.cur.SkipSpaces()
	eq := p.cur.Text(p.cur.SpanFrom(eqStart))

	value, err := p.parseValue()
	if err != nil {
		return err
	}
	pad, comment, nl, err := p.trailer()
	if err != nil {
		return err
	}

	before, adjacent := splitPending(p.pending)
	p.pending = nil
	if n := len(p.table.entries); n == 0 {
		p.table.Intro = append(p.table.Intro, before...)
	} else {
		last := p.table.entries[n-1]
		last.Trailing = append(last.Trailing, before...)
	}

	p.table.entries = append(p.table.entries, &Entry{
		Leading: adjacent,
		Indent:  indent,
		Key:     key,
		Eq:      eq,
		Value:   value,
		Pad:     pad,
		Comment: comment,
		Newline: nl,
	})
	return nil
}

func (p *parser) parseKey() (Key, error) {
	start := p.cur.Mark()
	var parts []KeyPart
	for {
		p.cur.SkipSpaces()
		var part KeyPart
		switch p.cur.AtString() {
		case lexer.StrBasic, lexer.StrLiteral:
			sp, kind, lerr := p.cur.ScanString()
			if lerr != nil {
				return Key{}, p.lexFail(lerr)
			}
			part.Raw = p.cur.Text(sp)
			part.Name = unquoteKey(part.Raw, kind)
		case lexer.StrMultiBasic, lexer.StrMultiLiteral:
			return Key{}, p.fail(diag.LexInvalidKey, "multi-line strings cannot be used as keys")
		default:
			sp := p.cur.ScanBareKey()
			if sp.Empty() {
				return Key{}, p.fail(diag.LexInvalidKey, "expected key, found "+describe(p.cur.Peek(), p.cur.EOF()))
			}
			part.Raw = p.cur.Text(sp)
			part.Name = part.Raw
		}
		parts = append(parts, part)

		m := p.cur.Mark()
		p.cur.SkipSpaces()
		if !p.cur.Eat('.') {
			p.cur.Reset(m)
			break
		}
	}
	return Key{Raw: p.cur.Text(p.cur.SpanFrom(start)), Parts: parts}, nil
}

func unquoteKey(raw string, kind lexer.StringKind) string {
	inner := raw[1 : len(raw)-1]
	if kind == lexer.StrLiteral {
		return inner
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	return inner
}

func describe(b byte, eof bool) string {
	if eof {
		return "end of file"
	}
	if b == '\n' || b == '\r' {
		return "end of line"
	}
	return strconv.QuoteRune(rune(b))
}

func (p *parser) fail(code diag.Code, msg string) error {
	return newParseError(p.file, int(p.cur.Off), code, msg)
}

func (p *parser) lexFail(err *lexer.Error) error {
	return newParseError(p.file, int(err.Off), err.Code, err.Msg)
}

func newParseError(f *source.File, off int, code diag.Code, msg string) *ParseError {
	pos := f.Position(off)
	return &ParseError{
		Path:   f.Path,
		Pos:    pos,
		Offset: off,
		Code:   code,
		Msg:    msg,
		Line:   f.GetLine(pos.Line),
	}
}
