package document

import (
	"depsort/internal/diag"
	"depsort/internal/lexer"
)

var stringKinds = map[lexer.StringKind]ValueKind{
	lexer.StrBasic:        KindString,
	lexer.StrLiteral:      KindLiteral,
	lexer.StrMultiBasic:   KindMultiString,
	lexer.StrMultiLiteral: KindMultiLiteral,
}

func (p *parser) parseValue() (*Value, error) {
	if kind := p.cur.AtString(); kind != lexer.StrNone {
		sp, _, lerr := p.cur.ScanString()
		if lerr != nil {
			return nil, p.lexFail(lerr)
		}
		return &Value{Kind: stringKinds[kind], Raw: p.cur.Text(sp)}, nil
	}
	switch p.cur.Peek() {
	case '[':
		return p.parseArray()
	case '{':
		return p.parseInlineTable()
	}
	sp := p.cur.ScanScalar()
	if sp.Empty() {
		return nil, p.fail(diag.SynExpectValue, "expected value, found "+describe(p.cur.Peek(), p.cur.EOF()))
	}
	return &Value{Kind: KindScalar, Raw: p.cur.Text(sp)}, nil
}

func (p *parser) parseArray() (*Value, error) {
	start := p.cur.Mark()
	p.cur.Bump() // '['
	v := &Value{Kind: KindArray}

	var (
		comments   []string
		last       *Item
		afterValue bool // значение прочитано, запятой ещё не было
		sameLine   bool // перевода строки после последнего значения не было
	)
	for {
		p.cur.SkipSpaces()
		if p.cur.EOF() {
			return nil, p.fail(diag.SynUnclosedArray, "unclosed array, expected ']'")
		}
		switch b := p.cur.Peek(); {
		case b == '\n' || b == '\r':
			if _, _, lerr := p.cur.ScanNewline(); lerr != nil {
				return nil, p.lexFail(lerr)
			}
			v.Multiline = true
			sameLine = false
		case b == '#':
			sp, lerr := p.cur.ScanComment()
			if lerr != nil {
				return nil, p.lexFail(lerr)
			}
			text := p.cur.Text(sp)
			if last != nil && sameLine && last.Comment == "" {
				last.Comment = text
			} else {
				comments = append(comments, text)
			}
		case b == ']':
			p.cur.Bump()
			v.Tail = comments
			v.TrailingComma = last != nil && !afterValue
			v.Raw = p.cur.Text(p.cur.SpanFrom(start))
			return v, nil
		case b == ',':
			if !afterValue {
				return nil, p.fail(diag.SynUnexpectedToken, "unexpected ',' in array")
			}
			p.cur.Bump()
			afterValue = false
		default:
			if afterValue {
				return nil, p.fail(diag.SynUnexpectedToken, "expected ',' or ']' in array, found "+describe(b, false))
			}
			elem, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			last = &Item{Leading: comments, Value: elem}
			comments = nil
			v.Items = append(v.Items, last)
			afterValue = true
			sameLine = true
		}
	}
}

func (p *parser) parseInlineTable() (*Value, error) {
	start := p.cur.Mark()
	p.cur.Bump() // '{'
	v := &Value{Kind: KindInlineTable}

	p.cur.SkipSpaces()
	if p.cur.Eat('}') {
		v.Raw = p.cur.Text(p.cur.SpanFrom(start))
		return v, nil
	}
	for {
		p.cur.SkipSpaces()
		if err := p.inlineInterrupted(); err != nil {
			return nil, err
		}
		fieldStart := p.cur.Mark()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.cur.SkipSpaces()
		if !p.cur.Eat('=') {
			return nil, p.fail(diag.SynExpectEquals, "expected '=' after key in inline table")
		}
		p.cur.SkipSpaces()
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Fields = append(v.Fields, &Field{
			Key:   key,
			Value: elem,
			Raw:   p.cur.Text(p.cur.SpanFrom(fieldStart)),
		})

		p.cur.SkipSpaces()
		if p.cur.Eat(',') {
			p.cur.SkipSpaces()
			if p.cur.Eat('}') {
				v.TrailingComma = true
				break
			}
			continue
		}
		if p.cur.Eat('}') {
			break
		}
		if err := p.inlineInterrupted(); err != nil {
			return nil, err
		}
		return nil, p.fail(diag.SynUnexpectedToken, "expected ',' or '}' in inline table, found "+describe(p.cur.Peek(), false))
	}
	v.Raw = p.cur.Text(p.cur.SpanFrom(start))
	return v, nil
}

// inlineInterrupted reports a line break or EOF inside an inline table.
func (p *parser) inlineInterrupted() error {
	switch {
	case p.cur.EOF():
		return p.fail(diag.SynUnclosedInlineTable, "unclosed inline table, expected '}'")
	case p.cur.AtNewline() || p.cur.Peek() == '\r':
		return p.fail(diag.SynNewlineInInline, "inline tables must fit on one line")
	}
	return nil
}
