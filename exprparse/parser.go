package exprparse

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/wedgepath/cnfengine/cnf"
)

type parser struct {
	s     scanner.Scanner
	eof   bool
	token string

	nextObjectID int
}

// Parse reads a formula from r and returns the cnf.Formula it denotes.
// creatingConditionalID is stamped on every clause produced, as the
// provenance id callers would otherwise assign to a parsed conditional.
func Parse(r io.Reader, creatingConditionalID int) (cnf.Formula, error) {
	var s scanner.Scanner
	s.Init(r)
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	p := &parser{s: s, nextObjectID: 1}
	p.scan()
	f, err := p.parseFormula(creatingConditionalID)
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Pos())
	}
	return f, nil
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = p.s.Scan() == scanner.EOF
	p.token = p.s.TokenText()
}

func (p *parser) parseFormula(condID int) (cnf.Formula, error) {
	var out cnf.Formula
	for {
		c, err := p.parseClause(condID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		if p.eof || p.token != "&" {
			return out, nil
		}
		p.scan()
	}
}

func (p *parser) parseClause(condID int) (*cnf.Clause, error) {
	parenthesised := false
	if !p.eof && p.token == "(" {
		parenthesised = true
		p.scan()
	}

	possibilities := make(map[cnf.VarKey][]cnf.Assertion)
	objID := p.nextObjectID
	p.nextObjectID++

	for {
		v, a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		possibilities[v] = append(possibilities[v], a)

		if p.eof || p.token != "|" {
			break
		}
		p.scan()
	}

	if parenthesised {
		if p.eof || p.token != ")" {
			return nil, fmt.Errorf("expected closing parenthesis at %s", p.s.Pos())
		}
		p.scan()
	}

	return cnf.NewClause(possibilities, condID, objID), nil
}

func (p *parser) parseAtom() (cnf.VarKey, cnf.Assertion, error) {
	if p.eof {
		return "", nil, fmt.Errorf("expected variable name, found EOF")
	}
	name := p.token
	if name == "" || isReservedToken(name) {
		return "", nil, fmt.Errorf("expected variable name at %s, found %q", p.s.Pos(), name)
	}
	p.scan()

	if p.eof || p.token != ":" {
		return "", nil, fmt.Errorf("expected ':' after variable %q at %s", name, p.s.Pos())
	}
	p.scan()
	if p.eof {
		return "", nil, fmt.Errorf("expected assertion name after '%s:', found EOF", name)
	}

	negated := false
	if p.token == "!" {
		negated = true
		p.scan()
		if p.eof {
			return "", nil, fmt.Errorf("expected assertion name after '%s:!', found EOF", name)
		}
	}
	first := p.token
	p.scan()

	if first == "falsy" {
		if p.eof || p.token != ":" {
			return "", nil, fmt.Errorf("expected ':' after 'falsy' at %s", p.s.Pos())
		}
		p.scan()
		if p.eof {
			return "", nil, fmt.Errorf("expected assertion name after 'falsy:', found EOF")
		}
		falsyName := p.token
		p.scan()
		if negated {
			return "", nil, fmt.Errorf("falsy assertions cannot be negated, at variable %q", name)
		}
		return cnf.VarKey(name), cnf.NewFalsyAssertion(falsyName), nil
	}

	if negated {
		return cnf.VarKey(name), cnf.NewNegatedAssertion(first), nil
	}
	return cnf.VarKey(name), cnf.NewAssertion(first), nil
}

func isReservedToken(tok string) bool {
	switch tok {
	case "&", "|", "!", ":", "(", ")":
		return true
	default:
		return false
	}
}
