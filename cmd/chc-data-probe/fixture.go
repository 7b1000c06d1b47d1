package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/icelearn/hoicedata/internal/predtab"
	"github.com/icelearn/hoicedata/pkg/chcdata"
)

// fixture is a tiny line-oriented format for exercising chcdata without
// pulling in a full SMT-LIB parser. It is deliberately not SMT-LIB: this
// tool demonstrates the data engine in isolation, not clause preprocessing.
//
//	pred <name> <sort>...        declare a predicate ("int", "bool", "rat")
//	pos  <atom>                  assert a known-true sample
//	neg  <atom>                  assert a known-false sample
//	cstr <atom>[, <atom>]* => [<atom>]   assert an implication; empty rhs is bot
//	#  ...                       comment
//
// Atoms are written name(v1,v2,...); values are integer literals, or _
// for a partial/bottom position.
type fixture struct {
	preds  *predtab.Predicates
	names  map[string]chcdata.PredId
	rawPos []atomLine
	rawNeg []atomLine
	cstrs  []cstrLine
}

type atomLine struct {
	pred chcdata.PredId
	args *chcdata.Args
}

type cstrLine struct {
	lhs []atomLine
	rhs *atomLine
}

func newFixture() *fixture {
	return &fixture{preds: predtab.New(), names: make(map[string]chcdata.PredId)}
}

func parseFixture(r io.Reader) (*fixture, error) {
	fx := newFixture()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "pred":
			if err := fx.declarePred(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "pos", "neg":
			if err := fx.addRaw(fields[0] == "pos", strings.TrimSpace(line[len(fields[0]):])); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "cstr":
			if err := fx.addCstr(strings.TrimSpace(line[len("cstr"):])); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	return fx, scanner.Err()
}

func (fx *fixture) declarePred(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("pred: missing name")
	}
	name := fields[0]
	sorts := make([]chcdata.Sort, 0, len(fields)-1)
	for _, s := range fields[1:] {
		switch s {
		case "int":
			sorts = append(sorts, chcdata.IntSort)
		case "bool":
			sorts = append(sorts, chcdata.BoolSort)
		case "rat":
			sorts = append(sorts, chcdata.RatSort)
		default:
			return fmt.Errorf("pred %s: unknown sort %q", name, s)
		}
	}
	id := fx.preds.Declare(sorts...)
	fx.names[name] = id
	return nil
}

// parseAtom parses "name(v1,v2,...)" into an atomLine.
func (fx *fixture) parseAtom(text string) (atomLine, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return atomLine{}, fmt.Errorf("malformed atom %q", text)
	}
	name := text[:open]
	id, ok := fx.names[name]
	if !ok {
		return atomLine{}, fmt.Errorf("undeclared predicate %q", name)
	}
	inner := text[open+1 : len(text)-1]
	vals, err := fx.parseValues(inner)
	if err != nil {
		return atomLine{}, err
	}
	return atomLine{pred: id, args: chcdata.NewArgs(vals...)}, nil
}

func (fx *fixture) parseValues(inner string) ([]*chcdata.Val, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	vals := make([]*chcdata.Val, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "_" {
			vals = append(vals, chcdata.Bot(chcdata.IntSort))
			continue
		}
		n, ok := new(big.Int).SetString(p, 10)
		if !ok {
			return nil, fmt.Errorf("bad integer literal %q", p)
		}
		vals = append(vals, chcdata.IntV(n))
	}
	return vals, nil
}

func (fx *fixture) addRaw(positive bool, rest string) error {
	atom, err := fx.parseAtom(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	if positive {
		fx.rawPos = append(fx.rawPos, atom)
	} else {
		fx.rawNeg = append(fx.rawNeg, atom)
	}
	return nil
}

func (fx *fixture) addCstr(rest string) error {
	arrow := strings.Index(rest, "=>")
	if arrow < 0 {
		return fmt.Errorf("constraint missing '=>'")
	}
	lhsText := strings.TrimSpace(rest[:arrow])
	rhsText := strings.TrimSpace(rest[arrow+2:])

	var lhs []atomLine
	if lhsText != "" {
		depth, start := 0, 0
		for i := 0; i <= len(lhsText); i++ {
			if i < len(lhsText) {
				switch lhsText[i] {
				case '(':
					depth++
				case ')':
					depth--
				}
				if lhsText[i] != ',' || depth > 0 {
					continue
				}
			}
			atom, err := fx.parseAtom(strings.TrimSpace(lhsText[start:i]))
			if err != nil {
				return err
			}
			lhs = append(lhs, atom)
			start = i + 1
		}
	}

	var rhs *atomLine
	if rhsText != "" {
		atom, err := fx.parseAtom(rhsText)
		if err != nil {
			return err
		}
		rhs = &atom
	}

	fx.cstrs = append(fx.cstrs, cstrLine{lhs: lhs, rhs: rhs})
	return nil
}
