package circuit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// EvalParam evaluates a QASM parameter expression such as "-pi/4" or "2*pi/3".
func EvalParam(expr string) (float64, error) {
	p := &paramParser{src: strings.TrimSpace(expr)}
	if p.src == "" {
		return 0, fmt.Errorf("empty parameter")
	}
	value, err := p.sum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("unexpected %q in parameter %q", p.src[p.pos:], expr)
	}
	return value, nil
}

type paramParser struct {
	src string
	pos int
}

func (p *paramParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *paramParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *paramParser) sum() (float64, error) {
	left, err := p.product()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.product()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.product()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *paramParser) product() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero in parameter %q", p.src)
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *paramParser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.atom()
}

func (p *paramParser) atom() (float64, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing ) in parameter %q", p.src)
		}
		p.pos++
		return v, nil
	case strings.HasPrefix(p.src[p.pos:], "pi"):
		p.pos += 2
		return math.Pi, nil
	case c == '.' || unicode.IsDigit(rune(c)):
		start := p.pos
		for p.pos < len(p.src) && strings.ContainsRune("0123456789.eE", rune(p.src[p.pos])) {
			// exponent sign, e.g. 1e-3
			if (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '-' || p.src[p.pos+1] == '+') {
				p.pos++
			}
			p.pos++
		}
		return strconv.ParseFloat(p.src[start:p.pos], 64)
	default:
		return 0, fmt.Errorf("unexpected %q in parameter %q", string(c), p.src)
	}
}
