package cdecl

// stackSize is the number of tokens a single parse can defer before the
// identifier is seen.
const stackSize = 20

// tokenStack is a fixed-capacity LIFO buffer of tokens. All operations are
// O(1) and allocation-free; overflow is a caller-visible condition, never
// grown past. Each parse call owns its own stack.
type tokenStack struct {
	n      int
	tokens [stackSize]Token
}

func (s *tokenStack) len() int { return s.n }

func (s *tokenStack) empty() bool { return s.n == 0 }

func (s *tokenStack) full() bool { return s.n >= stackSize }

// push appends tok at the top. It reports false, leaving the stack unchanged,
// when the stack is full.
func (s *tokenStack) push(tok Token) bool {
	if s.full() {
		return false
	}
	s.tokens[s.n] = tok
	s.n++
	return true
}

// pop removes and returns the top token, reporting false when empty.
func (s *tokenStack) pop() (Token, bool) {
	if s.empty() {
		return Token{}, false
	}
	s.n--
	return s.tokens[s.n], true
}

// top returns the top token without removing it, reporting false when empty.
func (s *tokenStack) top() (Token, bool) {
	if s.empty() {
		return Token{}, false
	}
	return s.tokens[s.n-1], true
}
