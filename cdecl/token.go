package cdecl

// Kind identifies the lexical category of a token.
type Kind int

const (
	// KindError marks an unusable token; its text carries the diagnostic.
	KindError Kind = iota
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindComma
	KindSlash
	KindStar
	KindSemicolon
	KindStruct
	KindEnum
	KindConst
	KindVolatile
	KindSigned
	KindUnsigned
	KindVoid
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindNumber
	KindIdent
)

var kindNames = [...]string{
	KindError:     "error",
	KindLParen:    "'('",
	KindRParen:    "')'",
	KindLBracket:  "'['",
	KindRBracket:  "']'",
	KindComma:     "','",
	KindSlash:     "'/'",
	KindStar:      "'*'",
	KindSemicolon: "';'",
	KindStruct:    "struct",
	KindEnum:      "enum",
	KindConst:     "const",
	KindVolatile:  "volatile",
	KindSigned:    "signed",
	KindUnsigned:  "unsigned",
	KindVoid:      "void",
	KindChar:      "char",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindNumber:    "number",
	KindIdent:     "identifier",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "(unknown)"
	}
	return kindNames[k]
}

// MaxTokenLen is the longest token text the lexer will store. Identifier or
// tag runs past this bound yield an error token instead of silent truncation.
const MaxTokenLen = 79

// Token is one lexical unit. Text holds the spelled name for identifiers,
// struct/enum tags and numbers; it is empty for fixed-spelling tokens. Tokens
// are value types: the stack and the parser copy them, never share them.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + " " + t.Text
}

var keywords = map[string]Kind{
	"struct":   KindStruct,
	"enum":     KindEnum,
	"const":    KindConst,
	"volatile": KindVolatile,
	"signed":   KindSigned,
	"unsigned": KindUnsigned,
	"void":     KindVoid,
	"char":     KindChar,
	"int":      KindInt,
	"long":     KindLong,
	"float":    KindFloat,
	"double":   KindDouble,
}
