package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident    // foo, r#type
	Lifetime // 'a, also loop labels

	// strict keywords
	KwAs       // as
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwConst    // const
	KwContinue // continue
	KwCrate    // crate
	KwDyn      // dyn
	KwElse     // else
	KwEnum     // enum
	KwExtern   // extern
	KwFalse    // false
	KwFn       // fn
	KwFor      // for
	KwIf       // if
	KwImpl     // impl
	KwIn       // in
	KwLet      // let
	KwLoop     // loop
	KwMatch    // match
	KwMod      // mod
	KwMove     // move
	KwMut      // mut
	KwPub      // pub
	KwRef      // ref
	KwReturn   // return
	KwSelfLow  // self
	KwSelfUp   // Self
	KwStatic   // static
	KwStruct   // struct
	KwSuper    // super
	KwTrait    // trait
	KwTrue     // true
	KwType     // type
	KwUnsafe   // unsafe
	KwUse      // use
	KwWhere    // where
	KwWhile    // while

	// reserved keywords
	KwAbstract // abstract
	KwBecome   // become
	KwBox      // box
	KwDo       // do
	KwFinal    // final
	KwMacro    // macro
	KwOverride // override
	KwPriv     // priv
	KwTry      // try
	KwTypeof   // typeof
	KwUnsized  // unsized
	KwVirtual  // virtual
	KwYield    // yield

	// literals
	IntLit        // 1, 0xff, 10_u64
	FloatLit      // 1.5, 2e10, 1f32
	StringLit     // "..", r#".."#
	ByteStringLit // b"..", br".."
	CStringLit    // c".."
	CharLit       // 'a'
	ByteLit       // b'a'

	// operators and punctuation
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Caret         // ^
	Bang          // !
	Amp           // &
	Pipe          // |
	AndAnd        // &&
	OrOr          // ||
	Shl           // <<
	Shr           // >>
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	CaretAssign   // ^=
	AmpAssign     // &=
	PipeAssign    // |=
	ShlAssign     // <<=
	ShrAssign     // >>=
	Assign        // =
	EqEq          // ==
	BangEq        // !=
	Gt            // >
	Lt            // <
	GtEq          // >=
	LtEq          // <=
	At            // @
	Underscore    // _
	Dot           // .
	DotDot        // ..
	DotDotDot     // ...
	DotDotEq      // ..=
	Comma         // ,
	Semicolon     // ;
	Colon         // :
	ColonColon    // ::
	Arrow         // ->
	FatArrow      // =>
	Pound         // #
	Dollar        // $
	Question      // ?
	Tilde         // ~
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "invalid", EOF: "end of input", Ident: "identifier", Lifetime: "lifetime",
	IntLit: "integer literal", FloatLit: "float literal", StringLit: "string literal",
	ByteStringLit: "byte string literal", CStringLit: "C string literal",
	CharLit: "character literal", ByteLit: "byte literal",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^", Bang: "!",
	Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", CaretAssign: "^=", AmpAssign: "&=", PipeAssign: "|=",
	ShlAssign: "<<=", ShrAssign: ">>=", Assign: "=", EqEq: "==", BangEq: "!=",
	Gt: ">", Lt: "<", GtEq: ">=", LtEq: "<=", At: "@", Underscore: "_",
	Dot: ".", DotDot: "..", DotDotDot: "...", DotDotEq: "..=", Comma: ",",
	Semicolon: ";", Colon: ":", ColonColon: "::", Arrow: "->", FatArrow: "=>",
	Pound: "#", Dollar: "$", Question: "?", Tilde: "~",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func init() {
	for text, k := range keywords {
		kindNames[k] = text
	}
}

// String returns the source spelling for keywords and punctuation and a
// description for the other kinds.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is a strict or reserved keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwAs && k <= KwYield
}

// IsLiteral reports whether k is a literal kind (true/false excluded).
func (k Kind) IsLiteral() bool {
	return k >= IntLit && k <= ByteLit
}

// IsCompoundAssign reports whether k is one of the ten compound assignment operators.
func (k Kind) IsCompoundAssign() bool {
	return k >= PlusAssign && k <= ShrAssign
}

// IsOpenDelim reports whether k opens a delimited group.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloseDelim reports whether k closes a delimited group.
func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// MatchingDelim returns the closing kind for an opening delimiter.
func (k Kind) MatchingDelim() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return Invalid
}
