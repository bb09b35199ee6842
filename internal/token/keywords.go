package token

var keywords = map[string]Kind{
	"as":       KwAs,
	"async":    KwAsync,
	"await":    KwAwait,
	"break":    KwBreak,
	"const":    KwConst,
	"continue": KwContinue,
	"crate":    KwCrate,
	"dyn":      KwDyn,
	"else":     KwElse,
	"enum":     KwEnum,
	"extern":   KwExtern,
	"false":    KwFalse,
	"fn":       KwFn,
	"for":      KwFor,
	"if":       KwIf,
	"impl":     KwImpl,
	"in":       KwIn,
	"let":      KwLet,
	"loop":     KwLoop,
	"match":    KwMatch,
	"mod":      KwMod,
	"move":     KwMove,
	"mut":      KwMut,
	"pub":      KwPub,
	"ref":      KwRef,
	"return":   KwReturn,
	"self":     KwSelfLow,
	"Self":     KwSelfUp,
	"static":   KwStatic,
	"struct":   KwStruct,
	"super":    KwSuper,
	"trait":    KwTrait,
	"true":     KwTrue,
	"type":     KwType,
	"unsafe":   KwUnsafe,
	"use":      KwUse,
	"where":    KwWhere,
	"while":    KwWhile,
	"abstract": KwAbstract,
	"become":   KwBecome,
	"box":      KwBox,
	"do":       KwDo,
	"final":    KwFinal,
	"macro":    KwMacro,
	"override": KwOverride,
	"priv":     KwPriv,
	"try":      KwTry,
	"typeof":   KwTypeof,
	"unsized":  KwUnsized,
	"virtual":  KwVirtual,
	"yield":    KwYield,
}

// LookupKeyword reports the keyword kind of ident. Keywords are case-sensitive.
// Weak keywords (union, gen, macro_rules, raw, safe) lex as identifiers.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// weakReserved are contextual keywords that still may not name a theorem,
// variable or binding, because generated code would not compile with them.
var weakReserved = map[string]struct{}{
	"union": {},
	"gen":   {},
}

// IsReservedWord reports whether s is a Rust strict, reserved or
// edition-reserved keyword and so unusable as a generated identifier.
func IsReservedWord(s string) bool {
	if _, ok := keywords[s]; ok {
		return true
	}
	_, ok := weakReserved[s]
	return ok
}
