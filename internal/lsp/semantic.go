package lsp

import (
	"slices"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"smol/internal/parser"
	"smol/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

// collectSemanticTokens classifies the scanned tokens of text. Scanning
// stops at the first invalid character; the tokens before it are still
// highlighted.
func collectSemanticTokens(path, text string) []SemanticToken {
	toks, _ := parser.ScanTokens(path, text)

	var tokens []SemanticToken
	for i, tok := range toks {
		var kind string
		modifiers := 0
		switch tok.Type {
		case token.PRINT, token.READ, token.IF:
			kind = "keyword"
		case token.IDENT:
			kind = "variable"
			if i > 0 && (toks[i-1].Type == token.ASSIGN || toks[i-1].Type == token.READ) {
				modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
			}
		case token.NUM:
			kind = "number"
		case token.ASSIGN, token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.LT:
			kind = "operator"
		default:
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:           uint32(tok.Line - 1),
			StartChar:      uint32(tok.Column - 1),
			Length:         uint32(len(tok.Literal)),
			TokenType:      indexOf(kind, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}
	return tokens
}

// encodeSemanticTokens produces the LSP wire format (delta-line, delta-start)
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, st := range tokens {
		deltaLine := st.Line - prevLine
		deltaStart := st.StartChar
		if deltaLine == 0 {
			deltaStart = st.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, st.Length, uint32(st.TokenType), uint32(st.TokenModifiers))

		prevLine = st.Line
		prevStart = st.StartChar
	}
	return data
}

func completionItems(path, text string) []protocol.CompletionItem {
	keyword := protocol.CompletionItemKindKeyword
	variable := protocol.CompletionItemKindVariable

	items := []protocol.CompletionItem{
		{Label: token.PRINT, Kind: &keyword},
		{Label: token.READ, Kind: &keyword},
		{Label: token.IF, Kind: &keyword},
	}

	toks, _ := parser.ScanTokens(path, text)
	var names []string
	for i, tok := range toks {
		if tok.Type == token.IDENT && i > 0 && (toks[i-1].Type == token.ASSIGN || toks[i-1].Type == token.READ) {
			names = append(names, tok.Literal)
		}
	}
	slices.Sort(names)
	for _, name := range slices.Compact(names) {
		items = append(items, protocol.CompletionItem{Label: name, Kind: &variable})
	}
	return items
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	if i := slices.Index(list, target); i >= 0 {
		return i
	}
	return 0
}
