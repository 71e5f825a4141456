package plugin

import "strings"

// SymbolPrefix prefixes every factory symbol.
const SymbolPrefix = "create_instance_"

// SymbolFor returns the factory symbol for a script name.
func SymbolFor(name string) string {
	return SymbolPrefix + name
}

// ScriptName returns the script name encoded in a factory symbol. Symbols
// without the prefix are returned unchanged.
func ScriptName(symbol string) string {
	return strings.TrimPrefix(symbol, SymbolPrefix)
}

// FilterSymbols returns the symbols starting with prefix, in order.
func FilterSymbols(symbols []string, prefix string) []string {
	var out []string
	for _, s := range symbols {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// ExcludeSymbols returns the symbols not starting with prefix, in order.
func ExcludeSymbols(symbols []string, prefix string) []string {
	var out []string
	for _, s := range symbols {
		if !strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// uniqueSymbols trims symbols, drops blanks and repeats, keeping the first
// occurrence order.
func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
