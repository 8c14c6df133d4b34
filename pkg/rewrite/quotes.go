// quotes.go tracks quoting and backslash escaping across nested literal layers.
//
// Each nesting layer doubles backslashes and escapes quotes, so text nested d
// layers deep carries predictable runs: a quote that delimits a value at depth
// d sits behind 2^d - 1 backslashes, while a quote that is literal content of
// that value sits behind 2^(d+1) - 1. Runs longer by a multiple of 2^(d+1)
// prepend literal backslashes without changing the quote's role.
package rewrite

import "strings"

// escapeRunLen returns the backslash run carried by a value delimiter at the
// given raw nesting depth: 2^depth - 1. Depth 0 delimiters are bare quotes.
func escapeRunLen(depth int) int {
	if depth < 0 {
		depth = 0
	}
	return (1 << uint(depth)) - 1
}

// delimiterAt reports whether the quote character at pos acts as a value
// delimiter for text at the given raw depth. The backslash run before it,
// taken modulo 2^(depth+1), must equal 2^depth - 1.
func delimiterAt(s string, pos, depth int) bool {
	if depth < 0 {
		depth = 0
	}
	run := backslashRunBefore(s, pos)
	period := 1 << uint(depth+1)
	return run%period == escapeRunLen(depth)
}

// backslashRunBefore counts the backslashes immediately preceding pos.
func backslashRunBefore(s string, pos int) int {
	run := 0
	for i := pos - 1; i >= 0 && s[i] == '\\'; i-- {
		run++
	}
	return run
}

// findStringEnd returns the index of the quote terminating a string opened
// just before from, honoring ordinary single-backslash escaping.
func findStringEnd(s string, from int, quote byte) (int, bool) {
	for pos := from; pos < len(s); pos++ {
		if s[pos] == quote && delimiterAt(s, pos, 0) {
			return pos, true
		}
	}
	return 0, false
}

// unescapeLayer removes one layer of backslash escaping: \\ becomes \,
// \" becomes ", \' becomes '. Any other backslash is kept as-is. Applying
// it d times to text extracted from depth d recovers the authored literal.
func unescapeLayer(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\', '"', '\'':
				b.WriteByte(s[i+1])
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
