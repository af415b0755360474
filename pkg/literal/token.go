// SPDX-License-Identifier: Apache-2.0

package literal

import "strings"

// IsNull reports whether the raw SQL token is the NULL literal.
func IsNull(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), "null")
}

// Unquote returns the text of a raw SQL token. Quoted string literals lose
// their surrounding quotes and have doubled or backslash escaped quote
// characters collapsed. Any other backslash sequence is kept as is, so JSON
// escapes inside a string literal survive. Unquoted tokens are returned
// trimmed.
func Unquote(token string) string {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return token
	}

	quote := token[0]
	if (quote != '\'' && quote != '"') || token[len(token)-1] != quote {
		return token
	}

	inner := token[1 : len(token)-1]
	q := string(quote)
	inner = strings.ReplaceAll(inner, `\`+q, q)
	return strings.ReplaceAll(inner, q+q, q)
}

// TextOf returns the unquoted text of the token and false when the token is the
// NULL literal.
func TextOf(token string) (string, bool) {
	if IsNull(token) {
		return "", false
	}
	return Unquote(token), true
}
