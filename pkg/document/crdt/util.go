package crdt

import "strings"

// EscapeString escapes characters that would otherwise break JSON string
// literals produced by Marshal.
func EscapeString(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return replacer.Replace(s)
}
