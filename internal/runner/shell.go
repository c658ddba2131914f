package runner

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// shellJoin renders argv as a line that can be pasted into a POSIX shell.
func shellJoin(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return strconv.Quote(s)
	}
	return quoted
}
