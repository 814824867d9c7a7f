package hashindex

import (
	"fmt"
	"os"
)

// diagnostic mirrors the original library's EPRINTF_MSG: a line on stderr
// prefixed with "hashindex:", used alongside (never instead of) a returned
// error so a host tailing stderr sees the same text the C tool produced.
func diagnostic(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "hashindex: "+format+"\n", args...)
}

// diagnosticPath is the path-qualified variant: "hashindex: <path>: msg".
func diagnosticPath(path, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "hashindex: %s: "+format+"\n", append([]any{path}, args...)...)
}
