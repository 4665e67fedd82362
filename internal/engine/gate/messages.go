package gate

import (
	"fmt"
	"strings"

	"github.com/irahardianto/formatgate/internal/engine/config"
	"github.com/irahardianto/formatgate/internal/engine/patch"
)

const promptText = "Apply formatting? [a]pply / [f]orce / [c]ancel / [?] help: "

const helpText = `  a  apply the formatting to the working tree and the index, then commit
  f  commit anyway, leaving the staged changes unformatted
  c  cancel the commit
  ?  show this help
`

const forceWarning = "Committing without formatting. Press Enter to continue."

// HookGuidance explains how formatgate is meant to be started.
func HookGuidance() string {
	return `formatgate runs as a git pre-commit hook and was started outside of one.

Install it in the current repository with:

    formatgate install

Use "formatgate check" to inspect the staged changes by hand, or
"formatgate --help" for all commands.
`
}

// rejectionGuidance tells the user how to fix the staged files when the
// prompt is disabled.
func (g *Gate) rejectionGuidance(p patch.Patch) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", g.Styles.Error(fmt.Sprintf("The staged changes do not match the formatting style %q:", g.Settings.Style)))
	for _, path := range p.Paths() {
		fmt.Fprintf(&b, "    %s\n", path)
	}

	quoted := make([]string, 0, len(p.Files))
	for _, path := range p.Paths() {
		quoted = append(quoted, shellQuote(path))
	}

	fmt.Fprintf(&b, "\nFormat them and stage the result with:\n\n")
	fmt.Fprintf(&b, "    %s\n", g.Formatter.FixCommand(g.Settings.Style))
	fmt.Fprintf(&b, "    git add %s\n", strings.Join(quoted, " "))
	fmt.Fprintf(&b, "\nTo review and apply the changes while committing, enable interactive mode:\n\n")
	fmt.Fprintf(&b, "    %s\n", g.Styles.Italic(fmt.Sprintf("git config %s true", config.KeyInteractive)))
	return b.String()
}

// shellQuote quotes s for a POSIX shell when it contains anything beyond
// common path characters.
func shellQuote(s string) string {
	safe := func(r rune) bool {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./+@:,", r)
	}
	if s != "" && strings.IndexFunc(s, func(r rune) bool { return !safe(r) }) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
