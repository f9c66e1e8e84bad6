// Package redir implements the shell's redirection parser: detecting
// and stripping the four redirection operators (>, >>, 2>, 2>>, and the
// explicit 1>/1>> spellings of the stdout pair) from a command's raw
// argument string.
//
// The scan is deliberately not quote-aware — a literal "2>" inside
// single quotes is still treated as a redirection operator. This
// mirrors the shell this package was modeled on and is not a bug to
// fix here.
package redir

import "strings"

// Mode selects whether a redirection target is truncated or appended to
// when opened.
type Mode int

const (
	Truncate Mode = iota
	Append
)

// Target is a single redirection destination: a file path and the mode
// it should be opened in.
type Target struct {
	Path string
	Mode Mode
}

// Spec is the redirection plan for one pipeline segment. A nil field
// means no redirection of that stream was requested.
type Spec struct {
	Stdout *Target
	Stderr *Target
}

// ParseAndStrip scans *args for redirection operators in priority
// order (2>>, 2>, then 1>>/bare >>, then 1>/bare >), extracts at most
// one stdout and one stderr target, and truncates *args at whichever of
// the found operators starts earliest in the string. It is idempotent: running it again on
// the stripped string finds nothing further.
func ParseAndStrip(args *string) Spec {
	a := *args
	var spec Spec

	stderrPos := -1
	stdoutPos, stdoutLen := -1, 0

	// Stderr append: 2>>
	if p := strings.Index(a, "2>>"); p >= 0 {
		stderrPos = p
		if name, ok := extractAfterSkippingWhitespace(a, p+3, true); ok {
			spec.Stderr = &Target{Path: name, Mode: Append}
		}
	}

	// Stderr truncate: 2>
	if spec.Stderr == nil || spec.Stderr.Mode != Append {
		if p := strings.Index(a, "2>"); p >= 0 {
			stderrPos = p
			if name, ok := extractAfterSkippingWhitespace(a, p+2, true); ok {
				spec.Stderr = &Target{Path: name, Mode: Truncate}
			}
		}
	}

	// Stdout append: 1>> or bare >> (ignoring a >> immediately after a '2')
	stdoutLen = 0
	if p := strings.Index(a, "1>>"); p >= 0 {
		stdoutPos, stdoutLen = p, 3
	} else {
		pos := 0
		for {
			p := strings.Index(a[pos:], ">>")
			if p < 0 {
				break
			}
			p += pos
			if p > 0 && a[p-1] == '2' {
				pos = p + 2
				continue
			}
			stdoutPos, stdoutLen = p, 2
			break
		}
	}

	if stdoutPos >= 0 {
		filenameStart := stdoutPos + stdoutLen
		if filenameStart == len(a) {
			return spec
		}

		for filenameStart < len(a) && a[filenameStart] == ' ' {
			filenameStart++
		}
		filenameEnd := filenameStart
		for filenameEnd < len(a) && a[filenameEnd] != ' ' {
			filenameEnd++
		}

		spec.Stdout = &Target{Path: a[filenameStart:filenameEnd], Mode: Append}
	}

	// Stdout truncate: 1> or bare > (ignoring a > after '2' or '>', or followed by another '>')
	if spec.Stdout == nil || spec.Stdout.Mode != Append {
		stdoutLen = 0
		if p := strings.Index(a, "1>"); p >= 0 {
			stdoutPos, stdoutLen = p, 2
		} else {
			stdoutPos = -1
			pos := 0
			for {
				p := strings.Index(a[pos:], ">")
				if p < 0 {
					break
				}
				p += pos
				if p > 0 && (a[p-1] == '2' || a[p-1] == '>') {
					pos = p + 1
					continue
				}
				if p+1 < len(a) && a[p+1] == '>' {
					pos = p + 2
					continue
				}
				stdoutPos, stdoutLen = p, 1
				break
			}
		}

		if stdoutPos >= 0 {
			filenameStart := stdoutPos + stdoutLen
			if filenameStart == len(a) {
				return spec
			}

			for filenameStart < len(a) && a[filenameStart] == ' ' {
				filenameStart++
			}
			filenameEnd := filenameStart
			for filenameEnd < len(a) && a[filenameEnd] != ' ' {
				filenameEnd++
			}

			spec.Stdout = &Target{Path: a[filenameStart:filenameEnd], Mode: Truncate}
		}
	}

	firstRedirectionPos := -1
	switch {
	case stdoutPos >= 0 && stderrPos >= 0:
		firstRedirectionPos = min(stdoutPos, stderrPos)
	case stdoutPos >= 0:
		firstRedirectionPos = stdoutPos
	case stderrPos >= 0:
		firstRedirectionPos = stderrPos
	}

	if firstRedirectionPos >= 0 {
		*args = a[:firstRedirectionPos]
	}

	return spec
}

// extractAfterSkippingWhitespace skips spaces and tabs from start, then
// reads up to the next whitespace or end of string. It reports ok=false
// only when nothing but whitespace (or nothing at all) follows start.
func extractAfterSkippingWhitespace(a string, start int, allowTab bool) (string, bool) {
	for start < len(a) && (a[start] == ' ' || (allowTab && a[start] == '\t')) {
		start++
	}
	if start >= len(a) {
		return "", false
	}

	end := start
	for end < len(a) && a[end] != ' ' && !(allowTab && a[end] == '\t') {
		end++
	}
	return a[start:end], true
}
