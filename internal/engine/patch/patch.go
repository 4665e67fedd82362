// Package patch parses the unified diffs produced by the formatter.
package patch

import (
	"strconv"
	"strings"
)

// Hunk is a single "@@" section of a file diff. Old* refer to the staged
// content, New* to the formatted content.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Added    int
	Removed  int
}

// FileDiff holds the diff of one file.
type FileDiff struct {
	Path    string
	Content string
	Hunks   []Hunk
}

// Patch is a unified diff as emitted by the formatter.
type Patch struct {
	Raw   string
	Files []FileDiff
}

// Parse splits raw formatter output into per-file diffs. Output that carries
// no file header at all, such as "no modified files to format", yields an
// empty patch.
func Parse(raw string) Patch {
	return Patch{Raw: raw, Files: splitDiffs(raw)}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Files) == 0
}

// Paths returns the paths of all changed files in diff order.
func (p Patch) Paths() []string {
	paths := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

const diffPrefix = "diff --git "

// splitDiffs splits a unified diff into per-file entries. Git-style output
// begins each file with "diff --git"; plain unified diffs with "--- ".
func splitDiffs(raw string) []FileDiff {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var (
		diffs   []FileDiff
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		if d, ok := parseFileDiff(current); ok {
			diffs = append(diffs, d)
		}
		current = nil
	}

	lines := strings.SplitAfter(raw, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, diffPrefix):
			flush()
		case strings.HasPrefix(line, "--- ") && !isGitBlock(current) && startsFile(lines, i):
			flush()
		}
		current = append(current, line)
	}
	flush()

	return diffs
}

// isGitBlock reports whether the block being collected opened with
// "diff --git"; such blocks only end at the next "diff --git".
func isGitBlock(block []string) bool {
	return len(block) > 0 && strings.HasPrefix(block[0], diffPrefix)
}

// startsFile reports whether lines[i] is a "--- " header followed by "+++ ".
func startsFile(lines []string, i int) bool {
	return i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ")
}

// parseFileDiff builds a FileDiff from the lines of one file section.
// Sections without a recognizable path are dropped.
func parseFileDiff(lines []string) (FileDiff, bool) {
	d := FileDiff{Content: strings.Join(lines, "")}

	var hunk *Hunk
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		switch {
		case strings.HasPrefix(line, diffPrefix):
			d.Path = extractFilePath(strings.TrimPrefix(line, diffPrefix))
		case strings.HasPrefix(line, "@@"):
			if h, ok := parseHunkHeader(line); ok {
				d.Hunks = append(d.Hunks, h)
				hunk = &d.Hunks[len(d.Hunks)-1]
			}
		case hunk != nil && strings.HasPrefix(line, "+"):
			hunk.Added++
		case hunk != nil && strings.HasPrefix(line, "-"):
			hunk.Removed++
		case strings.HasPrefix(line, "+++ "):
			if p := headerPath(strings.TrimPrefix(line, "+++ "), "b/"); p != "" {
				d.Path = p
			}
		case strings.HasPrefix(line, "--- "):
			if d.Path == "" {
				d.Path = headerPath(strings.TrimPrefix(line, "--- "), "a/")
			}
		}
	}

	if d.Path == "" {
		return FileDiff{}, false
	}
	return d, true
}

// extractFilePath parses the file path from a "diff --git" header.
// Format: "a/<path> b/<path>". The b/ path (destination) wins.
func extractFilePath(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		bPath := parts[1]
		if strings.HasPrefix(bPath, "b/") {
			return bPath[2:]
		}
		return bPath
	}

	// Fallback: take a/ path
	return strings.TrimPrefix(parts[0], "a/")
}

// headerPath extracts the path from a "---"/"+++" header, dropping the
// prefix and any trailing timestamp. /dev/null yields "".
func headerPath(header, prefix string) string {
	if i := strings.IndexByte(header, '\t'); i >= 0 {
		header = header[:i]
	}
	header = strings.TrimSpace(header)
	if header == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// parseHunkHeader parses "@@ -l[,s] +l[,s] @@".
func parseHunkHeader(line string) (Hunk, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "@@" {
		return Hunk{}, false
	}

	oldStart, oldLines, ok := parseRange(fields[1], "-")
	if !ok {
		return Hunk{}, false
	}
	newStart, newLines, ok := parseRange(fields[2], "+")
	if !ok {
		return Hunk{}, false
	}

	return Hunk{OldStart: oldStart, OldLines: oldLines, NewStart: newStart, NewLines: newLines}, true
}

// parseRange parses "-l,s" or "+l"; a missing count means 1.
func parseRange(field, sign string) (start, count int, ok bool) {
	if !strings.HasPrefix(field, sign) {
		return 0, 0, false
	}
	field = field[1:]

	count = 1
	if i := strings.IndexByte(field, ','); i >= 0 {
		n, err := strconv.Atoi(field[i+1:])
		if err != nil {
			return 0, 0, false
		}
		count = n
		field = field[:i]
	}

	start, err := strconv.Atoi(field)
	if err != nil {
		return 0, 0, false
	}
	return start, count, true
}
