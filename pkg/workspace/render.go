package workspace

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"textmerger/pkg/extract"
	"textmerger/pkg/formats"
	"textmerger/pkg/ingest"
)

// RenderOptions controls the merged document.
type RenderOptions struct {
	Tree bool // Prefix the document with the workspace tree.
}

// Render merges every record into one plain-text document, ordered by path.
func (w *Workspace) Render(opts RenderOptions) string {
	var parts []string

	if opts.Tree && len(w.Files) > 0 {
		parts = append(parts, strings.TrimRight(w.Tree(), "\n"))
	}

	for _, path := range w.Paths() {
		parts = append(parts, renderEntry(w.Files[path]))
	}

	return strings.Join(parts, "\n\n")
}

func renderEntry(r ingest.FileRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n", extract.DashLine, r.Path, extract.DashLine)
	if r.Content != nil {
		b.WriteString(*r.Content)
	} else {
		b.WriteString(nonTextSummary(r))
	}
	b.WriteString("\n" + extract.DashLine)
	return b.String()
}

func nonTextSummary(r ingest.FileRecord) string {
	return fmt.Sprintf("%s (non-text file)\nName: %s | Size: %d bytes | Type: %s",
		r.Path, r.Metadata.Name, r.Metadata.Size, r.Metadata.Type)
}

// Markdown renders the workspace as markdown: one section per file with its content in
// a fenced block tagged with the file extension.
func (w *Workspace) Markdown(opts RenderOptions) string {
	var b strings.Builder

	if opts.Tree && len(w.Files) > 0 {
		tree := w.Tree()
		fence := fenceFor(tree)
		fmt.Fprintf(&b, "%stext\n%s%s\n\n", fence, tree, fence)
	}

	for _, path := range w.Paths() {
		r := w.Files[path]
		fmt.Fprintf(&b, "## %s\n\n", codeSpan(r.Path))

		if r.Content == nil {
			fmt.Fprintf(&b, "*non-text file* | Name: %s | Size: %d bytes | Type: %s\n\n",
				codeSpan(r.Metadata.Name), r.Metadata.Size, codeSpan(r.Metadata.Type))
			continue
		}

		content := *r.Content
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		fence := fenceFor(content)
		lang := strings.TrimPrefix(formats.Ext(r.Path), ".")
		fmt.Fprintf(&b, "%s%s\n%s%s\n\n", fence, lang, content, fence)
	}

	return b.String()
}

// RenderHTML renders the markdown form of the workspace to a standalone HTML page.
func (w *Workspace) RenderHTML(opts RenderOptions) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(w.Markdown(opts)), &body); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Merged files</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// fenceFor returns a backtick fence longer than any backtick run in s.
func fenceFor(s string) string {
	return strings.Repeat("`", max(3, longestRun(s, '`')+1))
}

// codeSpan wraps s in an inline code span that survives backticks inside s.
func codeSpan(s string) string {
	ticks := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
