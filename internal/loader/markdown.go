package loader

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// readMarkdown parses markdown with goldmark and extracts the plain text
// content, keeping paragraph boundaries as blank lines.
func readMarkdown(content []byte) (string, error) {
	parser := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(content)
	doc := parser.Parser().Parse(reader)

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n\n") {
				sb.WriteString("\n\n")
			}
		case *ast.Text:
			sb.Write(node.Segment.Value(content))
		case *ast.String:
			sb.Write(node.Value)
		case *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				sb.Write(line.Value(content))
			}
		case *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				sb.Write(line.Value(content))
			}
		}
		return ast.WalkContinue, nil
	})

	return sb.String(), nil
}
