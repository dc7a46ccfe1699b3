package output

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// markdownToHTML renders the formatted summary as a standalone HTML page.
func markdownToHTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return []byte(fmt.Sprintf(htmlPage, html.EscapeString(title), body.String())), nil
}
