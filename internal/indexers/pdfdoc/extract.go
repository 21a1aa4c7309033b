package pdfdoc

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractor is one text-extraction strategy. Strategies are tried in
// order; the next one runs only when the previous yielded too little.
type extractor struct {
	name    string
	extract func(path string) (string, map[string]any, error)
}

// minUsableChars is the threshold below which the next extraction
// strategy is attempted.
const minUsableChars = 100

// cellGap is the horizontal gap (in points) between positioned text
// runs that marks a column boundary in the layout strategy.
const cellGap = 18.0

func defaultExtractors() []extractor {
	return []extractor{
		{name: "layout", extract: layoutExtract},
		{name: "plain", extract: plainExtract},
	}
}

// layoutExtract reads positioned text rows, detecting multi-column
// rows as table rows and serialising them pipe-delimited under a
// per-page tables marker.
func layoutExtract(path string) (string, map[string]any, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		var lines, tableRows []string
		for _, row := range rows {
			cells := rowCells(row)
			switch {
			case len(cells) >= 2:
				tableRows = append(tableRows, strings.Join(cells, " | "))
			case len(cells) == 1:
				lines = append(lines, cells[0])
			}
		}
		if len(lines) == 0 && len(tableRows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n[Page %d]\n%s", n, strings.Join(lines, "\n"))
		if len(tableRows) > 0 {
			fmt.Fprintf(&sb, "\n[Page %d tables]\n%s", n, strings.Join(tableRows, "\n"))
		}
	}

	return sb.String(), docMetadata(reader, "layout"), nil
}

// plainExtract reads each page's plain text stream.
func plainExtract(path string) (string, map[string]any, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(content) == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n[Page %d]\n%s", n, content)
	}

	return sb.String(), docMetadata(reader, "plain"), nil
}

// rowCells splits one positioned row into cells on horizontal gaps.
func rowCells(row *pdf.Row) []string {
	var cells []string
	var current strings.Builder
	var lastEnd float64

	for i, word := range row.Content {
		if i > 0 && word.X-lastEnd > cellGap && current.Len() > 0 {
			if cell := strings.TrimSpace(current.String()); cell != "" {
				cells = append(cells, cell)
			}
			current.Reset()
		}
		current.WriteString(word.S)
		lastEnd = word.X + word.W
	}
	if cell := strings.TrimSpace(current.String()); cell != "" {
		cells = append(cells, cell)
	}
	return cells
}

// docMetadata collects document-level metadata from the PDF trailer.
func docMetadata(reader *pdf.Reader, extractorName string) map[string]any {
	meta := map[string]any{
		"total_pages": reader.NumPage(),
		"extractor":   extractorName,
	}

	info := reader.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return meta
	}
	for pdfKey, metaKey := range map[string]string{
		"Title":   "title",
		"Author":  "author",
		"Subject": "subject",
		"Creator": "creator",
	} {
		if v := info.Key(pdfKey); v.Kind() == pdf.String {
			meta[metaKey] = v.RawString()
		}
	}
	return meta
}
