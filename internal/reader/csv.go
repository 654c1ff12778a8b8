package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate CSV delimiters, in order of preference on ties.
var delimiters = []rune{',', ';', '\t'}

func readCSV(data []byte, charset string) (models.Sheet, error) {
	text, err := decodeText(data, charset)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var sheet models.Sheet
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		row := make(models.Row, len(record))
		for i, field := range record {
			row[i] = textCell(field)
		}
		sheet = append(sheet, row)
	}
	return sheet, nil
}

// decodeText returns data as UTF-8. Valid UTF-8 (with or without a BOM) is
// used as-is; anything else is decoded with the configured legacy charset.
func decodeText(data []byte, charset string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", charset, err)
	}
	return string(decoded), nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
}

// sniffLines bounds how many non-empty lines sniffDelimiter inspects.
const sniffLines = 20

// sniffDelimiter picks the delimiter found, outside quotes, on the most of the
// leading non-empty lines, so a title line above the table does not decide it.
// Ties go to the higher total count, then to the order of delimiters.
// Defaults to a comma.
func sniffDelimiter(text string) rune {
	lines := make(map[rune]int, len(delimiters))
	totals := make(map[rune]int, len(delimiters))

	seen := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for d, n := range countDelimiters(line) {
			lines[d]++
			totals[d] += n
		}
		if seen++; seen == sniffLines {
			break
		}
	}

	best := ','
	for _, d := range delimiters {
		if lines[d] > lines[best] || (lines[d] == lines[best] && totals[d] > totals[best]) {
			best = d
		}
	}
	return best
}

// countDelimiters counts each candidate delimiter outside quotes on line.
func countDelimiters(line string) map[rune]int {
	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, d := range delimiters {
			if r == d {
				counts[d]++
			}
		}
	}
	return counts
}
