// Package pdfreader opens uploaded PDF bytes with github.com/ledongthuc/pdf.
package pdfreader

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"pdf-quiz/internal/domain"

	"github.com/ledongthuc/pdf"
)

const (
	// wordGap is the horizontal gap, in font sizes, that separates two runs.
	wordGap = 0.2
	// lineTolerance is the baseline shift, in font sizes, still read as one line.
	lineTolerance = 0.5
)

// Opener implements domain.DocumentOpener on top of ledongthuc/pdf.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open parses data as a PDF document.
func (o *Opener) Open(data []byte) (doc domain.Document, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	// the parser panics on some malformed inputs
	defer recoverAsError(&err, "failed to open PDF")

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &document{reader: reader}, nil
}

type document struct {
	reader *pdf.Reader
}

func (d *document) NumPages() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return d.reader.NumPage()
}

// PageText returns the text runs of a page in content-stream order.
// A run ends where the baseline changes or where the next glyph starts
// noticeably after the previous one ends.
func (d *document) PageText(pageNum int) (fragments []string, err error) {
	defer recoverAsError(&err, fmt.Sprintf("failed to read page %d", pageNum))

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	var (
		sb   strings.Builder
		prev *pdf.Text
	)
	flush := func() {
		if fragment := strings.TrimSpace(sb.String()); fragment != "" {
			fragments = append(fragments, fragment)
		}
		sb.Reset()
	}

	glyphs := page.Content().Text
	for i := range glyphs {
		cur := &glyphs[i]
		if prev != nil && startsNewRun(prev, cur) {
			flush()
		}
		sb.WriteString(cur.S)
		prev = cur
	}
	flush()
	return fragments, nil
}

// startsNewRun reports whether cur begins a separate run from prev.
func startsNewRun(prev, cur *pdf.Text) bool {
	size := math.Max(prev.FontSize, 1)
	if math.Abs(cur.Y-prev.Y) > size*lineTolerance {
		return true
	}
	gap := cur.X - (prev.X + prev.W)
	return gap > size*wordGap || gap < -size
}

func recoverAsError(err *error, msg string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", msg, r)
	}
}

var _ domain.DocumentOpener = (*Opener)(nil)
