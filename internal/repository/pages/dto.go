package pages

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/astroseek/astroseek/internal/db"
	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/page"
)

// Hash field names of an indexed page. The FT schema in index.go must stay
// in step with these.
const (
	FieldURL        = "url"
	FieldFavicon    = "favicon"
	FieldTitle      = "title"
	FieldHeadings   = "headings"
	FieldContent    = "content"
	FieldFilters    = "filters"
	FieldClickCount = "click_count"
	FieldTimestamp  = "timestamp"
	FieldEmbedding  = "embedding"
)

// filterSeparator joins facet tags in the hash field; it matches the TAG
// separator in the FT schema.
const filterSeparator = ","

// ReturnFields lists every displayable field for RETURN clauses. The
// embedding is deliberately excluded from search payloads.
var ReturnFields = []string{
	FieldURL, FieldFavicon, FieldTitle, FieldHeadings,
	FieldContent, FieldFilters, FieldClickCount, FieldTimestamp,
}

// pageToFields flattens a page into hash fields. click_count is never
// written here: re-indexing a URL must preserve the accumulated counter,
// and the only writer of that field is the click-feedback updater.
func pageToFields(p *page.Page) map[string]string {
	fields := map[string]string{
		FieldURL:       p.URL(),
		FieldTitle:     p.Title(),
		FieldHeadings:  p.Headings(),
		FieldContent:   p.Content(),
		FieldTimestamp: strconv.FormatInt(p.Timestamp().Unix(), 10),
	}
	if p.Favicon() != "" {
		fields[FieldFavicon] = p.Favicon()
	}
	if len(p.Filters()) > 0 {
		fields[FieldFilters] = strings.Join(p.Filters(), filterSeparator)
	}
	if len(p.Embedding()) > 0 {
		fields[FieldEmbedding] = vectorToFieldBytes(p.Embedding())
	}
	return fields
}

// FieldsToPage hydrates a page from hash fields.
func FieldsToPage(fields map[string]string) page.Page {
	var clickCount int64
	if v, ok := fields[FieldClickCount]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			clickCount = n
		}
	}

	var ts time.Time
	if v, ok := fields[FieldTimestamp]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			ts = time.Unix(n, 0).UTC()
		}
	}

	var filters []string
	if v := fields[FieldFilters]; v != "" {
		filters = strings.Split(v, filterSeparator)
	}

	var embedding []float32
	if v := fields[FieldEmbedding]; v != "" {
		embedding = fieldBytesToVector(v)
	}

	return page.Reconstruct(
		fields[FieldURL],
		fields[FieldFavicon],
		fields[FieldTitle],
		fields[FieldHeadings],
		fields[FieldContent],
		filters,
		clickCount,
		ts,
		embedding,
	)
}

// IndexDefinition is the FT schema for the page index.
func IndexDefinition() *db.IndexDefinition {
	return db.NewIndex(IndexName()).
		Prefix(keyPrefix()).
		Text(FieldTitle).
		Text(FieldHeadings).
		Text(FieldContent).
		Tag(FieldFilters).
		NumericSortable(FieldClickCount).
		NumericSortable(FieldTimestamp).
		VectorFlat(FieldEmbedding, domain.VectorDim, db.DistanceCosine).
		MustBuild()
}

func vectorToFieldBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func fieldBytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
