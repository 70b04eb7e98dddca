package statement

import (
	"strings"
	"time"

	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Statement markers. Exports in the wild carry either the SGML-style header
// line or the wrapper tag, sometimes both.
const (
	headerSignature = "OFXHEADER"
	rootOpenTag     = "<OFX>"

	transactionOpenTag  = "<STMTTRN>"
	transactionCloseTag = "</STMTTRN>"
)

// ParseResult holds the transactions extracted from one statement file
// together with diagnostic counts. Skipped counts segments dropped for
// missing a required field; they are data noise, not errors.
type ParseResult struct {
	Transactions []BankTransaction
	Parsed       int
	Skipped      int
}

// Parser turns raw statement content into typed bank transactions.
// The format has no enforced grammar, so the parser is a resilient
// segment scanner: each transaction segment is validated independently
// and a malformed segment never aborts the batch.
//
// Parsing is deterministic and side-effect free; a Parser may be shared
// across goroutines.
type Parser struct{}

// NewParser creates a new statement parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts bank transactions from raw statement content.
// Output order matches input order. When the content has no recognizable
// statement marker it returns an empty result and ErrInvalidStatementFormat;
// callers treat that as an empty import, not a fatal failure.
func (p *Parser) Parse(content string) (*ParseResult, error) {
	result := &ParseResult{Transactions: []BankTransaction{}}

	upper := strings.ToUpper(content)
	if !strings.Contains(upper, headerSignature) && !strings.Contains(upper, rootOpenTag) {
		return result, shared.ErrInvalidStatementFormat
	}

	for _, segment := range splitSegments(content) {
		tx, ok := p.parseSegment(segment)
		if !ok {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
		result.Parsed++
	}

	return result, nil
}

// splitSegments cuts the document on the per-transaction delimiter pair.
// A segment missing its closing delimiter simply runs until the next
// opening delimiter; per-field scanning bounds it further.
func splitSegments(content string) []string {
	parts := strings.Split(content, transactionOpenTag)
	if len(parts) <= 1 {
		return nil
	}
	segments := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if end := strings.Index(part, transactionCloseTag); end >= 0 {
			part = part[:end]
		}
		segments = append(segments, part)
	}
	return segments
}

// parseSegment extracts one transaction from a segment. It reports ok=false
// when any required field (external id, amount, posting date) is missing or
// unreadable; such segments are dropped silently.
func (p *Parser) parseSegment(segment string) (BankTransaction, bool) {
	externalID := extractTagValue(segment, "FITID")
	rawAmount := extractTagValue(segment, "TRNAMT")
	rawDate := extractTagValue(segment, "DTPOSTED")
	if externalID == "" || rawAmount == "" || rawDate == "" {
		return BankTransaction{}, false
	}

	amount, ok := parseAmount(rawAmount)
	if !ok {
		return BankTransaction{}, false
	}

	postedAt, ok := parseDate(rawDate)
	if !ok {
		return BankTransaction{}, false
	}

	kind := TransactionKindCredit
	if amount.IsNegative() {
		kind = TransactionKindDebit
	}

	description := extractTagValue(segment, "MEMO")
	if description == "" {
		description = extractTagValue(segment, "NAME")
	}

	return BankTransaction{
		ExternalID:  externalID,
		PostedAt:    postedAt,
		Amount:      amount,
		Description: description,
		Kind:        kind,
		RawType:     extractTagValue(segment, "TRNTYPE"),
	}, true
}

// extractTagValue finds <NAME> inside the segment and returns the text up to
// the next tag-opening character or line break. Closing tags are optional in
// the statement format, so the boundary fallback is part of the contract.
func extractTagValue(segment, name string) string {
	open := "<" + name + ">"
	start := strings.Index(segment, open)
	if start < 0 {
		return ""
	}
	value := segment[start+len(open):]
	if end := strings.IndexAny(value, "<\r\n"); end >= 0 {
		value = value[:end]
	}
	return strings.TrimSpace(value)
}

// parseAmount reads a signed decimal with full precision. Exports from
// Brazilian banks occasionally use a comma as the decimal separator.
func parseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseDate decodes the 8-digit YYYYMMDD posting date. Trailing time-of-day
// digits and timezone suffixes are ignored.
func parseDate(raw string) (time.Time, bool) {
	digits := leadingDigits(strings.TrimSpace(raw))
	if len(digits) < 8 {
		return time.Time{}, false
	}
	digits = digits[:8]

	year := atoi(digits[0:4])
	month := atoi(digits[4:6])
	day := atoi(digits[6:8])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject anything that
	// did not round-trip so junk like month 13 is dropped, not shifted.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func leadingDigits(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
