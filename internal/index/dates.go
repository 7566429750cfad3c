package index

import (
	"fmt"
	"time"

	"github.com/cassiomolin/lucene-example/internal/domain"
)

// DateEncodingLayout is the day-resolution encoding of dates in the index.
// Lexicographic order of encoded values equals calendar order for years
// 0 through 9999.
const DateEncodingLayout = "20060102"

// EncodeDate returns the sortable string form of d.
func EncodeDate(d domain.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// DecodeDate is the inverse of EncodeDate.
func DecodeDate(s string) (domain.Date, error) {
	if len(s) != len(DateEncodingLayout) {
		return domain.Date{}, &Error{Op: "decode date", Kind: ErrDateDecode, Err: fmt.Errorf("unexpected length in %q", s)}
	}
	t, err := time.Parse(DateEncodingLayout, s)
	if err != nil {
		return domain.Date{}, &Error{Op: "decode date", Kind: ErrDateDecode, Err: err}
	}
	return domain.DateOf(t), nil
}
