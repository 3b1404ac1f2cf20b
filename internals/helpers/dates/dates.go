// file: internals/helpers/dates/dates.go
package dates

import (
	"strings"
	"time"
)

const LayoutYMD = "2006-01-02"

// TruncateToDay memotong jam/menit/detik — semua tanggal meal disimpan jam 00:00 UTC
// supaya unique index (member, mess, date) konsisten lintas timezone server.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseYMD menerima "YYYY-MM-DD" dan mengembalikan tanggal ter-truncate.
func ParseYMD(s string) (time.Time, error) {
	t, err := time.Parse(LayoutYMD, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDay(t), nil
}

func FormatYMD(t time.Time) string { return t.Format(LayoutYMD) }

// NextMonthRange mengembalikan hari pertama dan jumlah hari bulan BERIKUTNYA
// relatif terhadap now (dipakai generator bulanan).
func NextMonthRange(now time.Time) (first time.Time, days int) {
	y, m, _ := now.Date()
	first = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	next := first.AddDate(0, 1, 0)
	days = int(next.Sub(first).Hours() / 24)
	return first, days
}

// EachDay memanggil fn untuk tiap hari dari start s.d. end inklusif (keduanya sudah truncate).
func EachDay(start, end time.Time, fn func(day time.Time) error) error {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}
