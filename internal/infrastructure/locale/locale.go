// Package locale renders calendar dates for the locales the receipt
// printer supports. Only the "weekday, dd/mm/yyyy" long form used on
// receipts is implemented; everything else stays with time.Format.
package locale

import (
	"fmt"
	"time"
)

// Formatter renders dates for one locale.
type Formatter struct {
	weekdays [7]string
}

var weekdayNames = map[string][7]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"fr": {"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	"ar": {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

// New returns a Formatter for the given locale tag. Unknown tags fall
// back to French, the application default.
func New(tag string) *Formatter {
	names, ok := weekdayNames[tag]
	if !ok {
		names = weekdayNames["fr"]
	}

	return &Formatter{weekdays: names}
}

// Supported reports whether tag has a dedicated table.
func Supported(tag string) bool {
	_, ok := weekdayNames[tag]
	return ok
}

// LongDate renders t as "weekday, dd/mm/yyyy" in the formatter's locale.
func (f *Formatter) LongDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s, %02d/%02d/%04d", f.weekdays[t.Weekday()], t.Day(), int(t.Month()), t.Year())
}
