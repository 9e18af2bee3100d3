package render

import (
	"fmt"
	"html"
	"time"
)

// DisplayLayout is the human-readable timestamp, e.g. "Wed, Jan 01, 2025 at 13:45".
const DisplayLayout = "Mon, Jan 02, 2006 at 15:04"

// Clock converts cohost timestamps into one display timezone.
type Clock struct {
	Location *time.Location
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Parse reads an RFC 3339 timestamp (fractional seconds optional) and
// converts it to the clock's location.
func (c Clock) Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnresolvedTimestamp, s)
	}
	return t.In(c.loc()), nil
}

// Machine is the ISO 8601 form with the local offset.
func (c Clock) Machine(t time.Time) string {
	return t.In(c.loc()).Format(time.RFC3339)
}

// Display is the English 24-hour form.
func (c Clock) Display(t time.Time) string {
	return t.In(c.loc()).Format(DisplayLayout)
}

// HTML wraps both forms in a <time> element.
func (c Clock) HTML(t time.Time) string {
	return fmt.Sprintf(`<time datetime="%s">%s</time>`, html.EscapeString(c.Machine(t)), html.EscapeString(c.Display(t)))
}
