package exchange

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
)

// CalendarGenerator renders the birthdays of an address book as an iCalendar feed.
type CalendarGenerator struct {
	Clock book.Clock // Interface for time mocking.

	// Reminder is an ISO 8601 duration (e.g. "-P1D") used as alarm trigger. Empty disables alarms.
	Reminder string
}

// Generate returns the ICS data and the number of birthday events it contains.
// Each contact with a birthday gets one all-day event recurring yearly from the birth date.
func (g *CalendarGenerator) Generate(ctx context.Context, b *book.AddressBook) ([]byte, int, error) {
	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, r := range b.Records() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		event := g.createEvent(r.Name().String(), bday)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	count := len(cal.Children)

	// An empty VCALENDAR cannot be encoded; serve a valid stub instead.
	if count == 0 {
		g.logSuccess(b.Len(), 0)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(b.Len(), count)
	return buf.Bytes(), count, nil
}

// createEvent builds the yearly all-day event of one contact.
func (g *CalendarGenerator) createEvent(name string, bday book.Birthday) *ical.Event {
	// Deterministic UID generation for stability across exports
	input := fmt.Sprintf(config.FormatHashInput, name, bday.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uid := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, name)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(bday.Date())
	event.Props.Set(dtStartProp)

	// Set the rule manually to avoid a "VALUE=TEXT" param
	rruleProp := ical.NewProp(config.PropRRule)
	rruleProp.Value = config.ICalYearly
	event.Props.Set(rruleProp)

	if g.Reminder != "" {
		addAlarm(event, g.Reminder, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (g *CalendarGenerator) logSuccess(total, found int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompExchange,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyFound, found),
		),
	)
}
