package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const icsTimeLayout = "20060102T150405"

// Event is one weekly recurring calendar entry. It carries exactly the
// fields that survive an export/import round trip.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	RepeatDay   string // two-letter BYDAY code: SU, MO, TU, WE, TH
	Until       time.Time
}

// ICSCodec renders events to iCalendar text and parses that text back.
type ICSCodec struct{}

// NewICSCodec builds an ICS codec.
func NewICSCodec() *ICSCodec {
	return &ICSCodec{}
}

// Render generates an iCalendar document with one VEVENT per event, each
// repeating weekly until its Until date.
func (c *ICSCodec) Render(events []Event, calendarName string) []byte {
	buf := &bytes.Buffer{}
	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:-//course-planner//EN")
	if calendarName != "" {
		writeLine(buf, "X-WR-CALNAME:"+escapeText(calendarName))
	}
	for _, ev := range events {
		writeLine(buf, "BEGIN:VEVENT")
		writeLine(buf, "UID:"+ev.UID)
		writeLine(buf, "SUMMARY:"+escapeText(ev.Summary))
		if ev.Description != "" {
			writeLine(buf, "DESCRIPTION:"+escapeText(ev.Description))
		}
		if ev.Location != "" {
			writeLine(buf, "LOCATION:"+escapeText(ev.Location))
		}
		writeLine(buf, "DTSTART:"+ev.Start.Format(icsTimeLayout))
		writeLine(buf, "DTEND:"+ev.End.Format(icsTimeLayout))
		if ev.RepeatDay != "" && !ev.Until.IsZero() {
			writeLine(buf, fmt.Sprintf("RRULE:FREQ=WEEKLY;BYDAY=%s;UNTIL=%sZ", ev.RepeatDay, ev.Until.Format(icsTimeLayout)))
		}
		writeLine(buf, "END:VEVENT")
	}
	writeLine(buf, "END:VCALENDAR")
	return buf.Bytes()
}

// Parse reads iCalendar text and reconstructs the event records. Lines
// folded with a leading space or tab are unfolded before processing;
// property parameters after a semicolon are ignored.
func (c *ICSCodec) Parse(r io.Reader) ([]Event, error) {
	var events []Event
	var current *Event

	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}

	for _, line := range lines {
		colon := strings.Index(line, ":")
		if colon == -1 {
			continue
		}
		field := line[:colon]
		value := line[colon+1:]
		if semi := strings.Index(field, ";"); semi != -1 {
			field = field[:semi]
		}

		switch field {
		case "BEGIN":
			if value == "VEVENT" {
				current = &Event{}
			}
		case "END":
			if value == "VEVENT" && current != nil {
				events = append(events, *current)
				current = nil
			}
		case "UID":
			if current != nil {
				current.UID = value
			}
		case "SUMMARY":
			if current != nil {
				current.Summary = unescapeText(value)
			}
		case "DESCRIPTION":
			if current != nil {
				current.Description = unescapeText(value)
			}
		case "LOCATION":
			if current != nil {
				current.Location = unescapeText(value)
			}
		case "DTSTART":
			if current != nil {
				if ts, err := time.Parse(icsTimeLayout, value); err == nil {
					current.Start = ts
				}
			}
		case "DTEND":
			if current != nil {
				if ts, err := time.Parse(icsTimeLayout, value); err == nil {
					current.End = ts
				}
			}
		case "RRULE":
			if current != nil {
				parseRule(current, value)
			}
		}
	}

	return events, nil
}

func parseRule(ev *Event, raw string) {
	for _, part := range strings.Split(raw, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "BYDAY":
			ev.RepeatDay = kv[1]
		case "UNTIL":
			value := strings.TrimSuffix(kv[1], "Z")
			if ts, err := time.Parse(icsTimeLayout, value); err == nil {
				ev.Until = ts
			}
		}
	}
}

// writeLine emits one content line with CRLF, folding at 75 octets as
// RFC 5545 requires. Continuation lines carry a leading space inside
// the 75-octet limit, and folds never land inside a multi-byte rune.
func writeLine(buf *bytes.Buffer, line string) {
	const limit = 75
	budget := limit
	for len(line) > budget {
		cut := budget
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		budget = limit - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// unescapeText consumes one escape sequence at a time so a literal
// backslash followed by an n survives the round trip.
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case '\\', ';', ',':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
