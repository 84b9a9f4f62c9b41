package transitionlog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the DD/MM/YYYY HH:MM:SS layout used in log lines.
const TimestampLayout = "02/01/2006 15:04:05"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatLine renders one transition record without the trailing line terminator.
// Line breaks in the title are replaced by spaces so a record always fits one line.
func FormatLine(at time.Time, ticketID int, title, statusName string) string {
	return fmt.Sprintf("%s | Chamado #%d - '%s' Filtro: %s",
		at.Local().Format(TimestampLayout), ticketID, lineBreaks.Replace(title), statusName)
}

// Entry is a parsed log line.
type Entry struct {
	At       time.Time
	TicketID int
	Title    string
	Status   string
}

var linePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}) \| Chamado #(-?\d+) - '(.*)' Filtro: (\S+)$`)

// ParseLine parses a line produced by FormatLine. Timestamps are read in local time.
func ParseLine(line string) (Entry, error) {
	m := linePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return Entry{}, fmt.Errorf("malformed transition line %q", line)
	}
	at, err := time.ParseInLocation(TimestampLayout, m[1], time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("parse timestamp: %w", err)
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return Entry{}, fmt.Errorf("parse ticket id: %w", err)
	}
	return Entry{At: at, TicketID: id, Title: m[3], Status: m[4]}, nil
}
