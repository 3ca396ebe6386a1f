package source

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/VOST-dev/committee-scheduler/internal/fetch"
	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// detailFields carries the parsed detail-page fields along with the
// names of the fields that could not be resolved, so partial parses are
// explicit instead of signalled by empty strings alone.
type detailFields struct {
	date       string
	timeText   string
	agenda     string
	unresolved []string
}

func (d *detailFields) miss(fields ...string) {
	d.unresolved = append(d.unresolved, fields...)
}

// fetchDetail retrieves one meeting's detail page and assembles the
// final record. ok is false when the meeting has no resolvable date;
// such a record is not publishable and must be dropped. All other
// detail failures degrade into empty fields on the record.
func fetchDetail(ctx context.Context, client *fetch.Client, sourceName, name, detailURL string) (meeting.Record, bool) {
	fields := parseDetailPage(ctx, client, sourceName, detailURL)

	if len(fields.unresolved) > 0 {
		logger.Warn("detail page partially parsed", logger.Fields{
			"source":     sourceName,
			"url":        detailURL,
			"unresolved": strings.Join(fields.unresolved, ","),
		})
	}
	if fields.date == "" {
		logger.Warn("dropping meeting without resolvable date", logger.Fields{
			"source": sourceName,
			"url":    detailURL,
		})
		return meeting.Record{}, false
	}

	return meeting.Record{
		Name:      name,
		Date:      fields.date,
		Time:      fields.timeText,
		Agenda:    fields.agenda,
		DetailURL: detailURL,
	}, true
}

// parseDetailPage fetches and parses a detail page. Fetch and parse
// failures are absorbed here; they surface only through the unresolved
// field list.
func parseDetailPage(ctx context.Context, client *fetch.Client, sourceName, detailURL string) detailFields {
	var fields detailFields

	body, err := client.Get(ctx, detailURL)
	if err != nil {
		logger.Warn("fetching detail page failed", logger.Fields{
			"source": sourceName,
			"url":    detailURL,
			"error":  err.Error(),
		})
		fields.miss("date", "time", "agenda")
		return fields
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		logger.Warn("parsing detail page failed", logger.Fields{
			"source": sourceName,
			"url":    detailURL,
			"error":  err.Error(),
		})
		fields.miss("date", "time", "agenda")
		return fields
	}

	// 開催日時 row of a dt/dd or th/td layout carries the authoritative
	// date and time.
	dateText := findLabeledText(doc, "日時")
	if dateText == "" {
		fields.miss("date", "time")
	} else {
		date, timeText, ok := meeting.ParseDateTime(dateText)
		if !ok {
			fields.miss("date")
		}
		fields.date = date
		fields.timeText = timeText
	}

	fields.agenda = extractAgenda(doc)
	if fields.agenda == "" {
		fields.miss("agenda")
	}

	return fields
}

// findLabeledText returns the value cell paired with the first dt/th
// element whose label contains substr.
func findLabeledText(doc *goquery.Document, substr string) string {
	var out string
	doc.Find("dt, th").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), substr) {
			return true
		}
		out = strings.TrimSpace(labeledValue(sel).Text())
		return false
	})
	return out
}

// extractAgenda collects agenda items from the 議題/案件 section,
// newline-joined. A section without list items falls back to its plain
// text; a page without the section yields an empty agenda.
func extractAgenda(doc *goquery.Document) string {
	var items []string
	doc.Find("dt, th").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := sel.Text()
		if !strings.Contains(label, "議題") && !strings.Contains(label, "案件") {
			return true
		}

		value := labeledValue(sel)
		value.Find("li").Each(func(_ int, li *goquery.Selection) {
			if s := strings.TrimSpace(li.Text()); s != "" {
				items = append(items, s)
			}
		})
		if len(items) == 0 {
			if s := strings.TrimSpace(value.Text()); s != "" {
				items = append(items, s)
			}
		}
		return false
	})
	return strings.Join(items, "\n")
}

// labeledValue returns the value element paired with a dt or th label.
func labeledValue(label *goquery.Selection) *goquery.Selection {
	if goquery.NodeName(label) == "dt" {
		return label.NextFiltered("dd")
	}
	return label.Parent().Find("td").First()
}
