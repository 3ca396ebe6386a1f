package meeting

// Header is the fixed column layout of a main meeting table. Row 1 of
// every table holds this header; data begins at row 2.
var Header = []string{"name", "date", "time", "agenda", "detailUrl"}

// HistoryHeader is the fixed column layout of a run-history table.
var HistoryHeader = []string{"timestamp", "status", "summary", "detail"}

// Record represents a normalized committee-meeting announcement.
//
// DetailURL is the unique identity of a record within a table: no two
// rows of the same table may share one. Date is mandatory and always
// canonical YYYY-MM-DD; a record whose date could not be resolved is
// dropped by the adapter and never reaches the reconciler. Name, Time
// and Agenda may be empty when the detail page could not be fully
// parsed.
type Record struct {
	Name      string
	Date      string
	Time      string
	Agenda    string
	DetailURL string
}

// Row projects the record into its five ordered table cells.
func (r Record) Row() []string {
	return []string{r.Name, r.Date, r.Time, r.Agenda, r.DetailURL}
}

// FromRow rebuilds a record from a persisted table row. Short rows are
// padded with empty cells.
func FromRow(cells []string) Record {
	padded := make([]string, len(Header))
	copy(padded, cells)
	return Record{
		Name:      padded[0],
		Date:      padded[1],
		Time:      padded[2],
		Agenda:    padded[3],
		DetailURL: padded[4],
	}
}
