package signup

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/valyala/bytebufferpool"
)

// ExportHeader is the fixed column set of the signup CSV.
var ExportHeader = []string{
	"id",
	"created_at",
	"team_name",
	"division",
	"captain_name",
	"captain_adl_number",
	"captain_email",
	"captain_phone_number",
	"captain_paid_nda",
	"teammate_name",
	"teammate_adl_number",
	"teammate_email",
	"teammate_phone_number",
	"teammate_paid_nda",
	"home_location_1",
	"home_location_2",
	"play_preference",
	"total_fees_due",
	"payment_method",
	"confirmed_paid",
}

// ExportCSV renders rows as CSV: header first, lines joined by "\n" with no
// trailing newline.
func ExportCSV(rows []Signup) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeCSVLine(buf, ExportHeader)
	for _, row := range rows {
		_ = buf.WriteByte('\n')
		writeCSVLine(buf, exportRecord(row))
	}
	return append([]byte(nil), buf.B...)
}

// ExportFilename is "<league>-signups-<YYYY-MM-DD>.csv".
func ExportFilename(leagueName string, now time.Time) string {
	if leagueName == "" {
		leagueName = "league"
	}
	return leagueName + "-signups-" + now.UTC().Format("2006-01-02") + ".csv"
}

// EscapeCSV quotes a value holding a comma, quote or newline and doubles
// any inner quotes.
func EscapeCSV(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func writeCSVLine(buf *bytebufferpool.ByteBuffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.WriteString(EscapeCSV(field))
	}
}

func exportRecord(s Signup) []string {
	return []string{
		s.ID,
		s.CreatedAt.UTC().Format(time.RFC3339Nano),
		s.TeamName,
		exportDivision(s.Division),
		s.CaptainName,
		s.CaptainADL,
		s.CaptainEmail,
		s.CaptainPhone,
		strconv.FormatBool(s.CaptainPaidNDA),
		s.TeammateName,
		s.TeammateADL,
		s.TeammateEmail,
		s.TeammatePhone,
		strconv.FormatBool(s.TeammatePaidNDA),
		s.HomeLocation1,
		s.HomeLocation2,
		s.PlayPreference,
		strconv.FormatFloat(s.TotalFeesDue, 'f', -1, 64),
		s.PaymentMethod,
		strconv.FormatBool(s.ConfirmedPaid),
	}
}

func exportDivision(d *league.Division) string {
	if d == nil {
		return "(unknown)"
	}
	return d.Name + " - " + d.DayOfWeek + " " + league.FormatTime12h(d.StartTime)
}
