package journal

import (
	"bytes"
	"os"
	"text/template"
	"time"
)

// SessionReport is the data behind the Org summary of one session.
type SessionReport struct {
	Session SessionRecord
	Trades  []TradeRecord
	Symbols []string
	Notes   []string
}

var sessionOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"dir": direction,
}

var sessionOrgTmpl = template.Must(template.New("session").Funcs(sessionOrgFuncs).Parse(SessionOrgTemplate))

// FormatSessionOrg renders the session summary as an Org-mode block.
func FormatSessionOrg(r SessionReport) (string, error) {
	buf := new(bytes.Buffer)
	if err := sessionOrgTmpl.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteSessionOrg renders the summary into path.
func WriteSessionOrg(path string, r SessionReport) error {
	s, err := FormatSessionOrg(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const SessionOrgTemplate = `
* SESSION: {{if .Session.Date}}{{.Session.Date}}{{else}}(date?){{end}}
:PROPERTIES:
:SESSION_ID:  {{.Session.SessionID}}
:SOURCE:      {{if .Session.Source}}{{.Session.Source}}{{else}}(upload){{end}}
:FILLS:       {{.Session.Fills}}
:TRADES:      {{.Session.Trades}}
:WINS:        {{.Session.Wins}}
:LOSSES:      {{.Session.Losses}}
:WIN_RATE:    {{printf "%.2f" .Session.WinRate}}
:GROSS_PL:    {{printf "%.2f" .Session.GrossPL}}
:COMMISSIONS: {{printf "%.2f" .Session.Commissions}}
:NET_PL:      {{printf "%.2f" .Session.NetPL}}
:CREATED:     [{{(orTime .Session.Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Gross P/L:        *{{printf "%.2f" .Session.GrossPL}}*
- Net P/L:          *{{printf "%.2f" .Session.NetPL}}*
- Win Rate:         *{{printf "%.2f" .Session.WinRate}}%*
- Avg Winner:       *{{printf "%.2f" .Session.AvgWinner}}*
- Avg Loser:        *{{printf "%.2f" .Session.AvgLoser}}*
{{- if .Symbols }}
- Symbols:          {{range $i, $s := .Symbols}}{{if $i}}, {{end}}{{$s}}{{end}}
{{- end }}

** Trades
| # | Symbol | Dir | Qty | Entry | Exit | P/L |
|---+--------+-----+-----+-------+------+-----|
{{- range .Trades }}
| {{.Seq}} | {{.Symbol}} | {{dir .Side}} | {{.Quantity}} | {{printf "%.2f" .EntryPrice}} | {{printf "%.2f" .ExitPrice}} | {{printf "%.2f" .RealizedPL}} |
{{- end }}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Session.Wins}} |
| Losses  | {{.Session.Losses}} |
| Total   | {{.Session.Trades}} |

{{- if .Notes }}
** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
