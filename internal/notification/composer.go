package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// OverstayThresholdText is quoted in the reminder body. It must track the
// sweep threshold, which is 90 minutes regardless of the reminder15 column names.
const OverstayThresholdText = "90 minutes"

// Addresses are the fixed mailboxes each notification kind is routed to.
type Addresses struct {
	Sender     string
	WifiTo     string
	AdminTo    string
	SecurityCC string
}

type Message struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	HTML    string
	Text    string
	Headers map[string]string
}

// Recipients is To and Cc together, as the SMTP envelope needs them.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return out
}

const timeLayout = "02/01/2006, 3:04:05 pm"

type detail struct {
	Label string
	Value string
}

type body struct {
	Greeting string
	Intro    template.HTML
	Details  []detail
	Closing  string
}

var bodyTmpl = template.Must(template.New("body").Parse(`<p>Hello {{.Greeting}},</p>
<p>This is an automated request from <strong>Facilo</strong>.</p>
<p>{{.Intro}}</p>
<p><b>Details:</b></p>
<ul>
{{- range .Details}}
  <li><b>{{.Label}}:</b> {{.Value}}</li>
{{- end}}
</ul>
{{- if .Closing}}
<p>{{.Closing}}</p>
{{- end}}
<p>Regards,<br/>Visitor Management System</p>
`))

// Composer renders notifications into messages. now is only used for the
// "Current Time" line of overstay reminders.
type Composer struct {
	addr Addresses
	loc  *time.Location
	now  func() time.Time
}

func NewComposer(addr Addresses, loc *time.Location) *Composer {
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{addr: addr, loc: loc, now: time.Now}
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Composer) Compose(n Notification) (Message, error) {
	s := n.Subject
	name := s.DisplayName()
	cc := nonEmpty(s.SubmittedBy)

	var (
		msg Message
		b   body
	)

	switch n.Kind {
	case KindGuestWifi:
		msg = Message{To: []string{c.addr.WifiTo}, Cc: cc, Subject: "Guest Wi-Fi Access Request"}
		b = body{
			Greeting: "Team",
			Intro:    template.HTML("Guest Wi-Fi access has been requested by <strong>" + template.HTMLEscapeString(s.SubmittedBy) + "</strong>."),
			Details:  c.contactDetails(s),
		}
		msg.Text = "Guest Wi-Fi request for " + name

	case KindAdhocWifi:
		msg = Message{
			To:      []string{c.addr.WifiTo},
			Cc:      cc,
			Subject: "Adhoc Visitor – Guest Wi-Fi Request",
			Headers: map[string]string{"Importance": "High", "X-Priority": "1"},
		}
		b = body{
			Greeting: "Team",
			Intro:    "An adhoc visitor is requesting Guest Wi-Fi access.",
			Details:  c.contactDetails(s),
		}
		msg.Text = "Adhoc Wi-Fi request for " + name

	case KindMeetingRoom:
		msg = Message{To: []string{c.addr.AdminTo}, Cc: cc, Subject: "Meeting Room Booking – Guest Request"}
		b = body{
			Greeting: "Team",
			Intro:    template.HTML("A meeting room has been requested by <strong>" + template.HTMLEscapeString(s.SubmittedBy) + "</strong>."),
			Details: []detail{
				{"Name", name},
				{"Meeting Room", orDash(s.MeetingRoom)},
				{"Purpose", orDash(s.PurposeOfVisit)},
				{"In Time", c.formatTime(s.InTime, "Not Provided")},
				{"Out Time", c.formatTime(s.OutTime, "Not Provided")},
			},
		}
		msg.Text = "Meeting room requested for " + name

	case KindRefreshment:
		msg = Message{To: []string{c.addr.AdminTo}, Cc: cc, Subject: "Refreshment Request – Guest"}
		b = body{
			Greeting: "Team",
			Intro:    template.HTML("A refreshment request has been made by <strong>" + template.HTMLEscapeString(s.SubmittedBy) + "</strong>."),
			Details: []detail{
				{"Name", name},
				{"Category", orNA(s.Category)},
				{"Proposed Time", c.formatTime(s.ProposedRefreshmentTime, "Not Provided")},
			},
		}
		msg.Text = "Refreshment requested for " + name

	case KindOverstay:
		to := strings.TrimSpace(n.To)
		if to == "" {
			return Message{}, ErrNoRecipient
		}
		outTime := c.formatTime(s.OutTime, "N/A")
		now := c.now().In(c.loc).Format(timeLayout)

		msg = Message{
			To:      []string{to},
			Cc:      nonEmpty(c.addr.SecurityCC),
			Subject: fmt.Sprintf("Overstay Alert: %s has exceeded scheduled check-out time", name),
		}
		host := s.Host
		if host == "" {
			host = "Host"
		}
		b = body{
			Greeting: host,
			Intro: template.HTML(fmt.Sprintf(
				"The %s <strong>%s</strong> has exceeded the tentative check-out time by more than <strong>%s</strong>.",
				template.HTMLEscapeString(recordLabel(s.RecordKind)), template.HTMLEscapeString(name), OverstayThresholdText,
			)),
			Details: []detail{
				{"Name", name},
				{"Category", orDash(s.Category)},
				{"Company", orDash(s.Company)},
				{"Tentative Check-out", outTime},
				{"Current Time", now},
			},
			Closing: "Please ensure that the visitor leaves the premises, or inform Security in advance if their presence needs to be extended.",
		}
		msg.Text = fmt.Sprintf("%s | Tentative out: %s | Now: %s", msg.Subject, outTime, now)

	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}

	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, b); err != nil {
		return Message{}, fmt.Errorf("render %s body: %w", n.Kind, err)
	}
	msg.From = c.addr.Sender
	msg.HTML = buf.String()
	return msg, nil
}

func (c *Composer) contactDetails(s Subject) []detail {
	return []detail{
		{"Name", s.DisplayName()},
		{"Email", orNA(s.Email)},
		{"Company", orNA(s.Company)},
		{"Check-in", c.formatTime(s.InTime, "Not Provided")},
		{"Check-out", c.formatTime(s.OutTime, "Not Provided")},
	}
}

func (c *Composer) formatTime(t *time.Time, missing string) string {
	if t == nil || t.IsZero() {
		return missing
	}
	return t.In(c.loc).Format(timeLayout)
}

func recordLabel(kind string) string {
	switch kind {
	case "adhoc":
		return "adhoc visitor"
	case "":
		return "visitor"
	default:
		return kind
	}
}

func nonEmpty(addrs ...string) []string {
	var out []string
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
