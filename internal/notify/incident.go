// Package notify delivers best-effort operator notifications for
// incident reports. Failures are logged, never surfaced to API callers.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"vehicle-access-control/internal/email"
	"vehicle-access-control/internal/storage"
)

type Notifier struct {
	client     *email.Client
	recipients []string
	timeout    time.Duration
}

func NewNotifier(client *email.Client, recipients []string) *Notifier {
	return &Notifier{
		client:     client,
		recipients: recipients,
		timeout:    30 * time.Second,
	}
}

// Enabled reports whether notifications are configured at all.
func (n *Notifier) Enabled() bool {
	return n != nil && n.client != nil && len(n.recipients) > 0
}

// IncidentReported sends an incident summary to the configured
// recipients in the background. The caller's request does not wait on
// SMTP delivery.
func (n *Notifier) IncidentReported(incident *storage.IncidentReport) {
	if !n.Enabled() {
		return
	}

	// Copy what the message needs, the caller may reuse the struct.
	report := *incident

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		msg := &email.Message{
			To:      n.recipients,
			Subject: fmt.Sprintf("Incident report #%d", report.IncidentID),
			HTML:    incidentHTML(&report),
		}

		if err := n.client.Send(ctx, msg); err != nil {
			slog.Error("Failed to send incident notification", "incident_id", report.IncidentID, "error", err)
			return
		}
		slog.Info("Incident notification sent", "incident_id", report.IncidentID, "recipients", len(n.recipients))
	}()
}

func incidentHTML(report *storage.IncidentReport) string {
	var b strings.Builder

	when := ""
	if report.IncidentTime != nil {
		when = report.IncidentTime.Time.Format("2006-01-02 15:04:05")
	}

	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>Incident report #%d</h2>", report.IncidentID))
	b.WriteString("<table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>",
			html.EscapeString(label), html.EscapeString(value)))
	}
	row("Time", when)
	row("Description", report.Description)
	if report.SecurityStaffID != nil {
		row("Reported by staff", fmt.Sprintf("%d", *report.SecurityStaffID))
	}
	if report.VehicleID != nil {
		row("Vehicle", fmt.Sprintf("%d", *report.VehicleID))
	}
	if report.GateID != nil {
		row("Gate", fmt.Sprintf("%d", *report.GateID))
	}
	b.WriteString("</table>")
	b.WriteString("</body></html>")

	return b.String()
}
