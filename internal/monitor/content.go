package monitor

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"svcmon/internal/dispatch"
)

type composeInput struct {
	Status      string
	Up          bool
	Recovery    bool
	Correlation string
	At          time.Time
}

// compose builds the alert subject plus plain and HTML bodies, pulling in
// enrichment data. Enrichment failures surface as placeholder values; they
// never block composition.
func (m *Monitor) compose(ctx context.Context, opts Options, in composeInput) dispatch.Content {
	stats := m.enricher.Stats(ctx)
	logs := m.enricher.RecentLogs(ctx, opts.Service, opts.LogLines)

	alertType := "FAILURE"
	subject := fmt.Sprintf("[ALERT] %s service down on %s", opts.Service, m.hostname)
	if in.Recovery {
		alertType = "RECOVERY"
		subject = fmt.Sprintf("[RECOVERY] %s service restored on %s", opts.Service, m.hostname)
	}

	timestamp := in.At.Format("2006-01-02 15:04:05")

	text := strings.Join([]string{
		fmt.Sprintf("%s ALERT: %s Service Monitoring", alertType, opts.Service),
		"",
		"Timestamp: " + timestamp,
		"Hostname: " + m.hostname,
		"Service: " + opts.Service,
		"Status: " + in.Status,
		"",
		"System Statistics:",
		"- CPU Usage: " + stats["cpu_usage"] + "%",
		"- Memory Usage: " + stats["memory_usage"] + "%",
		"- Disk Usage: " + stats["disk_usage"],
		"",
		"Recent Service Logs:",
		logs,
		"",
		"---",
		versionLine(opts.Version),
	}, "\n")

	var html strings.Builder
	_ = htmlBody.Execute(&html, htmlData{
		AlertType:   alertType,
		AlertColor:  alertColor(in.Recovery),
		Service:     opts.Service,
		Hostname:    m.hostname,
		Timestamp:   timestamp,
		Status:      in.Status,
		CPUUsage:    stats["cpu_usage"],
		MemoryUsage: stats["memory_usage"],
		DiskUsage:   stats["disk_usage"],
		Logs:        logs,
		Footer:      versionLine(opts.Version),
	})

	return dispatch.Content{
		Subject:     subject,
		TextBody:    text,
		HTMLBody:    html.String(),
		Service:     opts.Service,
		Hostname:    m.hostname,
		Status:      in.Status,
		IsActive:    in.Up,
		Recovery:    in.Recovery,
		Correlation: in.Correlation,
		At:          in.At,
	}
}

func alertColor(recovery bool) string {
	if recovery {
		return "#28a745"
	}
	return "#dc3545"
}

type htmlData struct {
	AlertType   string
	AlertColor  string
	Service     string
	Hostname    string
	Timestamp   string
	Status      string
	CPUUsage    string
	MemoryUsage string
	DiskUsage   string
	Logs        string
	Footer      string
}

var htmlBody = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; color: #333; }
        .header { background-color: {{.AlertColor}}; color: white; padding: 20px; }
        .content { padding: 20px; }
        .stats { background-color: #f8f9fa; padding: 15px; margin: 10px 0; }
        .logs { background-color: #f1f1f1; padding: 15px; margin: 10px 0;
                font-family: monospace; font-size: 12px; overflow-x: auto; }
        .footer { color: #666; font-size: 12px; padding: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>{{.AlertType}} ALERT: {{.Service}} Service</h2>
    </div>
    <div class="content">
        <p><strong>Timestamp:</strong> {{.Timestamp}}</p>
        <p><strong>Hostname:</strong> {{.Hostname}}</p>
        <p><strong>Service:</strong> {{.Service}}</p>
        <p><strong>Status:</strong> <code>{{.Status}}</code></p>

        <div class="stats">
            <h3>System Statistics</h3>
            <ul>
                <li>CPU Usage: {{.CPUUsage}}%</li>
                <li>Memory Usage: {{.MemoryUsage}}%</li>
                <li>Disk Usage: {{.DiskUsage}}</li>
            </ul>
        </div>

        <div class="logs">
            <h3>Recent Service Logs</h3>
            <pre>{{.Logs}}</pre>
        </div>
    </div>
    <div class="footer">
        <p>{{.Footer}}</p>
    </div>
</body>
</html>
`))
