package shell

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"go-fraud-console/internal/models"
	"go-fraud-console/pkg/utils"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in notes is escaped because WithUnsafe is not set.
var noteRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderNote converts a note body from Markdown to sanitised HTML.
func RenderNote(body string) template.HTML {
	var buf bytes.Buffer
	if err := noteRenderer.Convert([]byte(body), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(body))
	}
	return template.HTML(buf.String())
}

var statusClasses = map[models.ReportStatus]string{
	models.StatusNew:        "badge-yellow",
	models.StatusInProgress: "badge-blue",
	models.StatusEscalated:  "badge-red",
	models.StatusResolved:   "badge-green",
	models.StatusClosed:     "badge-gray",
}

var priorityClasses = map[models.ReportPriority]string{
	models.PriorityLow:      "badge-gray",
	models.PriorityMedium:   "badge-blue",
	models.PriorityHigh:     "badge-orange",
	models.PriorityCritical: "badge-red",
}

func StatusClass(s models.ReportStatus) string {
	if class, ok := statusClasses[s]; ok {
		return class
	}
	return "badge-gray"
}

func PriorityClass(p models.ReportPriority) string {
	if class, ok := priorityClasses[p]; ok {
		return class
	}
	return "badge-gray"
}

// Funcs is the template function map installed on the view engine.
func Funcs() map[string]interface{} {
	return map[string]interface{}{
		"inr":           utils.FormatINR,
		"count":         utils.FormatCount,
		"percent":       utils.Percent,
		"date":          func(t models.Timestamp) string { return utils.FormatTime(t.Time, utils.DateLayout) },
		"datetime":      func(t models.Timestamp) string { return utils.FormatTime(t.Time, utils.DateTimeLayout) },
		"longdate":      func(t models.Timestamp) string { return utils.FormatTime(t.Time, utils.LongLayout) },
		"stamp":         func(t models.Timestamp) string { return utils.FormatTime(t.Time, utils.StampLayout) },
		"clock":         func(t time.Time) string { return utils.FormatTime(t, "15:04:05") },
		"markdown":      RenderNote,
		"statusClass":   StatusClass,
		"priorityClass": PriorityClass,
		"upper":         strings.ToUpper,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
	}
}
