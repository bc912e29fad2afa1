package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

var reservation = template.Must(template.ParseFS(files, "reservation.html"))

// RenderReservation renders the reservation email body for data.
func RenderReservation(data any) (string, error) {
	var buf bytes.Buffer

	if err := reservation.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render reservation template: %w", err)
	}

	return buf.String(), nil
}
