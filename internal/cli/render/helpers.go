package render

import (
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trebuchet-org/katapult/internal/domain/models"
)

var titleCaser = cases.Title(language.English)

// statusColor maps a verification status to its display color.
func statusColor(status models.VerificationStatus) *color.Color {
	switch status {
	case models.VerificationStatusVerified:
		return color.New(color.FgGreen)
	case models.VerificationStatusFailed:
		return color.New(color.FgRed)
	case models.VerificationStatusTimeout:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

// statusLabel renders a status as a title-cased label, e.g. "Verified".
func statusLabel(status models.VerificationStatus) string {
	return titleCaser.String(string(status))
}

// verificationLabel renders the verification cell for a deployment row.
func verificationLabel(d *models.Deployment) string {
	if d.Verification == nil {
		return "-"
	}
	return statusLabel(d.Verification.Status)
}
