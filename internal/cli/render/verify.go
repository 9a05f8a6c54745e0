package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// VerifyRenderer renders verification outcomes.
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// RenderVerification prints the terminal verification state of a record.
func (r *VerifyRenderer) RenderVerification(d *models.Deployment) error {
	if d == nil || d.Verification == nil {
		return nil
	}

	v := d.Verification
	statusColor(v.Status).Fprintf(r.out, "%s: %s on %s\n", statusLabel(v.Status), d.ContractName, d.Network)

	switch v.Status {
	case models.VerificationStatusVerified:
		fmt.Fprintf(r.out, "  %s\n", v.ExplorerURL)
	case models.VerificationStatusFailed:
		fmt.Fprintf(r.out, "  Reason: %s\n", v.FailureReason)
	case models.VerificationStatusTimeout:
		fmt.Fprintf(r.out, "  The explorer did not reach a decision; check %s later\n", v.ExplorerURL)
	}
	return nil
}
