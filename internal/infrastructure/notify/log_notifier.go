package notify

import (
	"context"
	"log"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"
)

// LogNotifier is the default IClientNotifier: it logs the portal link that
// a mail transport would deliver. Environments with a real mail provider
// swap in their own implementation at wiring time.

type LogNotifier struct {
	portalBaseURL string
}

var _ interfaces.IClientNotifier = (*LogNotifier)(nil)

func NewLogNotifier(portalBaseURL string) *LogNotifier {
	if portalBaseURL == "" {
		portalBaseURL = "http://localhost:8080/portal/estimates"
	}
	return &LogNotifier{portalBaseURL: portalBaseURL}
}

func (n *LogNotifier) SendEstimateToClient(ctx context.Context, e entities.Estimate, email string) error {
	log.Printf("[notify][client] estimate sent estimate_id=%s email=%s link=%s/%s", e.ID, email, n.portalBaseURL, e.ID)
	return nil
}
