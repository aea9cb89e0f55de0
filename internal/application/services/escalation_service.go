package services

import (
	"context"
	"fmt"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/providers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/observability"
)

// AlertSender delivers an escalation message to the on-call clinician.
type AlertSender interface {
	SendText(to, body string) (string, error)
}

// EscalationService listens for completed evaluations and alerts the on-call
// clinician when a consult comes back Emergent or worse. Alerts are best
// effort: a failed send is logged, never retried into the request path.
type EscalationService struct {
	eventBus  providers.EventBus
	sender    AlertSender
	recipient string
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewEscalationService creates a new escalation service
func NewEscalationService(eventBus providers.EventBus, sender AlertSender, recipient string) *EscalationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &EscalationService{
		eventBus:  eventBus,
		sender:    sender,
		recipient: recipient,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins listening for triage completion events
func (s *EscalationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelTriageCompleted)
	if err != nil {
		return fmt.Errorf("failed to subscribe to triage completions: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Str("recipient", s.recipient).Msg("Escalation service started")
	return nil
}

// Stop stops the escalation service
func (s *EscalationService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("Escalation service stopped")
}

func (s *EscalationService) processEvents(eventChan <-chan *entities.TriageEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *EscalationService) handleEvent(event *entities.TriageEvent) {
	if event.Level > entities.LevelEmergent {
		return
	}

	logger := observability.GetLogger()

	body := fmt.Sprintf(
		"%s triage: consult %s scored %.1f (level %d, revision %d)",
		event.Level.Name(), event.ConsultID, event.TotalScore, int(event.Level), event.Revision,
	)

	messageID, err := s.sender.SendText(s.recipient, body)
	if err != nil {
		logger.Error().
			Err(err).
			Str("consult_id", event.ConsultID).
			Int("triage_level", int(event.Level)).
			Msg("Failed to send escalation alert")
		return
	}

	logger.Info().
		Str("consult_id", event.ConsultID).
		Int("triage_level", int(event.Level)).
		Str("message_id", messageID).
		Msg("Escalation alert sent")
}
