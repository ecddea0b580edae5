package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// Service drafts reservation inquiry emails for restaurants. With a
// language model available the draft is generated; otherwise a fixed
// template is filled in. Drafting never fails.
type Service struct {
	config  *common.MailerConfig
	logger  arbor.ILogger
	service interfaces.LLMService
}

// NewService creates a mailer. A nil LLM service is valid and forces
// the template path.
func NewService(config *common.MailerConfig, llmService interfaces.LLMService, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		logger:  logger,
		service: llmService,
	}
}

// DraftBookingEmail produces a reservation inquiry for one restaurant
func (s *Service) DraftBookingEmail(ctx context.Context, event *models.EventRecord, restaurant *models.RestaurantRecord, partySize int) models.DraftEmail {
	if partySize <= 0 {
		partySize = s.config.PartySize
	}

	content := ""
	generated := false

	if s.service != nil {
		response, err := s.service.Chat(ctx, []interfaces.Message{
			{Role: "user", Content: s.buildPrompt(event, restaurant, partySize)},
		})
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("restaurant", restaurant.Name).
				Msg("AI email drafting failed - using template")
		} else {
			content = response
			generated = true
		}
	}

	if content == "" {
		content = s.buildTemplate(event, restaurant, partySize)
	}

	subject, body := splitSubject(content, restaurant.Name)

	return models.DraftEmail{
		Restaurant: restaurant.Name,
		To:         restaurant.Email,
		Subject:    subject,
		Body:       body,
		Generated:  generated,
	}
}

// buildPrompt assembles the drafting prompt for the language model
func (s *Service) buildPrompt(event *models.EventRecord, restaurant *models.RestaurantRecord, partySize int) string {
	address := restaurant.FullAddress
	if address == "" {
		address = orTBD(restaurant.Address)
	}

	return fmt.Sprintf(`Draft a professional and polite email to book a table at a restaurant for an event.

Event Information:
- Event: %s
- Date: %s
- Time: %s - %s
- Location: %s

Restaurant Information:
- Name: %s
- Address: %s

Booking Details:
- Party size: %d people
- Preferred time: Based on event schedule

Please create an email with:
1. Professional subject line
2. Polite greeting
3. Brief explanation of the event
4. Specific booking request with preferred time
5. Contact information request
6. Professional closing

Format as a complete email with Subject, Dear [Restaurant Name] Team, body, and signature.`,
		orDefault(event.Title, "Event"),
		orTBD(models.Deref(event.Date)),
		orTBD(models.Deref(event.StartTime)),
		orTBD(models.Deref(event.EndTime)),
		orTBD(models.Deref(event.VenueName)),
		restaurant.Name,
		address,
		partySize,
	)
}

// buildTemplate fills the deterministic fallback template
func (s *Service) buildTemplate(event *models.EventRecord, restaurant *models.RestaurantRecord, partySize int) string {
	sender := s.config.SenderName
	if sender == "" {
		sender = "[Your Name]"
	}

	subject := fmt.Sprintf("Table Reservation Request for %d - %s", partySize, orTBD(models.Deref(event.Date)))

	return fmt.Sprintf(`Subject: %s

Dear %s Team,

I hope this email finds you well. I am writing to inquire about making a reservation at your restaurant.

Event Details:
- Event: %s
- Date: %s
- Event Time: %s - %s
- Event Location: %s

Reservation Request:
- Party size: %d people
- Preferred dining time: [Please suggest based on event schedule]
- Date: %s

We are attending the above event and would love to dine at your establishment. Could you please let me know if you have availability and what times would work best?

Please feel free to contact me at your earliest convenience to confirm the reservation details.

Thank you for your time and consideration.

Best regards,
%s
[Your Phone Number]
[Your Email Address]
`,
		subject,
		orDefault(models.Str(restaurant.Name), "Restaurant"),
		orDefault(event.Title, "Special Event"),
		orTBD(models.Deref(event.Date)),
		orTBD(models.Deref(event.StartTime)),
		orTBD(models.Deref(event.EndTime)),
		orTBD(models.Deref(event.VenueName)),
		partySize,
		orTBD(models.Deref(event.Date)),
		sender,
	)
}

// splitSubject separates the "Subject:" line from the body. Content
// without one gets a generic subject and keeps the full text as body.
func splitSubject(content, restaurantName string) (string, string) {
	lines := strings.Split(content, "\n")
	subject := ""
	var bodyLines []string
	subjectFound := false

	for _, line := range lines {
		if !subjectFound && strings.HasPrefix(line, "Subject:") {
			subject = strings.TrimSpace(strings.TrimPrefix(line, "Subject:"))
			subjectFound = true
			continue
		}
		if subjectFound {
			bodyLines = append(bodyLines, line)
		}
	}

	if !subjectFound {
		name := restaurantName
		if name == "" {
			name = "Restaurant"
		}
		return fmt.Sprintf("Table Reservation Request - %s", name), strings.TrimSpace(content)
	}

	return subject, strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}

func orDefault(s *string, fallback string) string {
	if v := models.Deref(s); v != "" {
		return v
	}
	return fallback
}
