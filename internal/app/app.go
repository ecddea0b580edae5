package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/services/agent"
	"github.com/ternarybob/reperio/internal/services/extractor"
	"github.com/ternarybob/reperio/internal/services/fetcher"
	"github.com/ternarybob/reperio/internal/services/llm"
	"github.com/ternarybob/reperio/internal/services/mailer"
	"github.com/ternarybob/reperio/internal/services/places"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	LLMService     interfaces.LLMService
	FetchService   interfaces.FetchService
	ExtractService interfaces.ExtractService
	PlacesService  interfaces.PlacesService
	MailerService  *mailer.Service
	Agent          *agent.Service
}

// New builds the service graph from configuration
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	llmService, err := llm.NewService(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}

	classifier := common.NewClassifier(config)
	fetchService := fetcher.NewService(&config.Fetcher, classifier, logger)
	extractService := extractor.NewService(logger)
	structurer := llm.NewStructurer(llmService, logger)

	placesClient := places.NewClient(&config.PlacesAPI, logger)
	emailFinder := mailer.NewEmailFinder(&config.PlacesAPI, logger)
	placesService := places.NewService(&config.PlacesAPI, placesClient, emailFinder, logger)

	mailerService := mailer.NewService(&config.Mailer, llmService, logger)

	agentService := agent.NewService(
		config,
		fetchService,
		extractService,
		structurer,
		placesService,
		mailerService,
		logger,
	)

	return &App{
		Config:         config,
		Logger:         logger,
		LLMService:     llmService,
		FetchService:   fetchService,
		ExtractService: extractService,
		PlacesService:  placesService,
		MailerService:  mailerService,
		Agent:          agentService,
	}, nil
}

// Close releases held resources
func (a *App) Close() error {
	if a.LLMService != nil {
		return a.LLMService.Close()
	}
	return nil
}
