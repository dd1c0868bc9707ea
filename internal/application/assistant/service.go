// Package assistant answers free-form warranty questions, preferring the
// generative model and falling back to the rule-based responder.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/intelligence/responder"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/intelligence/servicedir"
	"github.com/turtacn/warrify/pkg/errors"
)

// Apology is returned when the model answers with no text.
const Apology = "I apologize, I could not process your request. Please try again."

const (
	SourceGemini   = "gemini"
	SourceFallback = "fallback"
)

// Completer is a text generation backend. *gemini.Client satisfies it.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

type Caller struct {
	ID    int64
	Name  string
	Email string
}

type Reply struct {
	Response string `json:"response"`
	Source   string `json:"-"`
}

type Service interface {
	Chat(ctx context.Context, caller Caller, message string) (*Reply, error)
}

type Deps struct {
	Products  warranty.ProductRepository
	Completer Completer
	Directory *servicedir.Directory
	Clock     risk.Clock
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger
}

type serviceImpl struct {
	products  warranty.ProductRepository
	completer Completer
	directory *servicedir.Directory
	fallback  *responder.Responder
	clock     risk.Clock
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

func NewService(d Deps) Service {
	if d.Directory == nil {
		d.Directory = servicedir.Default()
	}
	if d.Clock == nil {
		d.Clock = risk.SystemClock{}
	}
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		products:  d.Products,
		completer: d.Completer,
		directory: d.Directory,
		fallback:  responder.New(d.Directory),
		clock:     d.Clock,
		metrics:   d.Metrics,
		logger:    d.Logger.Named("assistant"),
	}
}

func (s *serviceImpl) Chat(ctx context.Context, caller Caller, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.InvalidParam("Message is required")
	}

	products, err := s.products.ListAll(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "Assistant service unavailable")
	}
	today := s.clock.Today()

	if s.completer == nil || !s.completer.Configured() {
		return s.answerLocally(message, products, caller, today), nil
	}

	start := time.Now()
	prompt := responder.Message(
		responder.SystemPrompt(responder.PromptUser{Name: caller.Name, Email: caller.Email}, products, s.directory.Brands(), today),
		message,
	)
	text, err := s.completer.Complete(ctx, prompt)
	switch {
	case err == nil:
	case errors.IsCode(err, errors.ErrCodeAIEmpty):
		text = Apology
	default:
		s.logger.Warn("generative assistant failed, using fallback",
			logging.Int64("user_id", caller.ID), logging.Err(err))
		return s.answerLocally(message, products, caller, today), nil
	}
	prometheus.RecordAssistant(s.metrics, SourceGemini, time.Since(start))
	return &Reply{Response: text, Source: SourceGemini}, nil
}

func (s *serviceImpl) answerLocally(message string, products []*warranty.Product, caller Caller, today warranty.Date) *Reply {
	start := time.Now()
	text := s.fallback.Respond(message, products, caller.Name, today)
	prometheus.RecordAssistant(s.metrics, SourceFallback, time.Since(start))
	return &Reply{Response: text, Source: SourceFallback}
}
