package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"github.com/Vovarama1992/gold-assistant/internal/intent"
)

// hitTimeout bounds each hit log write.
const hitTimeout = 2 * time.Second

type service struct {
	repo    Repo
	guard   Guard
	matcher Matcher
	welcome string
	log     zerolog.Logger
	now     func() time.Time

	hitTimeout time.Duration
}

// NewService wires the dispatcher. repo may be nil, in which case hits are
// not recorded.
func NewService(repo Repo, guard Guard, matcher Matcher, welcome string, log zerolog.Logger) Service {
	return &service{
		repo:    repo,
		guard:   guard,
		matcher: matcher,
		welcome: welcome,
		log:     log,
		now:     time.Now,

		hitTimeout: hitTimeout,
	}
}

// Reply answers one utterance. History is accepted for the client's benefit
// but does not influence which response is chosen.
func (s *service) Reply(ctx context.Context, req Request) (Reply, error) {
	if req.Message == "" {
		return Reply{}, ErrInvalidInput
	}

	log := s.logger(ctx)
	log.Debug().
		Int("history_len", len(req.History)).
		Int("message_len", len(req.Message)).
		Msg("[svc] incoming message")

	normalized := intent.Normalize(req.Message)

	if refusal, blocked := s.guard.Refuse(normalized); blocked {
		reply := Reply{Response: refusal, Intent: intent.OffTopic, OffTopic: true}
		s.record(ctx, reply, len(req.History))
		return reply, nil
	}

	res, err := s.match(req.Message)
	if err != nil {
		log.Error().Err(err).Msg("[svc] matcher failed")
		return Reply{}, ErrInternal
	}

	reply := Reply{Response: res.Text, Intent: res.Intent}
	s.record(ctx, reply, len(req.History))

	log.Info().Str("intent", string(reply.Intent)).Msg("[svc] replied")
	return reply, nil
}

func (s *service) Welcome() string {
	return s.welcome
}

func (s *service) Stats(ctx context.Context) ([]IntentCount, error) {
	if s.repo == nil {
		return nil, ErrNoHitLog
	}
	return s.repo.Stats(ctx)
}

// match runs the matcher and turns a panic into an error.
func (s *service) match(utterance string) (res intent.Result, err error) {
	var pc panics.Catcher
	pc.Try(func() {
		res, err = s.matcher.Match(utterance)
	})
	if r := pc.Recovered(); r != nil {
		return intent.Result{}, fmt.Errorf("matcher panic: %w", r.AsError())
	}
	return res, err
}

func (s *service) record(ctx context.Context, reply Reply, historyLen int) {
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.hitTimeout)
	defer cancel()

	err := s.repo.RecordHit(ctx, Hit{
		Intent:     reply.Intent,
		OffTopic:   reply.OffTopic,
		HistoryLen: historyLen,
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("[svc] record hit failed")
	}
}

func (s *service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}
