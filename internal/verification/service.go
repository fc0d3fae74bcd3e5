package verification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"agegate/internal/audit"
	"agegate/internal/catalog"
	"agegate/internal/credential"
	"agegate/internal/platform/metrics"
	"agegate/internal/platform/middleware"
	"agegate/internal/restriction"
	"agegate/internal/verification/tracer"
	"agegate/pkg/domain"
	dErrors "agegate/pkg/domain-errors"
)

// Service is the transaction verification state machine. All event sources
// funnel into it; a single mutex serializes them so the engine observes one
// event at a time regardless of how many intake goroutines exist.
type Service struct {
	classifier *restriction.Classifier
	parser     *credential.Parser
	presenter  Presenter
	auditor    AuditPublisher
	policy     Policy

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	clock   func() time.Time

	mu    sync.Mutex
	state State
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus metrics collection.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets a custom tracer. Defaults to a no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock injects the time source used for age evaluation. Tests pin this
// to a fixed instant.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New creates the verification service. Classifier, parser, presenter, and
// audit publisher are required; options cover the rest.
func New(classifier *restriction.Classifier, parser *credential.Parser, presenter Presenter, auditor AuditPublisher, policy Policy, opts ...Option) *Service {
	if classifier == nil {
		panic("verification: classifier is required")
	}
	if parser == nil {
		panic("verification: parser is required")
	}
	if presenter == nil {
		panic("verification: presenter is required")
	}
	if auditor == nil {
		panic("verification: audit publisher is required")
	}
	if policy.MinimumAge <= 0 {
		panic("verification: policy minimum age must be positive")
	}

	s := &Service{
		classifier: classifier,
		parser:     parser,
		presenter:  presenter,
		auditor:    auditor,
		policy:     policy,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// StartTransaction signals a transaction boundary. A transaction ID different
// from the current one resets the whole state; the same ID is a no-op, so
// redundant boundary events from the poller and the local API are harmless.
func (s *Service) StartTransaction(ctx context.Context, txnID domain.TransactionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if txnID == s.state.TransactionID {
		return
	}

	s.logger.InfoContext(ctx, "transaction boundary",
		"previous_transaction_id", s.state.TransactionID,
		"transaction_id", txnID,
	)
	s.resetLocked(ctx, txnID)
}

// ObserveItemCount reports the current line-item count. A drop to zero means
// the sale was emptied or completed, which is a transaction boundary even
// when the transaction ID has not changed yet.
func (s *Service) ObserveItemCount(ctx context.Context, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count == 0 && s.state.itemCount > 0 {
		s.logger.InfoContext(ctx, "item count dropped to zero, resetting",
			"transaction_id", s.state.TransactionID,
		)
		s.resetLocked(ctx, s.state.TransactionID)
	}
	s.state.itemCount = count
}

// ObserveProduct runs a scanned or added product through the classifier and
// fires the ID prompt if it is the first restricted item of an unverified
// transaction. Non-restricted products never touch the state.
func (s *Service) ObserveProduct(ctx context.Context, product catalog.Product) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanObserveProduct)
	defer span.End(nil)

	restricted := s.classifier.IsRestricted(&product)
	span.SetAttributes(tracer.Bool(tracer.AttrRestricted, restricted))
	if !restricted {
		return
	}

	if s.metrics != nil {
		s.metrics.RestrictedScans.Inc()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span.SetAttributes(
		tracer.String(tracer.AttrTransactionID, string(s.state.TransactionID)),
		tracer.Bool(tracer.AttrPromptShown, s.state.PromptShown),
		tracer.Bool(tracer.AttrVerified, s.state.Verified),
	)

	if s.state.PromptShown || s.state.Verified {
		return
	}

	s.state.PromptShown = true
	span.AddEvent(tracer.EventPromptEmitted)
	s.logger.InfoContext(ctx, "id check prompt",
		"transaction_id", s.state.TransactionID,
		"product_code", product.Code,
		"product_group", product.Group,
	)
	if s.metrics != nil {
		s.metrics.PromptsShown.Inc()
	}

	s.presenter.PromptForCredential(ctx, product)

	event := s.newEvent(ctx, audit.ActionPromptShown)
	event.ProductCode = product.Code
	event.ProductName = product.Name
	event.ProductGroup = product.Group
	s.emit(ctx, event)
}

// ReceiveCredential parses a scanned ID payload and evaluates the customer's
// age. A failed parse reports through the presenter and audit trail but never
// flips the verified flag; the operator can rescan or fall back to manual
// entry. A denial is likewise non-terminal.
func (s *Service) ReceiveCredential(ctx context.Context, raw string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReceiveCredential)
	var spanErr error
	defer func() { span.End(spanErr) }()

	start := s.clock()
	cred, err := s.parser.Parse(raw, start)
	if s.metrics != nil {
		s.metrics.EvaluateLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		spanErr = err
		return nil, s.credentialFailed(ctx, span, err)
	}

	result := s.evaluate(ctx, span, cred, audit.MethodScan)
	return result, nil
}

// ManualEntry evaluates an operator-typed eight-digit birth date. The typed
// date is trusted as-is; only its shape is validated.
func (s *Service) ManualEntry(ctx context.Context, digits string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReceiveCredential)
	var spanErr error
	defer func() { span.End(spanErr) }()

	cred, err := s.parser.ParseManualEntry(digits)
	if err != nil {
		spanErr = err
		return nil, s.credentialFailed(ctx, span, err)
	}

	result := s.evaluate(ctx, span, cred, audit.MethodManual)
	return result, nil
}

// ManualOverride records the operator's own judgement and always wins: an
// approval marks the transaction verified even after a scan denial, and a
// denial clears the flag. PIN gating, when configured, happens at the
// transport layer before this is reached.
func (s *Service) ManualOverride(ctx context.Context, approved bool) Snapshot {
	ctx, span := s.tracer.Start(ctx, tracer.SpanManualOverride)
	defer span.End(nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Verified = approved
	span.SetAttributes(
		tracer.String(tracer.AttrTransactionID, string(s.state.TransactionID)),
		tracer.Bool(tracer.AttrVerified, approved),
	)
	s.logger.InfoContext(ctx, "manual override",
		"transaction_id", s.state.TransactionID,
		"approved", approved,
	)

	action := audit.ActionManualApproved
	outcome := "approved"
	if !approved {
		action = audit.ActionManualDenied
		outcome = "denied"
	}
	if s.metrics != nil {
		s.metrics.Verifications.WithLabelValues(outcome, string(audit.MethodManual)).Inc()
	}

	event := s.newEvent(ctx, action)
	event.MinimumAge = s.policy.MinimumAge
	event.Approved = &approved
	event.Method = audit.MethodManual
	event.Reason = "operator_override"
	s.emit(ctx, event)

	return s.snapshotLocked()
}

// Snapshot returns the current state for the local API and tests.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		TransactionID: s.state.TransactionID,
		PromptShown:   s.state.PromptShown,
		Verified:      s.state.Verified,
	}
}

// resetLocked clears the verification flags atomically. Callers hold the lock.
func (s *Service) resetLocked(ctx context.Context, txnID domain.TransactionID) {
	s.state = State{TransactionID: txnID}
	if s.metrics != nil {
		s.metrics.TransactionResets.Inc()
	}
	s.emit(ctx, s.newEvent(ctx, audit.ActionTransactionNew))
}

// evaluate turns a parsed credential into an approve or deny decision.
func (s *Service) evaluate(ctx context.Context, span tracer.Span, cred *credential.Credential, method audit.Method) *Result {
	now := s.clock()
	age := domain.Age(cred.DateOfBirth, now)
	approved := age >= s.policy.MinimumAge

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastCredential = cred
	if approved {
		s.state.Verified = true
	}

	span.SetAttributes(
		tracer.String(tracer.AttrTransactionID, string(s.state.TransactionID)),
		tracer.String(tracer.AttrAgeBucket, tracer.AgeBucket(age)),
		tracer.Bool(tracer.AttrVerified, s.state.Verified),
	)
	s.logger.InfoContext(ctx, "age evaluated",
		"transaction_id", s.state.TransactionID,
		"approved", approved,
		"method", method,
	)

	action := audit.ActionAgeApproved
	outcome := "approved"
	if !approved {
		action = audit.ActionAgeDenied
		outcome = "denied"
	}
	if s.metrics != nil {
		s.metrics.Verifications.WithLabelValues(outcome, string(method)).Inc()
	}

	event := s.newEvent(ctx, action)
	event.CustomerName = cred.DisplayName()
	event.CustomerAge = &age
	event.MinimumAge = s.policy.MinimumAge
	event.Approved = &approved
	event.Method = method
	s.emit(ctx, event)

	if approved {
		s.presenter.VerificationApproved(ctx, age, cred)
	} else {
		s.presenter.VerificationDenied(ctx, age, s.policy.MinimumAge, cred)
	}

	return &Result{Age: age, Approved: approved}
}

// credentialFailed reports an unparseable or implausible credential.
func (s *Service) credentialFailed(ctx context.Context, span tracer.Span, err error) error {
	code := dErrors.CodeOf(err)
	span.SetAttributes(tracer.String(tracer.AttrErrorCode, string(code)))
	s.logger.WarnContext(ctx, "credential rejected",
		"error", err,
		"code", code,
	)
	if s.metrics != nil {
		s.metrics.ParseFailures.WithLabelValues(string(code)).Inc()
	}

	s.presenter.CredentialError(ctx, err.Error())

	s.mu.Lock()
	defer s.mu.Unlock()
	event := s.newEvent(ctx, audit.ActionCredentialErr)
	event.Reason = string(code)
	s.emit(ctx, event)
	return err
}

// newEvent stamps the transaction and request correlation fields. Callers
// hold the lock or read state fields they just wrote.
func (s *Service) newEvent(ctx context.Context, action audit.Action) audit.Event {
	return audit.Event{
		TransactionID:  s.state.TransactionID,
		Action:         action,
		RequestID:      middleware.GetRequestID(ctx),
		RegisterClient: middleware.GetRegisterClient(ctx),
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
		)
	}
}
