package generation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"synthdata-backend/internal/files"
	"synthdata-backend/internal/llm"
	"synthdata-backend/internal/shared/metrics"
	"synthdata-backend/internal/shared/storage/object"
	"synthdata-backend/internal/shared/telemetry"
	"synthdata-backend/internal/tabular"
)

const defaultTimeout = 30 * time.Second

// Service validates requests, dispatches to the collaborators, encodes the
// output, and persists it as a registered file.
type Service struct {
	Tabular *tabular.Synthesizer
	LLM     llm.Client
	Files   files.Repo
	History HistoryRepo
	Store   object.ObjectStore

	// Timeout bounds each collaborator call. Zero means defaultTimeout.
	Timeout time.Duration

	// MaxNumSamples caps num_samples. Zero means the built-in default.
	MaxNumSamples int
}

// Result is a completed generation: the registered file plus its content,
// returned inline so the handler can stream it without a second store read.
type Result struct {
	File    files.File
	Content []byte
}

// CountByOwner exposes the history count for the stats aggregator.
func (s *Service) CountByOwner(ctx context.Context, userID string) (int64, error) {
	return s.History.CountByOwner(ctx, userID)
}

// HistoryByOwner lists the user's recent generation runs.
func (s *Service) HistoryByOwner(ctx context.Context, userID string, limit int) ([]HistoryRecord, error) {
	return s.History.ListByOwner(ctx, userID, limit)
}

// GenerateTabular produces a tabular dataset and registers the result.
func (s *Service) GenerateTabular(ctx context.Context, userID string, req TabularRequest) (Result, error) {
	if err := s.validateTabular(&req); err != nil {
		return Result{}, err
	}
	done := trackRun()

	genCtx, cancel := s.boundedContext(ctx)
	defer cancel()

	dataset, err := s.Tabular.Generate(genCtx, req.Domain, req.NumSamples)
	if err != nil {
		return Result{}, done(s.collaboratorError(ctx, err))
	}

	content, err := encodeTabular(dataset, req.Format)
	if err != nil {
		return Result{}, done(fmt.Errorf("encode tabular output: %w", err))
	}

	fileName := fmt.Sprintf("tabular_%s_%dsamples", req.Domain, req.NumSamples)
	result, err := s.persist(ctx, userID, KindTabular, req.Domain, req.Topic, req.NumSamples, req.Format, fileName, content)
	return result, done(err)
}

// GenerateChat produces num_samples conversations and registers the result.
func (s *Service) GenerateChat(ctx context.Context, userID string, req ChatRequest) (Result, error) {
	if err := s.validateChat(&req); err != nil {
		return Result{}, err
	}
	done := trackRun()

	genCtx, cancel := s.boundedContext(ctx)
	defer cancel()

	conversations := make([]llm.Conversation, 0, req.NumSamples)
	for i := 0; i < req.NumSamples; i++ {
		conv, err := s.LLM.GenerateConversation(genCtx, llm.ConversationInput{
			Domain:   req.Domain,
			Topic:    req.Topic,
			NumTurns: req.NumTurns,
		})
		if err != nil {
			return Result{}, done(s.collaboratorError(ctx, err))
		}
		conversations = append(conversations, conv)
	}

	content, err := encodeConversations(conversations, req.Format)
	if err != nil {
		return Result{}, done(fmt.Errorf("encode chat output: %w", err))
	}

	fileName := fmt.Sprintf("chat_%s_%s_%dsamples", req.Domain, req.Topic, req.NumSamples)
	result, err := s.persist(ctx, userID, KindChat, req.Domain, req.Topic, req.NumSamples, req.Format, fileName, content)
	return result, done(err)
}

// GenerateEmail produces num_samples emails and registers the result.
func (s *Service) GenerateEmail(ctx context.Context, userID string, req EmailRequest) (Result, error) {
	if err := s.validateEmail(&req); err != nil {
		return Result{}, err
	}
	done := trackRun()

	genCtx, cancel := s.boundedContext(ctx)
	defer cancel()

	emails := make([]llm.Email, 0, req.NumSamples)
	for i := 0; i < req.NumSamples; i++ {
		email, err := s.LLM.GenerateEmail(genCtx, llm.EmailInput{
			Domain:    req.Domain,
			Topic:     req.Topic,
			EmailType: req.EmailType,
		})
		if err != nil {
			return Result{}, done(s.collaboratorError(ctx, err))
		}
		emails = append(emails, email)
	}

	content, err := encodeEmails(emails, req.Format)
	if err != nil {
		return Result{}, done(fmt.Errorf("encode email output: %w", err))
	}

	fileName := fmt.Sprintf("email_%s_%s_%dsamples", req.Domain, req.Topic, req.NumSamples)
	result, err := s.persist(ctx, userID, KindEmail, req.Domain, req.Topic, req.NumSamples, req.Format, fileName, content)
	return result, done(err)
}

// trackRun records run counters and duration; the returned func passes the
// final error through so call sites stay single-expression.
func trackRun() func(error) error {
	metrics.IncGenerationStarted()
	start := metrics.NowMillis()
	return func(err error) error {
		metrics.ObserveGenerationDurationMs(metrics.NowMillis() - start)
		if err != nil {
			metrics.IncGenerationFailed()
		} else {
			metrics.IncGenerationCompleted()
		}
		return err
	}
}

func (s *Service) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// collaboratorError maps generator failures to ErrGeneratorUnavailable unless
// the caller itself went away.
func (s *Service) collaboratorError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	return fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
}

// persist stores the content, registers the file record, and appends the
// history entry. Content and record are all-or-nothing: a failed record
// insert or a canceled caller removes the stored object again.
func (s *Service) persist(ctx context.Context, userID, kind, domain, topic string, numSamples int, format, baseName string, content []byte) (Result, error) {
	now := time.Now().UTC()
	fileName := fmt.Sprintf("%s_%s.%s", baseName, now.Format("20060102_150405"), fileExtension(format))

	storageKey, sizeBytes, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(content))
	if err != nil {
		return Result{}, fmt.Errorf("%w: save content: %v", files.ErrStorage, err)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.rollback(storageKey)
		return Result{}, ctxErr
	}

	file := files.File{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		DataKind:   kind,
		Domain:     domain,
		Format:     format,
		StorageKey: storageKey,
		SizeBytes:  sizeBytes,
		NumSamples: numSamples,
		CreatedAt:  now,
	}
	if err := s.Files.Create(ctx, file); err != nil {
		s.rollback(storageKey)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, fmt.Errorf("register file: %w", err)
	}

	record := HistoryRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		DataKind:   kind,
		Domain:     domain,
		Topic:      topic,
		NumSamples: numSamples,
		CreatedAt:  now,
	}
	if err := s.History.Create(ctx, record); err != nil {
		// History is bookkeeping on top of the registered file; losing an
		// entry must not fail the generation that already succeeded.
		telemetry.Warn("generation.history.create_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	return Result{File: file, Content: content}, nil
}

// rollback removes stored content whose record never materialized. The
// request context may already be canceled, so the delete runs detached.
func (s *Service) rollback(storageKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Error("generation.rollback_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}
