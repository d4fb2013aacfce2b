package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

type InitializePasswordResetMessage struct {
	Email      string `json:"email"`
	OnResponse func(resp *InitializePasswordResetResponse)
}

func (p InitializePasswordResetMessage) Type() string { return "user.password_reset" }

type InitializePasswordResetResponse struct {
	Sent bool
}

// InitializePasswordResetHandler emails a reset link to the account
// matching the given address. Unknown addresses complete exactly like
// known ones so the endpoint cannot be used to enumerate accounts.
type InitializePasswordResetHandler struct {
	repo   RepositoryManager
	mailer *AccountMailer
	sink   ActivitySink
	logger Logger
}

func NewInitializePasswordResetHandler(repo RepositoryManager, mailer *AccountMailer) *InitializePasswordResetHandler {
	return &InitializePasswordResetHandler{
		repo:   repo,
		mailer: mailer,
		sink:   noopActivitySink{},
		logger: defLogger{},
	}
}

func (h *InitializePasswordResetHandler) WithActivitySink(sink ActivitySink) *InitializePasswordResetHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *InitializePasswordResetHandler) WithLogger(logger Logger) *InitializePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *InitializePasswordResetHandler) Execute(ctx context.Context, event InitializePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset initialization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *InitializePasswordResetHandler) execute(ctx context.Context, event InitializePasswordResetMessage) error {
	resp := &InitializePasswordResetResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.repo.Users().GetByEmail(ctx, event.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			// same response as the found case
			resp.Sent = true
			return h.respond(event, resp)
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user for password reset")
	}

	if h.mailer != nil {
		if err := h.mailer.SendPasswordReset(ctx, user); err != nil {
			h.logger.Error("password reset email failed", "user_id", user.ID.String(), "error", err)
			return goerrors.Wrap(err, ErrEmailSendFailed.Category, ErrEmailSendFailed.Message).
				WithTextCode(ErrEmailSendFailed.TextCode).
				WithMetadata(map[string]any{"user_id": user.ID.String()})
		}
	}

	if err := recordActivity(ctx, h.sink, ActivityEvent{
		EventType: ActivityEventPasswordResetRequested,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Metadata:  map[string]any{"email": user.Email},
	}); err != nil {
		h.logger.Warn("activity sink record error: %v", err)
	}

	resp.Sent = true
	return h.respond(event, resp)
}

func (h *InitializePasswordResetHandler) respond(event InitializePasswordResetMessage, resp *InitializePasswordResetResponse) error {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
	return nil
}
