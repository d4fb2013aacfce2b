package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type FinalizePasswordResetMessage struct {
	UID      string `json:"uid"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (p FinalizePasswordResetMessage) Type() string { return "user.password_reset_finalize" }

// FinalizePasswordResetHandler verifies the emailed token a second
// time and writes the new password hash. The fresh hash changes the
// token signature, so the link that authorized this reset is dead the
// moment the transaction commits.
type FinalizePasswordResetHandler struct {
	repo   RepositoryManager
	tokens *LinkTokens
	sink   ActivitySink
	logger Logger
}

func NewFinalizePasswordResetHandler(repo RepositoryManager, tokens *LinkTokens) *FinalizePasswordResetHandler {
	return &FinalizePasswordResetHandler{
		repo:   repo,
		tokens: tokens,
		sink:   noopActivitySink{},
		logger: defLogger{},
	}
}

func (h *FinalizePasswordResetHandler) WithActivitySink(sink ActivitySink) *FinalizePasswordResetHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *FinalizePasswordResetHandler) WithLogger(logger Logger) *FinalizePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *FinalizePasswordResetHandler) Execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset finalization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *FinalizePasswordResetHandler) execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	id, err := DecodeUID(event.UID)
	if err != nil {
		return ErrLinkInvalid
	}

	user, err := h.repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrLinkInvalid
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user for password reset")
	}

	if !h.tokens.Check(user, event.Token) {
		return ErrLinkInvalid
	}

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return h.repo.Users().ResetPasswordTx(ctx, tx, user.ID, hash)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to finalize password reset")
	}

	if err := recordActivity(ctx, h.sink, ActivityEvent{
		EventType: ActivityEventPasswordResetComplete,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
	}); err != nil {
		h.logger.Warn("activity sink record error: %v", err)
	}

	return nil
}
