package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type ChangePasswordMessage struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (p ChangePasswordMessage) Type() string { return "user.password_change" }

// ChangePasswordHandler rotates the password of an authenticated
// user from the account settings page
type ChangePasswordHandler struct {
	repo   RepositoryManager
	sink   ActivitySink
	logger Logger
}

func NewChangePasswordHandler(repo RepositoryManager) *ChangePasswordHandler {
	return &ChangePasswordHandler{
		repo:   repo,
		sink:   noopActivitySink{},
		logger: defLogger{},
	}
}

func (h *ChangePasswordHandler) WithActivitySink(sink ActivitySink) *ChangePasswordHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *ChangePasswordHandler) WithLogger(logger Logger) *ChangePasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, event ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, event ChangePasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.repo.Users().GetByID(ctx, event.UserID)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "failed to retrieve user for password change")
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
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to change password")
	}

	actor := ActorRef{ID: user.ID.String(), Type: "user"}
	if acting, ok := FromContext(ctx); ok {
		actor = ActorRef{ID: acting.ID.String(), Type: "user"}
	}

	if err := recordActivity(ctx, h.sink, ActivityEvent{
		EventType: ActivityEventPasswordChanged,
		Actor:     actor,
		UserID:    user.ID.String(),
	}); err != nil {
		h.logger.Warn("activity sink record error: %v", err)
	}

	return nil
}
