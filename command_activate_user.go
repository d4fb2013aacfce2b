package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

type ActivateUserMessage struct {
	UID        string `json:"uid"`
	Token      string `json:"token"`
	OnResponse func(resp *ActivateUserResponse)
}

func (e ActivateUserMessage) Type() string { return "user.activate" }

type ActivateUserResponse struct {
	Activated bool
	User      *User
}

// ActivateUserHandler confirms an activation link and flips the
// account to active. The handler fails closed: an undecodable uid, an
// unknown user, and a bad or stale token all yield the same
// unactivated response so callers cannot tell the cases apart.
type ActivateUserHandler struct {
	repo   RepositoryManager
	tokens *LinkTokens
	sink   ActivitySink
	logger Logger
}

func NewActivateUserHandler(repo RepositoryManager, tokens *LinkTokens) *ActivateUserHandler {
	return &ActivateUserHandler{
		repo:   repo,
		tokens: tokens,
		sink:   noopActivitySink{},
		logger: defLogger{},
	}
}

func (h *ActivateUserHandler) WithActivitySink(sink ActivitySink) *ActivateUserHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *ActivateUserHandler) WithLogger(logger Logger) *ActivateUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ActivateUserHandler) Execute(ctx context.Context, event ActivateUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user activation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ActivateUserHandler) execute(ctx context.Context, event ActivateUserMessage) error {
	resp := &ActivateUserResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	id, err := DecodeUID(event.UID)
	if err != nil {
		h.logger.Debug("activation uid did not decode", "uid", event.UID)
		return h.respond(event, resp)
	}

	user, err := h.repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return h.respond(event, resp)
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user for activation")
	}

	if !h.tokens.Check(user, event.Token) {
		h.logger.Debug("activation token check failed", "user_id", user.ID.String())
		return h.respond(event, resp)
	}

	activated, err := h.repo.Users().Activate(ctx, user.ID)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to activate user")
	}

	if err := recordActivity(ctx, h.sink, ActivityEvent{
		EventType: ActivityEventUserActivated,
		Actor:     ActorRef{ID: activated.ID.String(), Type: "user"},
		UserID:    activated.ID.String(),
	}); err != nil {
		h.logger.Warn("activity sink record error: %v", err)
	}

	resp.Activated = true
	resp.User = activated

	return h.respond(event, resp)
}

func (h *ActivateUserHandler) respond(event ActivateUserMessage, resp *ActivateUserResponse) error {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
	return nil
}
