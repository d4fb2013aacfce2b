package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

type VerifyLinkMessage struct {
	UID        string `json:"uid"`
	Token      string `json:"token"`
	OnResponse func(resp *VerifyLinkResponse)
}

func (e VerifyLinkMessage) Type() string { return "user.verify_link" }

type VerifyLinkResponse struct {
	Valid bool
	User  *User
}

// VerifyLinkHandler checks a uid/token pair from an emailed link
// without mutating anything. The reset form uses it to decide whether
// to render the password fields or the invalid link notice.
type VerifyLinkHandler struct {
	repo   RepositoryManager
	tokens *LinkTokens
	logger Logger
}

func NewVerifyLinkHandler(repo RepositoryManager, tokens *LinkTokens) *VerifyLinkHandler {
	return &VerifyLinkHandler{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (h *VerifyLinkHandler) WithLogger(logger Logger) *VerifyLinkHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *VerifyLinkHandler) Execute(ctx context.Context, event VerifyLinkMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during link verification",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *VerifyLinkHandler) execute(ctx context.Context, event VerifyLinkMessage) error {
	resp := &VerifyLinkResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	id, err := DecodeUID(event.UID)
	if err != nil {
		return h.respond(event, resp)
	}

	user, err := h.repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return h.respond(event, resp)
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user for link verification")
	}

	if !h.tokens.Check(user, event.Token) {
		return h.respond(event, resp)
	}

	resp.Valid = true
	resp.User = user

	return h.respond(event, resp)
}

func (h *VerifyLinkHandler) respond(event VerifyLinkMessage, resp *VerifyLinkResponse) error {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
	return nil
}
