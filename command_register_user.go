package accounts

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	UseHashid bool
	OnResponse func(resp *RegisterUserResponse)
}

func (e RegisterUserMessage) Type() string { return "user.register" }

type RegisterUserResponse struct {
	User      *User
	EmailSent bool
}

// RegisterUserHandler creates an inactive account and emails the
// activation link. The account row commits before the email goes out:
// a delivery failure surfaces as an error but never rolls back the
// registration.
type RegisterUserHandler struct {
	repo   RepositoryManager
	mailer *AccountMailer
	sink   ActivitySink
	logger Logger
}

func NewRegisterUserHandler(repo RepositoryManager, mailer *AccountMailer) *RegisterUserHandler {
	return &RegisterUserHandler{
		repo:   repo,
		mailer: mailer,
		sink:   noopActivitySink{},
		logger: defLogger{},
	}
}

func (h *RegisterUserHandler) WithActivitySink(sink ActivitySink) *RegisterUserHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.PasswordHash = hash
		user.Email = event.Email
		user.Phone = event.Phone
		user.FirstName = event.FirstName
		user.LastName = event.LastName
		user.Username = getUsername(event.Username, event.Email)
		user.IsActive = false
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	if err := recordActivity(ctx, h.sink, ActivityEvent{
		EventType: ActivityEventUserRegistered,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Metadata:  map[string]any{"email": user.Email},
	}); err != nil {
		h.logger.Warn("activity sink record error: %v", err)
	}

	resp := &RegisterUserResponse{User: user}

	// the user row is committed at this point, email failure is
	// reported but does not undo the registration
	if h.mailer != nil {
		if err := h.mailer.SendActivation(ctx, user); err != nil {
			h.logger.Error("activation email failed", "user_id", user.ID.String(), "error", err)
			h.respond(event, resp)
			return goerrors.Wrap(err, ErrEmailSendFailed.Category, ErrEmailSendFailed.Message).
				WithTextCode(ErrEmailSendFailed.TextCode).
				WithMetadata(map[string]any{"user_id": user.ID.String()})
		}
		resp.EmailSent = true
	}

	h.respond(event, resp)
	return nil
}

func (h *RegisterUserHandler) respond(event RegisterUserMessage, resp *RegisterUserResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}

func getUsername(username, email string) string {
	if username != "" {
		return username
	}

	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return username
}
