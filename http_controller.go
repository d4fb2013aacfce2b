package accounts

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/nyaruka/phonenumbers"
)

// GetRouterSession pulls the validated session claims the protected
// route middleware stored in the router context
func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	val := c.Locals(key)
	if val == nil {
		return nil, ErrUnableToFindSession
	}

	claims, ok := val.(AuthClaims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	return sessionFromAuthClaims(claims)
}

// RegisterAccountRoutes wires every account route into the router.
// Dashboard, account settings, and logout sit behind the session
// middleware, everything else is public.
func RegisterAccountRoutes[T any](app router.Router[T], opts ...AccountsControllerOption) *AccountsController {
	controller := NewAccountsController(opts...)

	protected := controller.Auther.ProtectedRoute(
		controller.Config,
		controller.Auther.MakeClientRouteAuthErrorHandler(false),
	)

	app.Get(controller.Routes.Login, controller.LoginShow).
		SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut, protected).
		SetName("sign-out.get")

	app.Get(controller.Routes.Register, controller.RegistrationShow).
		SetName("register.get")
	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("register.post")

	app.Get(fmt.Sprintf("%s/:uid/:token", controller.Routes.Activate), controller.Activate).
		SetName("activate.get")

	app.Get(controller.Routes.PasswordForgot, controller.PasswordForgotShow).
		SetName("pwd-forgot.get")
	app.Post(controller.Routes.PasswordForgot, controller.PasswordForgotPost).
		SetName("pwd-forgot.post")

	app.Get(fmt.Sprintf("%s/:uid/:token", controller.Routes.PasswordReset), controller.PasswordResetForm).
		SetName("pwd-reset.get")
	app.Post(fmt.Sprintf("%s/:uid/:token", controller.Routes.PasswordReset), controller.PasswordResetExecute).
		SetName("pwd-reset.post")

	app.Get(controller.Routes.Dashboard, controller.Dashboard, protected).
		SetName("dashboard.get")

	app.Get(controller.Routes.AccountSettings, controller.AccountSettingsShow, protected).
		SetName("account-settings.get")
	app.Post(controller.Routes.AccountSettings, controller.AccountSettingsPost, protected).
		SetName("account-settings.post")

	return controller
}

type AccountsControllerRoutes struct {
	Home            string
	Login           string
	Logout          string
	Register        string
	Activate        string
	PasswordForgot  string
	PasswordReset   string
	Dashboard       string
	AccountSettings string
}

type AccountsControllerViews struct {
	Login           string
	Register        string
	PasswordForgot  string
	PasswordReset   string
	Dashboard       string
	AccountSettings string
}

type AccountsController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Config       Config
	Tokens       *LinkTokens
	Mailer       *AccountMailer
	Sessions     Authenticator
	Activity     ActivitySink
	Routes       *AccountsControllerRoutes
	Views        *AccountsControllerViews
	Auther       HTTPAuthenticator
	ErrorHandler router.ErrorHandler
}

type AccountsControllerOption func(*AccountsController) *AccountsController

func WithControllerLogger(logger Logger) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithRepositoryManager(repo RepositoryManager) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Repo = repo
		return c
	}
}

func WithConfig(cfg Config) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Config = cfg
		return c
	}
}

func WithLinkTokens(tokens *LinkTokens) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Tokens = tokens
		return c
	}
}

func WithAccountMailer(mailer *AccountMailer) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Mailer = mailer
		return c
	}
}

func WithAuther(auther HTTPAuthenticator) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Auther = auther
		return c
	}
}

func WithSessions(sessions Authenticator) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Sessions = sessions
		return c
	}
}

func WithActivitySink(sink ActivitySink) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Activity = normalizeActivitySink(sink)
		return c
	}
}

func WithDebug(debug bool) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Debug = debug
		return c
	}
}

// WithRoutes overrides route paths. Empty fields keep their defaults.
func WithRoutes(routes AccountsControllerRoutes) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		if routes.Home != "" {
			c.Routes.Home = routes.Home
		}
		if routes.Login != "" {
			c.Routes.Login = routes.Login
		}
		if routes.Logout != "" {
			c.Routes.Logout = routes.Logout
		}
		if routes.Register != "" {
			c.Routes.Register = routes.Register
		}
		if routes.Activate != "" {
			c.Routes.Activate = routes.Activate
		}
		if routes.PasswordForgot != "" {
			c.Routes.PasswordForgot = routes.PasswordForgot
		}
		if routes.PasswordReset != "" {
			c.Routes.PasswordReset = routes.PasswordReset
		}
		if routes.Dashboard != "" {
			c.Routes.Dashboard = routes.Dashboard
		}
		if routes.AccountSettings != "" {
			c.Routes.AccountSettings = routes.AccountSettings
		}
		return c
	}
}

func NewAccountsController(opts ...AccountsControllerOption) *AccountsController {
	c := &AccountsController{
		Logger:       defLogger{},
		Activity:     noopActivitySink{},
		ErrorHandler: defaultErrHandler,
		Routes: &AccountsControllerRoutes{
			Home:            "/",
			Login:           "/login",
			Logout:          "/logout",
			Register:        "/register",
			Activate:        "/activate",
			PasswordForgot:  "/forgot-password",
			PasswordReset:   "/reset",
			Dashboard:       "/dashboard",
			AccountSettings: "/account-settings",
		},
		Views: &AccountsControllerViews{
			Login:           "login",
			Register:        "register",
			PasswordForgot:  "forgot_password",
			PasswordReset:   "password_reset",
			Dashboard:       "dashboard",
			AccountSettings: "account_settings",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in accounts controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in accounts controller...")
	}

	if c.Config == nil {
		panic("Missing Config in accounts controller...")
	}

	if c.Tokens == nil {
		c.Tokens = NewLinkTokens([]byte(c.Config.GetLinkTokenKey()), c.Config.GetLinkTokenTTL())
	}

	// emailed links must follow the same paths the router serves
	if c.Mailer != nil {
		c.Mailer = c.Mailer.WithPaths(c.Routes.Activate, c.Routes.PasswordReset)
	}

	return c
}

// currentSession resolves the session cookie outside the protected
// middleware, used to bounce signed in users off the public pages
func (a *AccountsController) currentSession(ctx router.Context) *SessionObject {
	if a.Sessions == nil {
		return nil
	}

	token := ctx.Cookies(a.Config.GetContextKey())
	if token == "" {
		return nil
	}

	session, err := a.Sessions.SessionFromToken(token)
	if err != nil {
		return nil
	}

	obj, ok := session.(*SessionObject)
	if !ok {
		return nil
	}

	return obj
}

func (a *AccountsController) LoginShow(ctx router.Context) error {
	if a.currentSession(ctx) != nil {
		return ctx.Redirect(a.Routes.Dashboard, router.StatusSeeOther)
	}

	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// GetIdentifier returns the identifier, a username or an email
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// GetExtendedSession will return the remember me flag
func (r LoginRequest) GetExtendedSession() bool {
	return r.RememberMe
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AccountsController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		a.Logger.Debug("login attempt %s", print.MaybePrettyJSON(payload))
	}

	if err := a.Auther.Login(ctx, payload); err != nil {
		// wrong password, unknown user, and inactive account all get
		// the same message
		a.Logger.Info("login rejected", "identifier", payload.Identifier)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Wrong login or password",
		}).Render(a.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	redirect := a.Auther.GetRedirect(ctx, a.Routes.Dashboard)

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "You have been logged in",
	}).Redirect(redirect, fiber.StatusSeeOther)
}

func (a *AccountsController) LogOut(ctx router.Context) error {
	a.Auther.Logout(ctx)
	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "You have been logged out",
	}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AccountsController) RegistrationShow(ctx router.Context) error {
	if a.currentSession(ctx) != nil {
		return ctx.Redirect(a.Routes.Dashboard, router.StatusSeeOther)
	}

	return ctx.Render(a.Views.Register, router.ViewContext{
		"errors": map[string]string{},
		"record": RegisterUserMessage{},
	})
}

// RegistrationCreatePayload is the form payload
type RegistrationCreatePayload struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone_number" json:"phone_number"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Username, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *AccountsController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  "Form error",
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Register, router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Form not valid",
		}).Render(a.Views.Register, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	req := RegisterUserMessage{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Username:  payload.Username,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  payload.Password,
	}

	registerUser := NewRegisterUserHandler(a.Repo, a.Mailer).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := registerUser.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("register user error: ", "error", err)

		// the account exists at this point even if the activation
		// email never left, resending is a support concern
		if isEmailSendError(err) {
			return flash.WithError(ctx, router.ViewContext{
				"error_message": "Problem sending confirmation email, please try to reset your password later",
			}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
		}

		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Could not create the account",
		}).Render(a.Views.Register, router.ViewContext{
			"record": payload,
			"errors": []string{err.Error()},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Please check your email to complete the registration",
	}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AccountsController) Activate(ctx router.Context) error {
	var resp *ActivateUserResponse

	req := ActivateUserMessage{
		UID:   ctx.Param("uid", ""),
		Token: ctx.Param("token", ""),
		OnResponse: func(r *ActivateUserResponse) {
			resp = r
		},
	}

	activate := NewActivateUserHandler(a.Repo, a.Tokens).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := activate.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("activate user error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if resp == nil || !resp.Activated {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Activation link is invalid!",
		}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Thanks for confirmation. Now you can login.",
	}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AccountsController) PasswordForgotShow(ctx router.Context) error {
	return ctx.Render(a.Views.PasswordForgot, router.ViewContext{
		"errors": nil,
		"sent":   false,
	})
}

// PasswordForgotPayload holds the email for a password reset request
type PasswordForgotPayload struct {
	Email string `form:"email" json:"email"`
}

// Validate will validate the payload
func (r PasswordForgotPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

func (a *AccountsController) PasswordForgotPost(ctx router.Context) error {
	payload := new(PasswordForgotPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("password forgot parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  "Form error",
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.PasswordForgot, router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("password forgot validate payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Form not valid",
		}).Render(a.Views.PasswordForgot, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	initReset := NewInitializePasswordResetHandler(a.Repo, a.Mailer).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	req := InitializePasswordResetMessage{
		Email: payload.Email,
	}

	if err := initReset.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("password reset init error: ", "error", err)

		if isEmailSendError(err) {
			return flash.WithError(ctx, router.ViewContext{
				"error_message": "Problem sending email, please try again later",
			}).Render(a.Views.PasswordForgot, router.ViewContext{
				"record": payload,
			})
		}

		return a.ErrorHandler(ctx, err)
	}

	// unknown emails land here too, the page never says whether the
	// address matched an account
	return ctx.Render(a.Views.PasswordForgot, router.ViewContext{
		"sent":  true,
		"email": payload.Email,
	})
}

func (a *AccountsController) PasswordResetForm(ctx router.Context) error {
	uid := ctx.Param("uid", "")
	token := ctx.Param("token", "")

	var resp *VerifyLinkResponse
	req := VerifyLinkMessage{
		UID:   uid,
		Token: token,
		OnResponse: func(r *VerifyLinkResponse) {
			resp = r
		},
	}

	verify := NewVerifyLinkHandler(a.Repo, a.Tokens).WithLogger(a.Logger)

	if err := verify.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("reset link verification error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if resp == nil || !resp.Valid {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Link is expired",
		}).Render(a.Views.PasswordReset, router.ViewContext{
			"valid": false,
		})
	}

	return ctx.Render(a.Views.PasswordReset, router.ViewContext{
		"valid": true,
		"uid":   uid,
		"token": token,
	})
}

// SetPasswordPayload holds values for setting a new password
type SetPasswordPayload struct {
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (r SetPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 100),
		),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *AccountsController) PasswordResetExecute(ctx router.Context) error {
	uid := ctx.Param("uid", "")
	token := ctx.Param("token", "")

	payload := new(SetPasswordPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("password reset parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  "Form error",
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.PasswordReset, router.ViewContext{
			"valid": true,
			"uid":   uid,
			"token": token,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("password reset validate payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Form not valid",
		}).Render(a.Views.PasswordReset, router.ViewContext{
			"valid":      true,
			"uid":        uid,
			"token":      token,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	finalize := NewFinalizePasswordResetHandler(a.Repo, a.Tokens).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	req := FinalizePasswordResetMessage{
		UID:      uid,
		Token:    token,
		Password: payload.Password,
	}

	if err := finalize.Execute(ctx.Context(), req); err != nil {
		if IsLinkInvalidError(err) {
			return flash.WithError(ctx, router.ViewContext{
				"error_message": "Link is expired",
			}).Render(a.Views.PasswordReset, router.ViewContext{
				"valid": false,
			})
		}

		a.Logger.Error("password reset finalize error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Password has been changed. You may log in.",
	}).Redirect(a.Routes.Home, fiber.StatusSeeOther)
}

func (a *AccountsController) Dashboard(ctx router.Context) error {
	user, err := a.sessionUser(ctx)
	if err != nil {
		return a.Auther.MakeClientRouteAuthErrorHandler(false)(ctx, err)
	}

	return ctx.Render(a.Views.Dashboard, router.ViewContext{
		"current_user": GetTemplateUser(user),
	})
}

func (a *AccountsController) AccountSettingsShow(ctx router.Context) error {
	user, err := a.sessionUser(ctx)
	if err != nil {
		return a.Auther.MakeClientRouteAuthErrorHandler(false)(ctx, err)
	}

	return ctx.Render(a.Views.AccountSettings, router.ViewContext{
		"current_user": GetTemplateUser(user),
	})
}

func (a *AccountsController) AccountSettingsPost(ctx router.Context) error {
	user, err := a.sessionUser(ctx)
	if err != nil {
		return a.Auther.MakeClientRouteAuthErrorHandler(false)(ctx, err)
	}

	payload := new(SetPasswordPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("account settings parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  "Form error",
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.AccountSettings, router.ViewContext{
			"current_user": GetTemplateUser(user),
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("account settings validate payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Form not valid",
		}).Render(a.Views.AccountSettings, router.ViewContext{
			"current_user": GetTemplateUser(user),
			"validation":   FormatValidationErrorToMap(err),
		})
	}

	change := NewChangePasswordHandler(a.Repo).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	req := ChangePasswordMessage{
		UserID:   user.ID.String(),
		Password: payload.Password,
	}

	if err := change.Execute(WithContext(ctx.Context(), user), req); err != nil {
		a.Logger.Error("change password error: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Could not change the password",
		}).Render(a.Views.AccountSettings, router.ViewContext{
			"current_user": GetTemplateUser(user),
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Your password has been changed.",
	}).Redirect(a.Routes.Dashboard, fiber.StatusSeeOther)
}

// sessionUser loads the full user record for the session behind the
// protected middleware
func (a *AccountsController) sessionUser(ctx router.Context) (*User, error) {
	session, err := GetRouterSession(ctx, a.Config.GetContextKey())
	if err != nil {
		return nil, err
	}

	user, err := a.Repo.Users().GetByID(ctx.Context(), session.GetUserID())
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

// ValidatePhoneNumber accepts empty values and otherwise requires a
// parseable, valid number
func ValidatePhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return errors.New("must be a valid phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}

	return nil
}

func isEmailSendError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == ErrEmailSendFailed.TextCode
	}
	return false
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
