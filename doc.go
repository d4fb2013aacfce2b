// Package accounts implements self-service user accounts for web
// applications: registration with email activation, password based
// login with JWT cookie sessions, and password recovery through
// signed, stateless email links.
//
// The package is transport agnostic at its core. Command handlers
// (RegisterUserHandler, ActivateUserHandler, ...) contain the account
// lifecycle logic and talk to a RepositoryManager and a Mailer. The
// HTTP layer (AccountsController, RouteAuthenticator) adapts those
// commands to go-router handlers with flash messages and server side
// rendered views.
package accounts
