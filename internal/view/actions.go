package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketadmin/internal/api"
	"marketadmin/internal/session"
)

var (
	ErrCancelled     = errors.New("view: action cancelled")
	ErrAdminAccount  = errors.New("view: action not available for admin accounts")
	ErrNotConfigured = errors.New("view: dispatcher not configured")
)

// Notifier receives the transient toasts mutations produce.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer gates destructive actions behind an explicit yes.
type Confirmer interface {
	Confirm(prompt string) bool
}

type userAPI interface {
	DeleteUser(ctx context.Context, id int64) error
	Impersonate(ctx context.Context, id int64) (*api.ImpersonationGrant, error)
}

type sessionStore interface {
	BeginImpersonation(targetID int64, targetRole string) error
	CompleteImpersonation(token string, impersonatorID int64, impersonatorName string) error
	AbortImpersonation() error
}

// Dispatcher fires the single mutating calls of the user dashboard and
// surfaces their outcome as notifications. After a successful mutation
// it triggers both the list and the statistics refresh hooks.
type Dispatcher struct {
	API          userAPI
	Sessions     sessionStore
	Confirm      Confirmer
	Notify       Notifier
	Logger       *slog.Logger
	RefreshList  func(ctx context.Context)
	RefreshStats func(ctx context.Context)
}

// CanDelete is the UI-level guard: admin accounts are never offered
// deletion. The server enforces the same restriction independently.
func CanDelete(u api.User) bool {
	return u.Usertype != api.UsertypeAdmin
}

// CanImpersonate mirrors CanDelete for the impersonate action.
func CanImpersonate(u api.User) bool {
	return u.Usertype != api.UsertypeAdmin
}

// DeleteUser removes an account after confirmation. On failure the
// item stays listed and the server's message is surfaced.
func (d *Dispatcher) DeleteUser(ctx context.Context, u api.User) error {
	if d == nil || d.API == nil {
		return ErrNotConfigured
	}
	if !CanDelete(u) {
		return ErrAdminAccount
	}
	if d.Confirm != nil && !d.Confirm.Confirm(fmt.Sprintf("Delete user %q (%s)?", u.Name, u.Email)) {
		return ErrCancelled
	}

	if err := d.API.DeleteUser(ctx, u.ID); err != nil {
		d.notifyError(api.ServerMessage(err))
		return err
	}
	d.notifySuccess(fmt.Sprintf("User %q deleted", u.Name))
	d.refreshAll(ctx)
	return nil
}

// ImpersonateUser runs the token-swap handshake and returns the portal
// path the host should fully reload into. A failed grant call aborts
// the handshake; the admin token was only copied aside, so the admin
// session is unaffected.
func (d *Dispatcher) ImpersonateUser(ctx context.Context, u api.User) (string, error) {
	if d == nil || d.API == nil || d.Sessions == nil {
		return "", ErrNotConfigured
	}
	if !CanImpersonate(u) {
		return "", ErrAdminAccount
	}
	if d.Confirm != nil && !d.Confirm.Confirm(fmt.Sprintf("Log in as %q (%s)?", u.Name, u.Usertype)) {
		return "", ErrCancelled
	}

	if err := d.Sessions.BeginImpersonation(u.ID, string(u.Usertype)); err != nil {
		d.notifyError(err.Error())
		return "", err
	}
	grant, err := d.API.Impersonate(ctx, u.ID)
	if err != nil {
		if abortErr := d.Sessions.AbortImpersonation(); abortErr != nil {
			d.logError("impersonation abort failed", abortErr)
		}
		d.notifyError(api.ServerMessage(err))
		return "", err
	}
	if err := d.Sessions.CompleteImpersonation(grant.Token, grant.ImpersonatorID, grant.ImpersonatorName); err != nil {
		d.notifyError(err.Error())
		return "", err
	}

	d.notifySuccess(fmt.Sprintf("Now browsing as %q", u.Name))
	d.refreshAll(ctx)
	return session.PortalPath(string(u.Usertype)), nil
}

func (d *Dispatcher) refreshAll(ctx context.Context) {
	if d.RefreshList != nil {
		d.RefreshList(ctx)
	}
	if d.RefreshStats != nil {
		d.RefreshStats(ctx)
	}
}

func (d *Dispatcher) notifySuccess(msg string) {
	if d.Notify != nil {
		d.Notify.Success(msg)
	}
}

func (d *Dispatcher) notifyError(msg string) {
	if d.Notify != nil {
		d.Notify.Error(msg)
	}
}

func (d *Dispatcher) logError(msg string, err error) {
	if d.Logger != nil {
		d.Logger.Error(msg, "error", err)
	}
}
