// ABOUTME: Logout: server-side revoke then a local clear that keeps the theme
// ABOUTME: A failed revoke still drops the token locally

package flows

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/session"
)

const MsgLoggedOut = "Logged out successfully"

// Logout revokes the session on the server and clears local state except
// the theme. Without a token it only logs. When the revoke fails the
// token alone is removed and the error returned.
func Logout(ctx context.Context, api AuthAPI, sess SessionState, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if _, ok := sess.Token(); !ok {
		logger.Warn("logout requested without a session token")
		return oops.Code("SESSION_NO_TOKEN").Wrap(session.ErrNoToken)
	}

	if err := api.Logout(ctx); err != nil {
		logger.Error("logout failed", "error", err)
		if dropErr := sess.DropToken(); dropErr != nil {
			logger.Error("removing token after failed logout", "error", dropErr)
		}
		return err
	}

	if err := sess.Clear(); err != nil {
		logger.Error("clearing session after logout", "error", err)
		return err
	}
	return nil
}

// SignOut is the user-initiated logout: on success it confirms and returns
// home.
func SignOut(ctx context.Context, api AuthAPI, sess SessionState, logger *slog.Logger, fx Effects) error {
	if err := Logout(ctx, api, sess, logger); err != nil {
		return err
	}
	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgLoggedOut})
	fx.Navigate(RouteHome)
	return nil
}
