package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/scheduler"
)

const (
	msgUserUpdated = "User updated successfully"
	msgUserDeleted = "User deleted successfully"
)

var errUsage = errors.New("usage")

// adminView renders statistics and the current user page and keeps them
// fresh while the view stays active.
func (a *App) adminView(ctx context.Context) error {
	q := a.currentQuery()
	ov, err := a.adminService.Overview(ctx, q)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}
	a.rememberUsers(ov.Users.Users)
	renderOverview(a.out, ov, q)

	err = a.scheduler.Every(scheduler.JobDashboardRefresh, a.config.RefreshInterval, a.refreshDashboard)
	if err != nil {
		a.logger.Warn(ctx, "failed to schedule dashboard refresh", "error", err)
	}
	return nil
}

// refreshDashboard is the periodic job behind the admin view. It updates the
// cached page and prints a one-line summary.
func (a *App) refreshDashboard(ctx context.Context) {
	if a.currentLocation() != router.PathAdmin {
		a.scheduler.Remove(scheduler.JobDashboardRefresh)
		return
	}
	ov, err := a.adminService.Overview(ctx, a.currentQuery())
	if err != nil {
		a.handleError(ctx, err)
		return
	}
	a.rememberUsers(ov.Users.Users)
	a.notifier.Info(fmt.Sprintf("Dashboard refreshed: %d users, %d active, %d new",
		ov.Stats.UserStats.TotalUsers, ov.Stats.UserStats.ActiveUsers, ov.Stats.UserStats.NewUsers))
}

func (a *App) rememberUsers(users []models.User) {
	a.mu.Lock()
	a.users = append([]models.User(nil), users...)
	a.mu.Unlock()
}

func (a *App) cachedUser(id string) (models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// parseUserQuery reads "users [search words] [-status s] [-page n]" on top
// of the current query. A search or status change resets to page 1.
func parseUserQuery(args []string, base models.UserQuery) (models.UserQuery, error) {
	q := base
	var search []string
	searchGiven, pageGiven := false, false

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-status", "--status":
			if i+1 >= len(args) {
				return q, fmt.Errorf("%w: -status needs a value", errUsage)
			}
			i++
			if strings.EqualFold(args[i], "all") {
				q.Status = ""
				break
			}
			st, err := models.ParseStatus(args[i])
			if err != nil {
				return q, fmt.Errorf("%w: %w", errUsage, err)
			}
			q.Status = st
		case "-page", "--page":
			if i+1 >= len(args) {
				return q, fmt.Errorf("%w: -page needs a value", errUsage)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 {
				return q, fmt.Errorf("%w: page must be a positive number", errUsage)
			}
			q.Page = n
			pageGiven = true
		default:
			searchGiven = true
			search = append(search, arg)
		}
	}

	if searchGiven || len(args) == 0 {
		q.Search = strings.Join(search, " ")
	}
	if !pageGiven && (q.Search != base.Search || q.Status != base.Status) {
		q.Page = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q, nil
}

// Users lists users with an optional search, status filter and page.
func (a *App) Users(ctx context.Context, args []string) error {
	if _, err := a.require(ctx, router.PathAdmin); err != nil {
		return err
	}

	q, err := parseUserQuery(args, a.currentQuery())
	if err != nil {
		printlnFn("Usage: users [search] [-status active|inactive|all] [-page n]")
		return err
	}

	page, err := a.adminService.ListUsers(ctx, q)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}

	a.mu.Lock()
	a.query = q
	a.mu.Unlock()
	a.rememberUsers(page.Users)

	renderUsers(a.out, page, q)
	return nil
}

// Edit prompts for new values of a user shown in the last listing.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: edit <id>")
		return errUsage
	}
	if _, err := a.require(ctx, router.PathAdmin); err != nil {
		return err
	}

	u, ok := a.cachedUser(args[0])
	if !ok {
		a.notifier.Error(msgNotFound)
		return fmt.Errorf("user %s is not in the current listing", args[0])
	}

	upd := models.UpdateFrom(u)
	var err error
	if upd.Name, err = GetTextWithDefault(a.reader, "Name", upd.Name, a.out); err != nil {
		return err
	}
	if upd.Email, err = GetTextWithDefault(a.reader, "Email", upd.Email, a.out); err != nil {
		return err
	}
	role, err := GetTextWithDefault(a.reader, "Role (ADMIN/USER)", string(upd.Role), a.out)
	if err != nil {
		return err
	}
	upd.Role = models.Role(strings.ToUpper(role))
	status, err := GetTextWithDefault(a.reader, "Status (active/inactive)", string(upd.Status), a.out)
	if err != nil {
		return err
	}
	upd.Status = models.Status(strings.ToLower(status))

	saved, err := a.adminService.UpdateUser(ctx, u.ID, upd)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}

	a.mu.Lock()
	for i := range a.users {
		if a.users[i].ID == saved.ID {
			a.users[i] = saved
		}
	}
	a.mu.Unlock()

	a.notifier.Success(msgUserUpdated)
	return nil
}

// Delete removes a user after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <id>")
		return errUsage
	}
	if _, err := a.require(ctx, router.PathAdmin); err != nil {
		return err
	}

	ok, err := GetConfirmation(a.reader, "Are you sure you want to delete this user?", a.out)
	if err != nil || !ok {
		return err
	}

	id := args[0]
	if err := a.adminService.DeleteUser(ctx, id); err != nil {
		a.handleError(ctx, err)
		return err
	}

	a.mu.Lock()
	kept := a.users[:0]
	for _, u := range a.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	a.users = kept
	a.mu.Unlock()

	a.notifier.Success(msgUserDeleted)
	return nil
}
