package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
)

const chartWidth = 40

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func renderHome(w io.Writer, s session.Session) {
	fmt.Fprintln(w, "StockScope")
	fmt.Fprintln(w, "  Real-time analytics, a secure platform and market insights.")
	if u, ok := s.User(); ok {
		fmt.Fprintf(w, "  Signed in as %s. Type 'dashboard' to continue.\n", u.Email)
		return
	}
	fmt.Fprintln(w, "  Type 'login' to sign in or 'signup' to create an account.")
}

func renderProfile(w io.Writer, u models.User) {
	fmt.Fprintln(w, "Dashboard")
	tw := newTable(w)
	fmt.Fprintf(tw, "  Name\t%s\n", orDash(u.Name))
	fmt.Fprintf(tw, "  Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "  Role\t%s\n", u.Role)
	fmt.Fprintf(tw, "  Status\t%s\n", orDash(string(u.Status)))
	fmt.Fprintf(tw, "  Last login\t%s\n", orDash(u.LastLogin))
	fmt.Fprintf(tw, "  Member since\t%s\n", orDash(u.CreatedAt))
	_ = tw.Flush()
}

func renderWhoAmI(w io.Writer, s session.Session) {
	u, ok := s.User()
	if !ok {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "%s <%s> role=%s, token expires %s\n",
		orDash(u.Name), u.Email, u.Role, s.Token().ExpiresAt().Local().Format("2006-01-02 15:04:05"))
}

func renderStats(w io.Writer, st models.DashboardStats) {
	fmt.Fprintln(w, "Admin Dashboard")
	tw := newTable(w)
	fmt.Fprintf(tw, "  Total Users\t%d\t%s\n", st.UserStats.TotalUsers, st.UserStats.UserGrowth)
	fmt.Fprintf(tw, "  Active Users\t%d\t\n", st.UserStats.ActiveUsers)
	fmt.Fprintf(tw, "  New Users\t%d\t\n", st.UserStats.NewUsers)
	health := "degraded"
	if st.SystemStats.Healthy {
		health = "healthy"
	}
	fmt.Fprintf(tw, "  System\t%s\tcpu %s, memory %s, disk %s\n",
		health, orDash(st.SystemStats.CPUUsage), orDash(st.SystemStats.MemoryUsage), orDash(st.SystemStats.DiskSpace))
	_ = tw.Flush()

	if len(st.RecentActivities) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent activity")
	tw = newTable(w)
	for _, a := range st.RecentActivities {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", a.Timestamp, a.UserID, a.Action, a.Description)
	}
	_ = tw.Flush()
}

func renderUsers(w io.Writer, p models.UserPage, q models.UserQuery) {
	filter := "all"
	if q.Status != "" {
		filter = string(q.Status)
	}
	search := ""
	if q.Search != "" {
		search = fmt.Sprintf(", search %q", q.Search)
	}
	fmt.Fprintf(w, "Users (page %d/%d, %d total, status %s%s)\n", max(p.Page, 1), p.Pages(), p.Total, filter, search)

	if len(p.Users) == 0 {
		fmt.Fprintln(w, "  No users found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "  ID\tNAME\tEMAIL\tROLE\tSTATUS\tLAST LOGIN")
	for _, u := range p.Users {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", u.ID, orDash(u.Name), u.Email, u.Role, orDash(string(u.Status)), orDash(u.LastLogin))
	}
	_ = tw.Flush()
}

func renderOverview(w io.Writer, ov models.Overview, q models.UserQuery) {
	renderStats(w, ov.Stats)
	fmt.Fprintln(w)
	renderUsers(w, ov.Users, q)
}

func renderAnalytics(w io.Writer, a models.Analytics) {
	fmt.Fprintln(w, "Analytics Overview")
	tw := newTable(w)
	fmt.Fprintf(tw, "  User Growth\t%.1f%%\n", a.UserGrowth)
	fmt.Fprintf(tw, "  Active Users\t%d\n", a.ActiveUsers)
	fmt.Fprintf(tw, "  Total Users\t%d\n", a.TotalUsers)
	_ = tw.Flush()

	fmt.Fprintln(w, "User Activity")
	if len(a.UserActivity) == 0 {
		fmt.Fprintln(w, "  No activity recorded.")
		return
	}
	peak := a.MaxCount()
	tw = newTable(w)
	for _, p := range a.UserActivity {
		fmt.Fprintf(tw, "  %s\t%s\t%d\n", p.Date, bar(p.Count, peak), p.Count)
	}
	_ = tw.Flush()
}

// bar scales count against peak to at most chartWidth cells. Non-zero counts
// always get at least one cell.
func bar(count, peak int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * chartWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func renderSettings(w io.Writer, p models.Preferences) {
	fmt.Fprintln(w, "Admin Settings")
	tw := newTable(w)
	fmt.Fprintf(tw, "  Email notifications\t%s\t(set emails on|off)\n", onOff(p.EmailNotifications))
	fmt.Fprintf(tw, "  Dark mode\t%s\t(set dark on|off)\n", onOff(p.DarkMode))
	_ = tw.Flush()
}
