package bot

import (
	"fmt"
	"strings"

	"clubbot/internal/model"
	"clubbot/internal/timeutil"

	"gopkg.in/telebot.v3"
)

// splitPayload splits a command payload of the form "first | second" and
// returns the trimmed halves; the second half is nil when absent.
func splitPayload(payload string) (string, *string) {
	parts := strings.SplitN(payload, "|", 2)
	first := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return first, nil
	}
	second := strings.TrimSpace(parts[1])
	if second == "" {
		return first, nil
	}
	return first, &second
}

// replyTarget returns the sender of the replied-to message, or nil when
// the command was not issued as a reply.
func replyTarget(c telebot.Context) *telebot.User {
	message := c.Message()
	if message == nil || message.ReplyTo == nil {
		return nil
	}
	return message.ReplyTo.Sender
}

func displayName(u *telebot.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}

func statusLabel(c model.Contribution) string {
	switch {
	case c.Approved:
		return "approved"
	case c.Status == model.StatusPending:
		return "pending"
	default:
		return "rejected"
	}
}

func formatContributions(contributions []model.Contribution) string {
	var b strings.Builder
	for _, contribution := range contributions {
		fmt.Fprintf(&b, "#%d [%s] %s (%s) at %s\n%s\n",
			contribution.ID,
			statusLabel(contribution),
			contribution.Username,
			fmt.Sprintf("user %d", contribution.UserID),
			timeutil.FormatDisplay(contribution.Timestamp),
			contribution.Description,
		)
		if contribution.Links != nil {
			fmt.Fprintf(&b, "Links: %s\n", *contribution.Links)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func announcementTitle(kind string) string {
	switch kind {
	case "event":
		return "🎉 Event Announcement"
	case "important":
		return "⚠️ Important Announcement"
	case "update":
		return "🔄 Update Announcement"
	case "reminder":
		return "⏰ Reminder"
	case "welcome":
		return "👋 Welcome Announcement"
	default:
		return "📢 General Announcement"
	}
}
