package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"clubbot/internal/config"
	"clubbot/internal/model"
	"clubbot/internal/permission"
	"clubbot/internal/service"
	"clubbot/internal/timeutil"

	"gopkg.in/telebot.v3"
)

// Handler holds the bot instance, the configured gate and the shared
// services.
type Handler struct {
	bot           *telebot.Bot
	cfg           config.Config
	gate          permission.Gate
	contributions *service.ContributionService
	roles         *service.RoleService
	moderation    *service.ModerationService
}

// NewHandler initializes the bot and registers all command handlers.
func NewHandler(cfg config.Config, gate permission.Gate, contributions *service.ContributionService, roles *service.RoleService, moderation *service.ModerationService) (*Handler, error) {
	pref := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	handler := &Handler{
		bot:           b,
		cfg:           cfg,
		gate:          gate,
		contributions: contributions,
		roles:         roles,
		moderation:    moderation,
	}

	handler.setupHandlers()
	return handler, nil
}

func (h *Handler) setupHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)

	h.bot.Handle("/contribute", h.handleContribute)
	h.bot.Handle("/contributions", h.handleContributions)
	h.bot.Handle("/latest", h.handleLatest)
	h.bot.Handle("/pending", h.handlePending)
	h.bot.Handle("/approve", h.handleApprove)
	h.bot.Handle("/reject", h.handleReject)

	h.bot.Handle("/warn", h.handleWarn)
	h.bot.Handle("/warnings", h.handleWarnings)
	h.bot.Handle("/clearwarnings", h.handleClearWarnings)
	h.bot.Handle("/mute", h.handleMute)
	h.bot.Handle("/unmute", h.handleUnmute)

	h.bot.Handle("/newrole", h.handleNewRole)
	h.bot.Handle("/delrole", h.handleDelRole)
	h.bot.Handle("/assign", h.handleAssign)
	h.bot.Handle("/unassign", h.handleUnassign)
	h.bot.Handle("/roles", h.handleRoles)
	h.bot.Handle("/members", h.handleMembers)
	h.bot.Handle("/myroles", h.handleMyRoles)

	h.bot.Handle("/announce", h.handleAnnounce)
}

// Start starts the bot poller.
func (h *Handler) Start() {
	h.bot.Start()
}

// membership assembles the caller's role names: their club roles, plus HR
// for the group owner and administrators. Private chats have no group
// context and yield nil, which every gated command rejects.
func (h *Handler) membership(c telebot.Context) permission.Membership {
	chat := c.Chat()
	if chat == nil || chat.Type == telebot.ChatPrivate {
		return nil
	}

	names := []string{}
	clubRoles, err := h.roles.MemberRoles(c.Sender().ID)
	if err != nil {
		log.Printf("failed to load club roles for %d: %v", c.Sender().ID, err)
	} else {
		for _, role := range clubRoles {
			names = append(names, role.Name)
		}
	}

	member, err := h.bot.ChatMemberOf(chat, c.Sender())
	if err == nil && (member.Role == telebot.Creator || member.Role == telebot.Administrator) {
		names = append(names, h.cfg.HRRoleName)
	}

	return permission.RoleSet(names)
}

func (h *Handler) handleStart(c telebot.Context) error {
	message := fmt.Sprintf("Welcome, %s! Use /contribute to submit your work to the HR team, or /help for the full command list.", c.Sender().FirstName)
	return c.Send(message)
}

func (h *Handler) handleHelp(c telebot.Context) error {
	lines := []string{
		"Member commands:",
		"/contribute <description> | <links> - submit a contribution",
		"/myroles - list your club roles",
		"",
		"Staff commands (reply to a member's message where noted):",
		"/warn <reason> - warn the member (reply)",
		"/warnings - list the member's warnings (reply)",
		"/clearwarnings [reason] - clear the member's warnings (reply)",
		"/mute <minutes> [reason] - mute the member (reply)",
		"/unmute [reason] - unmute the member (reply)",
		"/announce <type> <message> - post an announcement",
		"",
		"HR commands:",
		"/contributions [user_id] [limit] - list contributions",
		"/latest [limit] - list the latest contributions",
		"/pending - list contributions awaiting review",
		"/approve <id> - approve a contribution",
		"/reject <id> - reject a contribution",
		"/newrole <name> | <description> - create a club role",
		"/delrole <name> - delete a club role",
		"/assign <role> - assign a club role (reply)",
		"/unassign <role> - remove a club role (reply)",
		"/roles - list all club roles",
		"/members <role> - list members with a club role",
	}
	return c.Send(strings.Join(lines, "\n"))
}

func (h *Handler) handleContribute(c telebot.Context) error {
	description, links := splitPayload(c.Message().Payload)
	if description == "" {
		return c.Send("Usage: /contribute <description> | <optional links>")
	}

	username := c.Sender().Username
	if username == "" {
		username = c.Sender().FirstName
	}

	contribution, err := h.contributions.Submit(c.Sender().ID, username, description, links)
	if err != nil {
		log.Printf("failed to submit contribution: %v", err)
		return c.Send("Failed to record your contribution. Please try again.")
	}

	return c.Send(fmt.Sprintf("Thanks! Your contribution was recorded with ID %d and is awaiting HR review.", contribution.ID))
}

func (h *Handler) handleContributions(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	args := c.Args()
	var contributions []model.Contribution
	var err error
	switch len(args) {
	case 0:
		contributions, err = h.contributions.AllContributions(10)
	case 1:
		userID, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return c.Send("Usage: /contributions [user_id] [limit]")
		}
		contributions, err = h.contributions.UserContributions(userID, 10)
	default:
		userID, errUser := strconv.ParseInt(args[0], 10, 64)
		limit, errLimit := strconv.Atoi(args[1])
		if errUser != nil || errLimit != nil || limit < 1 {
			return c.Send("Usage: /contributions [user_id] [limit]")
		}
		contributions, err = h.contributions.UserContributions(userID, limit)
	}
	if err != nil {
		log.Printf("failed to list contributions: %v", err)
		return c.Send("Failed to list contributions.")
	}

	if len(contributions) == 0 {
		return c.Send("No contributions found for the given criteria.")
	}
	return c.Send(formatContributions(contributions))
}

func (h *Handler) handleLatest(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	limit := 0
	if len(c.Args()) > 0 {
		n, err := strconv.Atoi(c.Args()[0])
		if err != nil || n < 1 {
			return c.Send("Usage: /latest [limit]")
		}
		limit = n
	}

	contributions, err := h.contributions.LatestContributions(limit)
	if err != nil {
		log.Printf("failed to list latest contributions: %v", err)
		return c.Send("Failed to list contributions.")
	}
	if len(contributions) == 0 {
		return c.Send("There are no contributions yet.")
	}
	return c.Send(formatContributions(contributions))
}

func (h *Handler) handlePending(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	contributions, err := h.contributions.PendingContributions()
	if err != nil {
		log.Printf("failed to list pending contributions: %v", err)
		return c.Send("Failed to list pending contributions.")
	}
	if len(contributions) == 0 {
		return c.Send("No contributions are awaiting review.")
	}
	return c.Send(formatContributions(contributions))
}

func (h *Handler) handleApprove(c telebot.Context) error {
	return h.review(c, true)
}

func (h *Handler) handleReject(c telebot.Context) error {
	return h.review(c, false)
}

func (h *Handler) review(c telebot.Context, approve bool) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	if len(c.Args()) != 1 {
		if approve {
			return c.Send("Usage: /approve <contribution_id>")
		}
		return c.Send("Usage: /reject <contribution_id>")
	}
	id, err := strconv.ParseUint(c.Args()[0], 10, 32)
	if err != nil {
		return c.Send("Contribution ID must be a number.")
	}

	var updated *model.Contribution
	if approve {
		updated, err = h.contributions.Approve(uint(id), c.Sender().ID)
	} else {
		updated, err = h.contributions.Reject(uint(id), c.Sender().ID)
	}
	if err != nil {
		log.Printf("failed to review contribution %d: %v", id, err)
		return c.Send("Failed to update the contribution.")
	}
	if updated == nil {
		return c.Send(fmt.Sprintf("No contribution with ID %d was found.", id))
	}

	if approve {
		return c.Send(fmt.Sprintf("Contribution %d from %s has been approved.", updated.ID, updated.Username))
	}
	return c.Send(fmt.Sprintf("Contribution %d from %s has been rejected.", updated.ID, updated.Username))
}

func (h *Handler) handleWarn(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /warn <reason>.")
	}
	if target.ID == c.Sender().ID {
		return c.Send("You cannot warn yourself.")
	}
	reason := strings.TrimSpace(c.Message().Payload)
	if reason == "" {
		return c.Send("A reason is required: /warn <reason>")
	}

	warning, err := h.moderation.Warn(c.Chat().ID, target.ID, c.Sender().ID, reason)
	if err != nil {
		log.Printf("failed to record warning: %v", err)
		return c.Send("Failed to record the warning.")
	}

	h.sendModLog(fmt.Sprintf("Warning #%d: %s warned %s. Reason: %s",
		warning.ID, displayName(c.Sender()), displayName(target), reason))
	return c.Send(fmt.Sprintf("%s has been warned. Reason: %s", displayName(target), reason))
}

func (h *Handler) handleWarnings(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /warnings.")
	}

	warnings, err := h.moderation.WarningsFor(c.Chat().ID, target.ID)
	if err != nil {
		log.Printf("failed to list warnings: %v", err)
		return c.Send("Failed to list warnings.")
	}
	if len(warnings) == 0 {
		return c.Send(fmt.Sprintf("%s has no recorded warnings.", displayName(target)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Warnings for %s:\n", displayName(target))
	for _, w := range warnings {
		fmt.Fprintf(&b, "#%d at %s by moderator %d\nReason: %s\n",
			w.ID, timeutil.FormatDisplay(w.Timestamp), w.ModeratorID, w.Reason)
	}
	return c.Send(b.String())
}

func (h *Handler) handleClearWarnings(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /clearwarnings [reason].")
	}

	var reason *string
	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		reason = &payload
	}

	cleared, err := h.moderation.ClearWarnings(c.Chat().ID, target.ID, c.Sender().ID, reason)
	if err != nil {
		log.Printf("failed to clear warnings for %d: %v", target.ID, err)
		return c.Send("Failed to clear warnings.")
	}
	if cleared == 0 {
		return c.Send(fmt.Sprintf("%s has no recorded warnings.", displayName(target)))
	}

	h.sendModLog(fmt.Sprintf("%s cleared %d warning(s) for %s.", displayName(c.Sender()), cleared, displayName(target)))
	return c.Send(fmt.Sprintf("Cleared %d warning(s) for %s.", cleared, displayName(target)))
}

func (h *Handler) handleMute(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /mute <minutes> [reason].")
	}
	if target.ID == c.Sender().ID {
		return c.Send("You cannot mute yourself.")
	}

	args := c.Args()
	if len(args) == 0 {
		return c.Send("Usage: /mute <minutes> [reason]")
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes < 1 || minutes > 10080 {
		return c.Send("Duration must be between 1 and 10080 minutes.")
	}
	var reason *string
	if len(args) > 1 {
		r := strings.Join(args[1:], " ")
		reason = &r
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	err = h.bot.Restrict(c.Chat(), &telebot.ChatMember{
		User:            target,
		Rights:          telebot.NoRights(),
		RestrictedUntil: until.Unix(),
	})
	if err != nil {
		log.Printf("failed to mute %d: %v", target.ID, err)
		return c.Send("I do not have permission to mute that member.")
	}

	details := fmt.Sprintf("duration_minutes=%d", minutes)
	if _, err := h.moderation.Log(c.Chat().ID, &target.ID, c.Sender().ID, service.ActionMute, reason, &details); err != nil {
		log.Printf("failed to log mute: %v", err)
	}

	h.sendModLog(fmt.Sprintf("%s muted %s for %d minutes.", displayName(c.Sender()), displayName(target), minutes))
	return c.Send(fmt.Sprintf("%s has been muted for %d minutes.", displayName(target), minutes))
}

func (h *Handler) handleUnmute(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /unmute [reason].")
	}

	err := h.bot.Restrict(c.Chat(), &telebot.ChatMember{
		User:   target,
		Rights: telebot.NoRestrictions(),
	})
	if err != nil {
		log.Printf("failed to unmute %d: %v", target.ID, err)
		return c.Send("I do not have permission to unmute that member.")
	}

	var reason *string
	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		reason = &payload
	}
	if _, err := h.moderation.Log(c.Chat().ID, &target.ID, c.Sender().ID, service.ActionUnmute, reason, nil); err != nil {
		log.Printf("failed to log unmute: %v", err)
	}

	h.sendModLog(fmt.Sprintf("%s unmuted %s.", displayName(c.Sender()), displayName(target)))
	return c.Send(fmt.Sprintf("%s has been unmuted.", displayName(target)))
}

func (h *Handler) handleNewRole(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	name, description := splitPayload(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /newrole <name> | <optional description>")
	}

	// Pre-check for friendlier messaging; the unique index is the real
	// guarantee.
	existing, err := h.roles.RoleByName(name)
	if err != nil {
		log.Printf("failed to look up role %q: %v", name, err)
		return c.Send("Failed to create the role.")
	}
	if existing != nil {
		return c.Send(fmt.Sprintf("A role named %q already exists.", name))
	}

	role, err := h.roles.CreateRole(name, description)
	if err != nil {
		log.Printf("failed to create role %q: %v", name, err)
		return c.Send("Failed to create the role.")
	}
	return c.Send(fmt.Sprintf("Created role %q (ID %d).", role.Name, role.ID))
}

func (h *Handler) handleDelRole(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /delrole <name>")
	}

	role, err := h.roles.RoleByName(name)
	if err != nil {
		log.Printf("failed to look up role %q: %v", name, err)
		return c.Send("Failed to delete the role.")
	}
	if role == nil {
		return c.Send(fmt.Sprintf("Role %q not found.", name))
	}

	deleted, err := h.roles.DeleteRole(role.ID)
	if err != nil || !deleted {
		log.Printf("failed to delete role %q: %v", name, err)
		return c.Send("Failed to delete the role.")
	}
	return c.Send(fmt.Sprintf("Role %q has been deleted. All member assignments have been removed.", name))
}

func (h *Handler) handleAssign(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /assign <role>.")
	}
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /assign <role>")
	}

	role, err := h.roles.RoleByName(name)
	if err != nil {
		log.Printf("failed to look up role %q: %v", name, err)
		return c.Send("Failed to assign the role.")
	}
	if role == nil {
		return c.Send(fmt.Sprintf("Role %q not found.", name))
	}

	assigned, err := h.roles.IsMemberAssigned(target.ID, role.ID)
	if err != nil {
		log.Printf("failed to check assignment: %v", err)
		return c.Send("Failed to assign the role.")
	}
	if assigned {
		return c.Send(fmt.Sprintf("%s already has the role %q.", displayName(target), name))
	}

	if _, err := h.roles.AssignRole(target.ID, role.ID, c.Sender().ID); err != nil {
		log.Printf("failed to assign role %q to %d: %v", name, target.ID, err)
		return c.Send("Failed to assign the role.")
	}
	return c.Send(fmt.Sprintf("%s has been assigned the role %q.", displayName(target), name))
}

func (h *Handler) handleUnassign(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	target := replyTarget(c)
	if target == nil {
		return c.Send("Reply to the member's message with /unassign <role>.")
	}
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /unassign <role>")
	}

	role, err := h.roles.RoleByName(name)
	if err != nil {
		log.Printf("failed to look up role %q: %v", name, err)
		return c.Send("Failed to remove the role.")
	}
	if role == nil {
		return c.Send(fmt.Sprintf("Role %q not found.", name))
	}

	removed, err := h.roles.RemoveRole(target.ID, role.ID)
	if err != nil {
		log.Printf("failed to remove role %q from %d: %v", name, target.ID, err)
		return c.Send("Failed to remove the role.")
	}
	if !removed {
		return c.Send(fmt.Sprintf("%s does not have the role %q.", displayName(target), name))
	}
	return c.Send(fmt.Sprintf("%s no longer has the role %q.", displayName(target), name))
}

func (h *Handler) handleRoles(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	roles, err := h.roles.AllRoles()
	if err != nil {
		log.Printf("failed to list roles: %v", err)
		return c.Send("Failed to list roles.")
	}
	if len(roles) == 0 {
		return c.Send("No club roles have been created yet.")
	}

	var b strings.Builder
	b.WriteString("Club organizational roles:\n")
	for _, role := range roles {
		members, err := h.roles.RoleMembers(role.ID)
		if err != nil {
			log.Printf("failed to count members for role %d: %v", role.ID, err)
			continue
		}
		fmt.Fprintf(&b, "%s (ID %d) - %d member(s)", role.Name, role.ID, len(members))
		if role.Description != nil {
			fmt.Fprintf(&b, "\n  %s", *role.Description)
		}
		b.WriteString("\n")
	}
	return c.Send(b.String())
}

func (h *Handler) handleMembers(c telebot.Context) error {
	if err := h.gate.RequireHR(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}

	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /members <role>")
	}

	role, err := h.roles.RoleByName(name)
	if err != nil {
		log.Printf("failed to look up role %q: %v", name, err)
		return c.Send("Failed to list members.")
	}
	if role == nil {
		return c.Send(fmt.Sprintf("Role %q not found.", name))
	}

	memberIDs, err := h.roles.RoleMembers(role.ID)
	if err != nil {
		log.Printf("failed to list members for role %d: %v", role.ID, err)
		return c.Send("Failed to list members.")
	}
	if len(memberIDs) == 0 {
		return c.Send(fmt.Sprintf("No members have been assigned the role %q.", name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Members with role %q (%d):\n", name, len(memberIDs))
	for _, id := range memberIDs {
		fmt.Fprintf(&b, "- user %d\n", id)
	}
	return c.Send(b.String())
}

func (h *Handler) handleMyRoles(c telebot.Context) error {
	roles, err := h.roles.MemberRoles(c.Sender().ID)
	if err != nil {
		log.Printf("failed to list roles for %d: %v", c.Sender().ID, err)
		return c.Send("Failed to list your roles.")
	}
	if len(roles) == 0 {
		return c.Send("You have no assigned club roles.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your club roles (%d):\n", len(roles))
	for _, role := range roles {
		fmt.Fprintf(&b, "- %s", role.Name)
		if role.Description != nil {
			fmt.Fprintf(&b, ": %s", *role.Description)
		}
		b.WriteString("\n")
	}
	return c.Send(b.String())
}

func (h *Handler) handleAnnounce(c telebot.Context) error {
	if err := h.gate.RequireStaff(h.membership(c)); err != nil {
		return c.Send(err.Error())
	}
	if h.cfg.AnnounceChatID == 0 {
		return c.Send("No announcement chat is configured.")
	}

	args := c.Args()
	if len(args) < 2 {
		return c.Send("Usage: /announce <general|event|important|update|reminder|welcome> <message>")
	}
	kind := strings.ToLower(args[0])
	message := strings.Join(args[1:], " ")
	if len(message) > 2000 {
		return c.Send("The announcement message is too long. Maximum length is 2000 characters.")
	}

	text := fmt.Sprintf("%s\n\n%s\n\nAnnounced by %s", announcementTitle(kind), message, displayName(c.Sender()))
	if _, err := h.bot.Send(&telebot.Chat{ID: h.cfg.AnnounceChatID}, text); err != nil {
		log.Printf("failed to send announcement: %v", err)
		return c.Send("Failed to send the announcement.")
	}
	return c.Send("Announcement sent.")
}

// sendModLog mirrors a moderation action to the configured log chat.
// Failures are logged and otherwise ignored so a broken log chat never
// breaks commands.
func (h *Handler) sendModLog(text string) {
	if h.cfg.LogChatID == 0 {
		return
	}
	if _, err := h.bot.Send(&telebot.Chat{ID: h.cfg.LogChatID}, text); err != nil {
		log.Printf("failed to send mod log: %v", err)
	}
}
