package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/logging"
)

const helpText = `Команди власника:
/adminchat [id], /userchat [id], /logchannel [id], /noteschannel [id], /testchannel [id] - прив'язати чат (без аргументу - показати поточний)
/deltimer <1-60> - час життя службових повідомлень, сек
/ban, /unban, /mute, /unmute, /blacklist <@user|id> [причина]
/blocksay, /unblocksay <@user|id>
/addb <@user|id> <ДД.ММ[.РРРР]>, /delb, /listb, /previewb, /setbgif, /setbtext - дні народження
/note <@user|id> <текст>, /notes <@user|id>, /delnote <id>
/remindme <30m|2h|7d> <текст>, /remind <@user|id> <тривалість> <текст>
/say <текст> - надіслати в чат користувачів від імені бота
/addowner, /delowner <@user|id> - керування власниками
/stats, /backup, /restart`

const publicHelpText = `Я пересилаю повідомлення між чатами адміністраторів та користувачів.
Доступні команди: /start, /help. Решта команд доступна лише власникам бота.`

// publicCommands need no owner role.
var publicCommands = map[string]struct{}{
	"start": {},
	"help":  {},
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	isOwner := b.deps.Access.IsOwner(ctx, msg.From.ID)
	if _, public := publicCommands[cmd]; !public && !isOwner {
		metrics.IncCommand(cmd, "denied")
		b.audit(ctx, model.ActionDenied, msg.From.ID, 0, "/"+cmd)
		b.replyEphemeral(ctx, msg, "Ця команда доступна лише власникам бота.")
		return nil
	}

	var err error
	switch cmd {
	case "start":
		b.reply(ctx, msg, "Привіт! Я пересилаю повідомлення між чатами адміністраторів та користувачів. /help для довідки.")
	case "help":
		if isOwner {
			b.reply(ctx, msg, helpText)
		} else {
			b.reply(ctx, msg, publicHelpText)
		}
	case "restart":
		err = b.cmdRestart(ctx, msg)
	case "adminchat":
		err = b.cmdBindChat(ctx, msg, args, model.SettingAdminChatID, "чат адміністраторів")
	case "userchat":
		err = b.cmdBindChat(ctx, msg, args, model.SettingUserChatID, "чат користувачів")
	case "logchannel":
		err = b.cmdBindChat(ctx, msg, args, model.SettingLogChannelID, "канал логів")
	case "noteschannel":
		err = b.cmdBindChat(ctx, msg, args, model.SettingNotesChannelID, "канал нотаток")
	case "testchannel":
		err = b.cmdBindChat(ctx, msg, args, model.SettingTestChannelID, "тестовий канал")
	case "deltimer":
		err = b.cmdDelTimer(ctx, msg, args)
	case "addb":
		err = b.cmdAddBirthday(ctx, msg, args)
	case "delb":
		err = b.cmdDelBirthday(ctx, msg, args)
	case "listb":
		err = b.cmdListBirthdays(ctx, msg)
	case "previewb":
		err = b.cmdPreviewBirthday(ctx, msg)
	case "setbgif":
		err = b.cmdSetBirthdayGif(ctx, msg, args)
	case "setbtext":
		err = b.cmdSetBirthdayText(ctx, msg, args)
	case "ban":
		err = b.cmdModerate(ctx, msg, args, b.deps.Moderation.Ban, "заблоковано")
	case "unban":
		err = b.cmdUnmoderate(ctx, msg, args, b.deps.Moderation.Unban, "розблоковано")
	case "mute":
		err = b.cmdModerate(ctx, msg, args, b.deps.Moderation.Mute, "заглушено")
	case "unmute":
		err = b.cmdUnmoderate(ctx, msg, args, b.deps.Moderation.Unmute, "розглушено")
	case "blacklist":
		err = b.cmdModerate(ctx, msg, args, b.deps.Moderation.Blacklist, "додано в чорний список")
	case "blocksay":
		err = b.cmdUnmoderate(ctx, msg, args, b.deps.Moderation.BlockSay, "/say заборонено")
	case "unblocksay":
		err = b.cmdUnmoderate(ctx, msg, args, b.deps.Moderation.UnblockSay, "/say дозволено")
	case "addowner":
		err = b.cmdGrantOwner(ctx, msg, args)
	case "delowner":
		err = b.cmdRevokeOwner(ctx, msg, args)
	case "note":
		err = b.cmdNote(ctx, msg, args)
	case "notes":
		err = b.cmdNotes(ctx, msg, args)
	case "delnote":
		err = b.cmdDelNote(ctx, msg, args)
	case "remindme":
		err = b.cmdRemind(ctx, msg, args, true)
	case "remind":
		err = b.cmdRemind(ctx, msg, args, false)
	case "say":
		err = b.cmdSay(ctx, msg, args)
	case "stats":
		err = b.cmdStats(ctx, msg)
	case "backup":
		err = b.cmdBackup(ctx, msg)
	default:
		b.replyEphemeral(ctx, msg, "Невідома команда. /help для довідки.")
		metrics.IncCommand(cmd, "unknown")
		return nil
	}

	if err != nil {
		metrics.IncCommand(cmd, "error")
		b.replyEphemeral(ctx, msg, commandErrorText(err))
		logging.With(ctx, b.log).Warn().Err(err).Str("command", cmd).Msg("command failed")
		return nil
	}
	metrics.IncCommand(cmd, "ok")
	return nil
}

func (b *Bot) cmdRestart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.deps.Relay.Restart(ctx, msg.From.ID); err != nil {
		return err
	}
	b.deps.Announcer.Announce(ctx, fmt.Sprintf("Перезапуск виконано (ініціатор %d)", msg.From.ID))
	b.replyEphemeral(ctx, msg, "Перезапуск виконано, тимчасові режими скинуто.")
	return nil
}

// cmdBindChat points a settings key at the given chat ID. Without an
// argument it only reports the stored value; rebinding always takes an
// explicit ID.
func (b *Bot) cmdBindChat(ctx context.Context, msg *tgbotapi.Message, args, key, label string) error {
	if args == "" {
		st, err := b.deps.Settings.Current(ctx)
		if err != nil {
			return err
		}
		if current := st.ChatID(key); current != 0 {
			b.replyEphemeral(ctx, msg, fmt.Sprintf("Поточний %s: %d", label, current))
		} else {
			b.replyEphemeral(ctx, msg, fmt.Sprintf("Поки не налаштовано: %s. /%s <id> щоб прив'язати.", label, msg.Command()))
		}
		return nil
	}
	chatID, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: очікується числовий ID чату", domain.ErrInvalidArgument)
	}
	if err := b.deps.Settings.SetChatID(ctx, msg.From.ID, key, chatID); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("Встановлено %s: %d", label, chatID))
	return nil
}

func (b *Bot) cmdDelTimer(ctx context.Context, msg *tgbotapi.Message, args string) error {
	seconds, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("%w: /deltimer <1-60>", domain.ErrInvalidArgument)
	}
	if err := b.deps.Settings.SetDeleteTimer(ctx, msg.From.ID, seconds); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("Таймер видалення: %d сек", seconds))
	return nil
}

func (b *Bot) cmdAddBirthday(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, rest, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	date := strings.TrimSpace(rest)
	if date == "" {
		return fmt.Errorf("%w: /addb <@user|id> <ДД.ММ[.РРРР]>", domain.ErrInvalidArgument)
	}
	canonical, err := b.deps.Birthdays.Add(ctx, target, date, msg.From.ID)
	if err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("День народження %s: %s", target.DisplayName(), canonical))
	return nil
}

func (b *Bot) cmdDelBirthday(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, _, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	removed, err := b.deps.Birthdays.Remove(ctx, target.UserID)
	if err != nil {
		return err
	}
	if !removed {
		b.replyEphemeral(ctx, msg, "Запису про день народження не знайдено.")
		return nil
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("День народження %s видалено.", target.DisplayName()))
	return nil
}

func (b *Bot) cmdListBirthdays(ctx context.Context, msg *tgbotapi.Message) error {
	list, err := b.deps.Birthdays.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		b.replyEphemeral(ctx, msg, "Список днів народження порожній.")
		return nil
	}
	var sb strings.Builder
	sb.WriteString("Дні народження:\n")
	for _, bd := range list {
		name := bd.FullName
		if name == "" && bd.Username != "" {
			name = "@" + bd.Username
		}
		if name == "" {
			name = strconv.FormatInt(bd.UserID, 10)
		}
		fmt.Fprintf(&sb, "• %s: %s\n", name, bd.Date)
	}
	b.reply(ctx, msg, sb.String())
	return nil
}

// cmdPreviewBirthday renders the greeting into the test channel when one
// is bound, otherwise right here.
func (b *Bot) cmdPreviewBirthday(ctx context.Context, msg *tgbotapi.Message) error {
	chatID, err := b.deps.Birthdays.Preview(ctx, msg.Chat.ID)
	if err != nil {
		return err
	}
	if chatID != msg.Chat.ID {
		b.replyEphemeral(ctx, msg, fmt.Sprintf("Привітання надіслано в тестовий канал %d.", chatID))
	}
	return nil
}

// cmdSetBirthdayGif takes the file_id either from a replied-to animation
// or from the argument.
func (b *Bot) cmdSetBirthdayGif(ctx context.Context, msg *tgbotapi.Message, args string) error {
	fileID := args
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.Animation != nil {
		fileID = msg.ReplyToMessage.Animation.FileID
	}
	if fileID == "" {
		return fmt.Errorf("%w: відповідайте на GIF або передайте file_id", domain.ErrInvalidArgument)
	}
	if err := b.deps.Birthdays.SetGreetingGif(ctx, fileID); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, "GIF для привітань оновлено.")
	return nil
}

func (b *Bot) cmdSetBirthdayText(ctx context.Context, msg *tgbotapi.Message, args string) error {
	if args == "" {
		return fmt.Errorf("%w: /setbtext <текст привітання>", domain.ErrInvalidArgument)
	}
	if err := b.deps.Birthdays.SetGreetingText(ctx, args); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, "Текст привітання оновлено.")
	return nil
}

func (b *Bot) cmdModerate(ctx context.Context, msg *tgbotapi.Message, args string,
	action func(ctx context.Context, actor, target int64, reason string) error, done string) error {
	target, reason, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	if err := action(ctx, msg.From.ID, target.UserID, strings.TrimSpace(reason)); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("%s %s.", target.DisplayName(), done))
	return nil
}

func (b *Bot) cmdUnmoderate(ctx context.Context, msg *tgbotapi.Message, args string,
	action func(ctx context.Context, actor, target int64) error, done string) error {
	target, _, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	if err := action(ctx, msg.From.ID, target.UserID); err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("%s: %s.", target.DisplayName(), done))
	return nil
}

func (b *Bot) cmdGrantOwner(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, _, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	if err := b.deps.Access.GrantOwner(ctx, msg.From.ID, target); err != nil {
		return err
	}
	b.audit(ctx, model.ActionOwnerGranted, msg.From.ID, target.UserID, "")
	b.replyEphemeral(ctx, msg, fmt.Sprintf("%s тепер власник бота.", target.DisplayName()))
	return nil
}

func (b *Bot) cmdRevokeOwner(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, _, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	if err := b.deps.Access.RevokeOwner(ctx, msg.From.ID, target.UserID); err != nil {
		return err
	}
	b.audit(ctx, model.ActionOwnerRevoked, msg.From.ID, target.UserID, "")
	b.replyEphemeral(ctx, msg, fmt.Sprintf("%s більше не власник бота.", target.DisplayName()))
	return nil
}

func (b *Bot) cmdNote(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, text, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: /note <@user|id> <текст>", domain.ErrInvalidArgument)
	}
	author := &model.User{UserID: msg.From.ID, Username: msg.From.UserName, FullName: senderName(msg.From)}
	id, err := b.deps.Notes.Add(ctx, target.UserID, text, author)
	if err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("Нотатку #%d збережено.", id))
	return nil
}

func (b *Bot) cmdNotes(ctx context.Context, msg *tgbotapi.Message, args string) error {
	target, _, err := b.resolveTarget(ctx, msg, args)
	if err != nil {
		return err
	}
	notes, err := b.deps.Notes.List(ctx, target.UserID)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		b.replyEphemeral(ctx, msg, fmt.Sprintf("Нотаток про %s немає.", target.DisplayName()))
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Нотатки про %s:\n", target.DisplayName())
	for _, n := range notes {
		fmt.Fprintf(&sb, "#%d [%s] %s\n", n.ID, n.CreatedAt.Format("02.01.2006"), n.Text)
	}
	b.reply(ctx, msg, sb.String())
	return nil
}

func (b *Bot) cmdDelNote(ctx context.Context, msg *tgbotapi.Message, args string) error {
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: /delnote <id>", domain.ErrInvalidArgument)
	}
	deleted, err := b.deps.Notes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		b.replyEphemeral(ctx, msg, "Нотатку не знайдено.")
		return nil
	}
	b.replyEphemeral(ctx, msg, fmt.Sprintf("Нотатку #%d видалено.", id))
	return nil
}

// cmdRemind schedules a reminder. self form: /remindme <dur> <text>;
// targeted form: /remind <@user|id> <dur> <text>.
func (b *Bot) cmdRemind(ctx context.Context, msg *tgbotapi.Message, args string, self bool) error {
	targetID := msg.From.ID
	if !self {
		target, rest, err := b.resolveTarget(ctx, msg, args)
		if err != nil {
			return err
		}
		targetID = target.UserID
		args = rest
	}
	durToken, text, _ := strings.Cut(strings.TrimSpace(args), " ")
	if durToken == "" || strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: вкажіть тривалість (30m, 2h, 7d) і текст", domain.ErrInvalidArgument)
	}
	_, at, err := b.deps.Reminders.Schedule(ctx, msg.From.ID, targetID, durToken, text, msg.Chat.ID)
	if err != nil {
		return err
	}
	b.replyEphemeral(ctx, msg, "Нагадаю "+at.Format("02.01.2006 15:04"))
	return nil
}

// cmdSay posts text into the user chat under the bot's own name.
func (b *Bot) cmdSay(ctx context.Context, msg *tgbotapi.Message, args string) error {
	if args == "" {
		return fmt.Errorf("%w: /say <текст>", domain.ErrInvalidArgument)
	}
	blocked, err := b.deps.Moderation.IsSayBlocked(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if blocked {
		return domain.ErrSayBlocked
	}
	st, err := b.deps.Settings.Current(ctx)
	if err != nil {
		return err
	}
	if st.UserChatID == 0 {
		return domain.ErrChatNotConfigured
	}
	if _, err := b.client.SendText(ctx, st.UserChatID, args); err != nil {
		return err
	}
	b.audit(ctx, model.ActionSay, msg.From.ID, 0, args)
	if msg.Chat.ID != st.UserChatID {
		b.replyEphemeral(ctx, msg, "Надіслано.")
	}
	return nil
}

func (b *Bot) cmdStats(ctx context.Context, msg *tgbotapi.Message) error {
	text, err := b.deps.Stats.FormatSummary(ctx)
	if err != nil {
		return err
	}
	b.reply(ctx, msg, text)
	return nil
}

func (b *Bot) cmdBackup(ctx context.Context, msg *tgbotapi.Message) error {
	data, filename, err := b.deps.Backups.Export(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if _, err := b.client.SendDocument(ctx, msg.Chat.ID, filename, data, "Резервна копія бази"); err != nil {
		return err
	}
	b.deps.Announcer.Announce(ctx, "Створено резервну копію "+filename)
	return nil
}

// resolveTarget finds the user a command acts on: the author of the
// replied-to message when the command is a reply, otherwise the first
// argument token (@handle or numeric ID). Returns the remaining args.
func (b *Bot) resolveTarget(ctx context.Context, msg *tgbotapi.Message, args string) (*model.User, string, error) {
	if r := msg.ReplyToMessage; r != nil && r.From != nil && !r.From.IsBot {
		return &model.User{
			UserID:   r.From.ID,
			Username: r.From.UserName,
			FullName: senderName(r.From),
		}, args, nil
	}
	token, rest, _ := strings.Cut(args, " ")
	if token == "" {
		return nil, "", fmt.Errorf("%w: вкажіть @user або числовий ID", domain.ErrInvalidArgument)
	}
	u, err := b.deps.Users.Resolve(ctx, token)
	if err != nil {
		return nil, "", err
	}
	return u, strings.TrimSpace(rest), nil
}

func (b *Bot) audit(ctx context.Context, actionType string, userID, targetID int64, details string) {
	entry := &model.ActionLog{ActionType: actionType, UserID: userID, TargetUserID: targetID, Details: details}
	if err := b.deps.Actions.Append(ctx, entry); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Str("action", actionType).Msg("audit append failed")
	}
}

func commandErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Неправильні аргументи: " + strings.TrimPrefix(err.Error(), domain.ErrInvalidArgument.Error()+": ")
	case errors.Is(err, domain.ErrNotFound):
		return "Користувача не знайдено. Вкажіть @user або числовий ID."
	case errors.Is(err, domain.ErrSayBlocked):
		return "Вам заборонено користуватись /say."
	case errors.Is(err, domain.ErrNotAuthorized):
		return "Цю дію виконати не можна: власника з конфігурації відкликати неможливо."
	case errors.Is(err, domain.ErrChatNotConfigured):
		return "Чат не налаштовано. Спершу виконайте /adminchat та /userchat."
	default:
		return "Сталася помилка, спробуйте пізніше."
	}
}
