package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/usecase"
)

// BotFacade composes usecases into high-level bot commands.
// Facade methods return ready-to-send strings so the Telegram adapter just
// forwards them to the chat; all user-facing wording lives here, not in the
// core usecases.
type BotFacade struct {
	LedgerUC  usecase.LedgerUseCase
	CodeUC    usecase.CodeUseCase
	LookupUC  usecase.LookupUseCase
	Policy    *usecase.AccessPolicy
	DailyFree int64
}

func NewBotFacade(ledgerUC usecase.LedgerUseCase, codeUC usecase.CodeUseCase, lookupUC usecase.LookupUseCase, policy *usecase.AccessPolicy, dailyFree int64) *BotFacade {
	return &BotFacade{
		LedgerUC:  ledgerUC,
		CodeUC:    codeUC,
		LookupUC:  lookupUC,
		Policy:    policy,
		DailyFree: dailyFree,
	}
}

// HandleStart returns the welcome text.
func (b *BotFacade) HandleStart() string {
	return fmt.Sprintf(
		"👋 *Welcome!* I look up mobile numbers with detailed info.\n\n"+
			"💡 *How to use:*\n"+
			"• `/num <number>` - Lookup a mobile number (10 or 12 digits)\n"+
			"• `/credits` - Check your remaining credits\n"+
			"• `/redeem <code>` - Redeem a credit code\n\n"+
			"🛡️ Admins can use `/code <amount>` to generate redeem codes and `/codes` to view them.\n\n"+
			"⚡ *Note:* Non-admins get *%d free credits* per day.",
		b.DailyFree)
}

// HandleCredits applies the daily grant if due and reports the balance.
func (b *BotFacade) HandleCredits(ctx context.Context, tgID int64) (string, error) {
	if b.Policy.IsPrivileged(tgID) {
		return "You are an *ADMIN* — unlimited usage.", nil
	}
	balance, err := b.LedgerUC.GrantDailyIfDue(ctx, tgID)
	if err != nil {
		return "", fmt.Errorf("grant daily credits: %w", err)
	}
	return fmt.Sprintf("Your credits: %d (Daily free credits: %d)", balance, b.DailyFree), nil
}

// HandleRedeem redeems a code for the user and maps domain errors to chat text.
func (b *BotFacade) HandleRedeem(ctx context.Context, tgID int64, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Usage: /redeem CODE", nil
	}
	amount, err := b.CodeUC.Redeem(ctx, code, tgID)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Code applied. You received %d credits.", amount), nil
	case errors.Is(err, domain.ErrCodeNotFound):
		return "❌ Redeem failed: code not found.", nil
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		return "❌ Redeem failed: code already used.", nil
	default:
		return "", fmt.Errorf("redeem code: %w", err)
	}
}

// HandleIssueCode creates a redeem code for a privileged issuer.
func (b *BotFacade) HandleIssueCode(ctx context.Context, issuer int64, amountArg string) (string, error) {
	amount, convErr := strconv.ParseInt(strings.TrimSpace(amountArg), 10, 64)
	if convErr != nil || amount <= 0 {
		return "Provide a positive integer amount. Example: /code 100", nil
	}
	rc, err := b.CodeUC.Issue(ctx, amount, issuer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return "Provide a positive integer amount. Example: /code 100", nil
		}
		return "", fmt.Errorf("issue code: %w", err)
	}
	return fmt.Sprintf("✅ Code created: `%s`\nAmount: %d\nNote: one-time use only.", rc.Code, rc.Amount), nil
}

// HandleListCodes returns one line per code, newest first.
func (b *BotFacade) HandleListCodes(ctx context.Context, limit int) (string, error) {
	codes, err := b.CodeUC.List(ctx, limit)
	if err != nil {
		return "", fmt.Errorf("list codes: %w", err)
	}
	if len(codes) == 0 {
		return "No codes found.", nil
	}
	var sb strings.Builder
	for _, c := range codes {
		used := "UNUSED"
		if c.Used() {
			used = fmt.Sprintf("USED by %d at %s", *c.UsedBy, c.UsedAt.Format("2006-01-02 15:04:05"))
		}
		sb.WriteString(fmt.Sprintf("%s | %d credits | created_by:%d | %s\n", c.Code, c.Amount, c.CreatedBy, used))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// HandleLookup validates the number, runs the metered lookup and formats the
// result blocks plus a footer with the remaining balance.
func (b *BotFacade) HandleLookup(ctx context.Context, tgID int64, rawNum string) (string, error) {
	digits := keepDigits(rawNum)
	if len(digits) != 10 && len(digits) != 12 {
		return "Please provide a 10 or 12 digit mobile number (e.g., 7986782429).", nil
	}

	res, err := b.LookupUC.Lookup(ctx, tgID, digits)
	switch {
	case err == nil:
		// fall through to formatting
	case errors.Is(err, domain.ErrNoResults):
		return "❌ NO RESULT FOUND", nil
	case errors.Is(err, domain.ErrInsufficientCredits):
		var ice *domain.InsufficientCreditsError
		balance := int64(0)
		if errors.As(err, &ice) {
			balance = ice.Balance
		}
		return fmt.Sprintf("❌ You have insufficient credits (%d). Redeem a code or wait for daily top-up.", balance), nil
	default:
		return "", fmt.Errorf("lookup %s: %w", digits, err)
	}

	var sb strings.Builder
	for i, rec := range res.Records {
		sb.WriteString(formatRecordBlock(rec, i+1))
		sb.WriteString("\n\n")
	}
	if res.Privileged {
		sb.WriteString("Unlimited usage (ADMIN).")
	} else {
		sb.WriteString(fmt.Sprintf("Remaining credits: %d", res.Remaining))
	}
	return sb.String(), nil
}

func keepDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
