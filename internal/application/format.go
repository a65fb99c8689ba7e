package application

import (
	"fmt"
	"strings"

	"telegram-lookup-bot/internal/domain/model"
)

// formatRecordBlock renders one lookup record as the scan-style block the bot
// has always sent. Empty fields are skipped.
func formatRecordBlock(rec model.LookupRecord, idx int) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("⚡ SCAN INITIATED: RECORD %d ⚡", idx))
	lines = append(lines, "┌─────────────────────────┐")
	if v := strings.TrimSpace(rec.Name); v != "" {
		lines = append(lines, "│ 👤 Name         : "+strings.ToUpper(v))
	}
	if v := strings.TrimSpace(rec.Mobile); v != "" {
		lines = append(lines, "│ 📞 Phone        : "+v)
	}
	if v := strings.TrimSpace(rec.AltMobile); v != "" {
		lines = append(lines, "│ 📱 Alt Phone    : "+v)
	}
	if v := strings.TrimSpace(rec.FatherName); v != "" {
		lines = append(lines, "│ 👴 Father's Name: "+v)
	}
	if v := strings.TrimSpace(rec.Circle); v != "" {
		lines = append(lines, "│ 🔴 Circle       : "+v)
	}
	if v := strings.TrimSpace(rec.IDNumber); v != "" {
		lines = append(lines, "│ 🆔 ID           : "+v)
	}
	if v := strings.TrimSpace(rec.Address); v != "" {
		lines = append(lines, "│ 🏠 Address      : "+v)
	}
	if v := strings.TrimSpace(rec.Email); v != "" {
		lines = append(lines, "│ ✉️ Email        : "+v)
	}
	lines = append(lines, "└─────────────────────────┘")
	lines = append(lines, "✅ SCAN COMPLETE")
	return strings.Join(lines, "\n")
}
