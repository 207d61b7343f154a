// Package message renders announcements as Telegram MarkdownV2 text.
package message

import (
	"strings"

	"announcer/internal/domain"
	"announcer/internal/markdown"
)

// Announcement renders a for subscribers of unitName. Date, summary and link
// lines are present only when the corresponding field is set.
func Announcement(unitName string, a domain.Announcement) string {
	var b strings.Builder

	b.WriteString("🔔 *Yeni Duyuru \\- ")
	b.WriteString(markdown.EscapeV2(unitName))
	b.WriteString("*\n\n")

	b.WriteString("📢 *")
	b.WriteString(markdown.EscapeV2(a.Title))
	b.WriteString("*\n")

	if date := strings.TrimSpace(a.Date); date != "" {
		b.WriteString("📅 Tarih: ")
		b.WriteString(markdown.EscapeV2(date))
		b.WriteString("\n")
	}

	if summary := strings.TrimSpace(a.Summary); summary != "" {
		b.WriteString("\n📝 ")
		b.WriteString(markdown.EscapeV2(summary))
		b.WriteString("\n")
	}

	if link := strings.TrimSpace(a.Link); link != "" {
		b.WriteString("\n🔗 ")
		b.WriteString(markdown.Link("Duyuruyu Oku", link))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Notice escapes a short plain user notice.
func Notice(text string) string {
	return markdown.EscapeV2(text)
}
