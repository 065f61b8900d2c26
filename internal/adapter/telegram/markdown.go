package telegram

import (
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// inlinePattern matches the inline markdown produced by the section
// formatters and by the model: links, **bold**, *italic*, _italic_ and code.
var inlinePattern = regexp.MustCompile(
	`\[([^\]\n]+)\]\(([^)\s]+)\)` +
		`|\*\*([^*\n]+)\*\*` +
		`|\*([^*\n]+)\*` +
		`|_([^_\n]+)_` +
		"|`([^`\n]+)`")

var (
	urlEscaper  = strings.NewReplacer(`\`, `\\`, `)`, `\)`)
	codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")
)

// toMarkdownV2 rewrites CommonMark inline formatting into Telegram's
// MarkdownV2 and escapes everything else. Unpaired markers stay literal.
func toMarkdownV2(text string) string {
	esc := func(s string) string {
		return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, strings.ReplaceAll(s, `\`, `\\`))
	}

	var b strings.Builder
	last := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(esc(text[last:m[0]]))
		group := func(n int) string {
			return text[m[2*n]:m[2*n+1]]
		}
		switch {
		case m[2] >= 0:
			b.WriteString("[" + esc(group(1)) + "](" + urlEscaper.Replace(group(2)) + ")")
		case m[6] >= 0:
			b.WriteString("*" + esc(group(3)) + "*")
		case m[8] >= 0:
			b.WriteString("_" + esc(group(4)) + "_")
		case m[10] >= 0:
			b.WriteString("_" + esc(group(5)) + "_")
		case m[12] >= 0:
			b.WriteString("`" + codeEscaper.Replace(group(6)) + "`")
		}
		last = m[1]
	}
	b.WriteString(esc(text[last:]))
	return b.String()
}
