package notify

import (
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
)

func signupMessage(notice usecase.SignupNotice) string {
	s := notice.Signup

	var b strings.Builder
	b.WriteString("Hi " + escape(s.CaptainName) + ",\n\n")
	b.WriteString("Thanks for signing up for **" + escape(notice.LeagueName) + "**.\n\n")
	b.WriteString("- Team: " + escape(s.TeamName) + "\n")
	b.WriteString("- Division: " + escape(s.DivisionLabel()) + "\n")
	if s.TeammateName != "" {
		b.WriteString("- Teammate: " + escape(s.TeammateName) + "\n")
	}
	b.WriteString("- Total due: $" + signup.FormatAmount(s.TotalFeesDue) + " via " + escape(s.PaymentMethod) + "\n")
	if notice.PaymentURL != "" {
		b.WriteString("\n[Pay now](<" + notice.PaymentURL + ">)\n")
	}
	b.WriteString("\nYour spot is confirmed once payment is received.\n")
	return b.String()
}

func escape(v string) string {
	return markdownEscaper.Replace(strings.TrimSpace(v))
}
