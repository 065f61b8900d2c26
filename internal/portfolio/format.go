package portfolio

import (
	"fmt"
	"strings"

	"portfolio-chat/internal/classify"
	"portfolio-chat/internal/domain"
)

type Section struct {
	Key   string
	Label string
}

// Sections lists the answerable sections in the order they are offered to
// visitors.
var Sections = []Section{
	{classify.SectionSummary, "Summary"},
	{classify.SectionProjects, "Projects"},
	{classify.SectionSkills, "Skills"},
	{classify.SectionTechnicalSkills, "Technical Skills"},
	{classify.SectionSoftSkills, "Soft Skills"},
	{classify.SectionWorkExperience, "Work Experience"},
	{classify.SectionEducation, "Education"},
	{classify.SectionCertifications, "Certifications"},
	{classify.SectionContact, "Contact"},
}

var QuickQuestions = []string{
	"Show me your projects",
	"What are your skills?",
	"Tell me about your AI experience",
	"Contact info",
	"Education background",
	"Download Resume",
}

// FormatSection renders one section as markdown. Unknown keys yield "".
func FormatSection(key string, p domain.Portfolio) string {
	switch key {
	case classify.SectionSummary:
		return "**Summary:**\n" + p.Summary
	case classify.SectionSkills:
		return bulletList("Skills", p.Skills)
	case classify.SectionTechnicalSkills:
		return bulletList("Technical Skills", p.TechnicalSkills)
	case classify.SectionSoftSkills:
		return bulletList("Soft Skills", p.SoftSkills)
	case classify.SectionWorkExperience:
		items := make([]string, 0, len(p.WorkExperience))
		for _, exp := range p.WorkExperience {
			details := make([]string, 0, len(exp.Details))
			for _, d := range exp.Details {
				details = append(details, "- "+d)
			}
			items = append(items, fmt.Sprintf("- **%s**, *%s* (%s)\n  %s",
				exp.Role, exp.Company, exp.Date, strings.Join(details, "\n  ")))
		}
		return "**Work Experience:**\n" + strings.Join(items, "\n\n")
	case classify.SectionProjects:
		items := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			tech := ""
			if len(proj.Tech) > 0 {
				tech = fmt.Sprintf(" _(Tech: %s)_", strings.Join(proj.Tech, ", "))
			}
			items = append(items, fmt.Sprintf("- **%s**%s\n  %s", proj.Name, tech, proj.Description))
		}
		return "**Projects:**\n" + strings.Join(items, "\n\n")
	case classify.SectionEducation:
		items := make([]string, 0, len(p.Education))
		for _, e := range p.Education {
			items = append(items, fmt.Sprintf("- **%s**\n  *%s*\n  CGPA: %s\n  Duration: %s",
				e.Degree, e.College, e.CGPA, e.Duration))
		}
		return "**Education:**\n" + strings.Join(items, "\n\n")
	case classify.SectionCertifications:
		return bulletList("Certifications", p.Certifications)
	case classify.SectionContact:
		c := p.Contact
		return "**Contact:**\n" +
			fmt.Sprintf("- Email: [%s](mailto:%s)\n", c.Email, c.Email) +
			fmt.Sprintf("- Phone: %s\n", c.Phone) +
			fmt.Sprintf("- LinkedIn: [%s](%s)\n", c.LinkedIn, c.LinkedIn) +
			fmt.Sprintf("- GitHub: [%s](%s)", c.GitHub, c.GitHub)
	}
	return ""
}

func bulletList(title string, items []string) string {
	return fmt.Sprintf("**%s:**\n- %s", title, strings.Join(items, "\n- "))
}

// FirstName is the short form of the owner's name used in conversation.
func FirstName(p domain.Portfolio) string {
	if fields := strings.Fields(p.Profile.Name); len(fields) > 0 {
		return fields[0]
	}
	return p.Profile.Name
}

// Greeting is the first assistant message of every session.
func Greeting(p domain.Portfolio) string {
	name := FirstName(p)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I am %s's personal portfolio assistant.\n\n", name)
	fmt.Fprintf(&b, "This page is your gateway to learn about %s's background, skills, projects, education, and more.\n\n", name)
	b.WriteString("You can ask me about any of the following sections:\n")
	labels := make([]string, 0, len(Sections))
	for _, s := range Sections {
		labels = append(labels, "- "+s.Label)
	}
	b.WriteString(strings.Join(labels, "\n"))
	b.WriteString("\n\nFor example, try: \"Show me your projects\" or \"What are your skills?\"")
	return b.String()
}

func ResumeOffer(p domain.Portfolio) string {
	return fmt.Sprintf("You can download %s's latest resume below.", p.Profile.Name)
}
