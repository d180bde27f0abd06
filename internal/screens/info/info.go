package info

import (
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>`)
	itemTag  = regexp.MustCompile(`(?i)<li>`)
	boldTag  = regexp.MustCompile(`(?i)</?strong>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
)

// plain turns the small amount of HTML in the translation tables into
// markdown the document renderer understands.
func plain(s string) string {
	s = itemTag.ReplaceAllString(s, "\n- ")
	s = boldTag.ReplaceAllString(s, "**")
	s = breakTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// InfoScreen shows one of the static about, privacy or contact pages.
type InfoScreen struct {
	env   *screen.Env
	page  navigator.InfoPage
	pager components.Pager
}

var _ screen.Screen = (*InfoScreen)(nil)
var _ screen.KeyHintProvider = (*InfoScreen)(nil)

// New creates an InfoScreen for page.
func New(env *screen.Env, page navigator.InfoPage) *InfoScreen {
	return &InfoScreen{env: env, page: page}
}

func (s *InfoScreen) Init() tea.Cmd {
	return nil
}

func (s *InfoScreen) Title() string {
	switch s.page {
	case navigator.InfoPrivacy:
		return s.env.T("privacyPolicy.title")
	case navigator.InfoContact:
		return s.env.T("contactPage.title")
	default:
		return s.env.T("footer.about")
	}
}

func (s *InfoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.env.T("app.keys.navigate")},
		{Key: "b", Description: s.env.T("app.keys.back")},
	}
}

func (s *InfoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "b" {
		s.env.Ctrl.NavigateHome()
		return s, screen.Sync
	}
	s.pager.Update(msg)
	return s, nil
}

// Markdown renders the page content for the current locale.
func (s *InfoScreen) Markdown() string {
	t := s.env.T
	var b strings.Builder
	section := func(title, body string) {
		b.WriteString("## " + title + "\n\n" + plain(body) + "\n\n")
	}

	switch s.page {
	case navigator.InfoPrivacy:
		b.WriteString("# " + t("privacyPolicy.title") + "\n\n")
		b.WriteString(t("privacyPolicy.lastUpdated") + "\n\n")
		for _, k := range []string{"introduction", "informationWeCollect", "howWeUseInfo", "dataSharing", "dataSecurity", "yourRights", "changes", "contact"} {
			section(t("privacyPolicy."+k+".title"), t("privacyPolicy."+k+".content"))
		}
	case navigator.InfoContact:
		b.WriteString("# " + t("contactPage.title") + "\n\n")
		b.WriteString(t("contactPage.subtitle") + "\n\n")
		section(t("contactPage.addressTitle"), t("contactPage.address"))
		section(t("contactPage.phoneTitle"), t("contactPage.phone"))
		section(t("contactPage.emailTitle"), t("contactPage.email"))
		b.WriteString(t("contactPage.note") + "\n")
	default:
		b.WriteString("# " + t("about.title") + "\n\n")
		b.WriteString(t("about.subtitle") + "\n\n")
		section(t("about.mission.title"), t("about.mission.description"))
		section(t("about.whoWeAre.title"), t("about.whoWeAre.description1")+"\n"+t("about.whoWeAre.description2"))
		section(t("about.technology.title"), t("about.technology.description1")+"\n"+t("about.technology.description2"))
		b.WriteString("## " + t("features.title") + "\n\n")
		for _, k := range []string{"aiPowered", "govRecognized", "clearDashboard", "jobInsights", "multilingual", "reliablePlatform", "dataSafe"} {
			b.WriteString("- **" + t("features."+k+".title") + "** " + t("features."+k+".description") + "\n")
		}
	}
	return b.String()
}

func (s *InfoScreen) View(width, height int) string {
	lines := components.RenderMarkdown(s.Markdown(), components.ContentWidth(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, s.pager.View(lines, height))
}
