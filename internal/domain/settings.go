package domain

// Section names understood by the public site.
const (
	BlockHero       = "hero"
	BlockServices   = "services"
	BlockAbout      = "about"
	BlockPortfolio  = "portfolio"
	BlockHowItWorks = "howItWorks"
	BlockFAQ        = "faq"
	BlockContacts   = "contacts"
)

var BlockNames = []string{
	BlockHero, BlockServices, BlockAbout, BlockPortfolio, BlockHowItWorks, BlockFAQ, BlockContacts,
}

type Company struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slogan      string `json:"slogan"`
}

type Contacts struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Social struct {
	Telegram  string `json:"telegram"`
	WhatsApp  string `json:"whatsapp"`
	VK        string `json:"vk"`
	Instagram string `json:"instagram"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Logo struct {
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

type Form struct {
	Enabled bool `json:"enabled"`
}

// SiteSettings is the singleton site configuration. It is always replaced
// as a whole; there is no field-level merge.
type SiteSettings struct {
	Company  Company         `json:"company"`
	Contacts Contacts        `json:"contacts"`
	Social   Social          `json:"social"`
	Hero     Hero            `json:"hero"`
	Meta     Meta            `json:"meta"`
	Logo     Logo            `json:"logo"`
	Form     Form            `json:"form"`
	Blocks   map[string]bool `json:"blocks"`
}

// BlockEnabled reports whether the named public section should render.
// Sections absent from Blocks render.
func (s *SiteSettings) BlockEnabled(name string) bool {
	enabled, ok := s.Blocks[name]
	return !ok || enabled
}

// DefaultSettings is served while no settings have been saved yet.
func DefaultSettings() *SiteSettings {
	blocks := make(map[string]bool, len(BlockNames))
	for _, name := range BlockNames {
		blocks[name] = true
	}
	return &SiteSettings{
		Company: Company{Name: "Тяжёлый Профиль"},
		Logo:    Logo{Enabled: true},
		Form:    Form{Enabled: true},
		Blocks:  blocks,
	}
}
