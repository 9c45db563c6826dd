package tools

import (
	"net/http"
	"time"

	"github.com/ajvoice/go-aj/internal/httpc"
)

// Default external endpoints and settings for the catalog.
const (
	DefaultWeatherBaseURL = "https://wttr.in"
	DefaultCurrencyAPIURL = "https://api.exchangerate.host/convert"
	DefaultStockAPIURL    = "https://query1.finance.yahoo.com/v8/finance/chart/"
	DefaultSearchAPIURL   = "https://api.duckduckgo.com/"
	DefaultSearchHTMLURL  = "https://html.duckduckgo.com/html/"
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 587
	DefaultOpenAIModel    = "gpt-3.5-turbo"
)

// Config carries the credentials, endpoints, and collaborators the tool
// catalog needs. It is data only and read-only once the catalog is
// built; construct it at startup and pass it to Catalog.
type Config struct {
	// Gmail credentials for the email tools. GmailAppPassword is an
	// App Password, not the account password.
	GmailUser        string
	GmailAppPassword string

	// OpenAIKey authorizes the coding Q&A proxy.
	OpenAIKey string

	// OpenAIBaseURL overrides the completions endpoint. Empty uses the
	// public API; tests point it at a local server.
	OpenAIBaseURL string

	// OpenAIModel is the completions model for the coding proxy.
	OpenAIModel string

	// SearchRoot is the default root for file search. Empty means the
	// user's home directory.
	SearchRoot string

	// External endpoints. Defaults reach the public services; tests
	// substitute local servers.
	WeatherBaseURL string
	CurrencyAPIURL string
	StockAPIURL    string
	SearchAPIURL   string
	SearchHTMLURL  string

	// SMTP submission endpoint for the email tools.
	SMTPHost string
	SMTPPort int

	// HTTPClient performs all outbound HTTP requests. Nil uses the
	// shared httpc client.
	HTTPClient *http.Client

	// Mailer submits built emails. Nil uses an SMTP STARTTLS sender
	// against SMTPHost:SMTPPort with the Gmail credentials.
	Mailer Mailer

	// Now returns the current time. Nil uses time.Now. Tests pin it.
	Now func() time.Time
}

// DefaultConfig returns a Config pointing at the public endpoints.
func DefaultConfig() Config {
	return Config{
		WeatherBaseURL: DefaultWeatherBaseURL,
		CurrencyAPIURL: DefaultCurrencyAPIURL,
		StockAPIURL:    DefaultStockAPIURL,
		SearchAPIURL:   DefaultSearchAPIURL,
		SearchHTMLURL:  DefaultSearchHTMLURL,
		SMTPHost:       DefaultSMTPHost,
		SMTPPort:       DefaultSMTPPort,
		OpenAIModel:    DefaultOpenAIModel,
	}
}

// withDefaults fills the zero values a caller left unset.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WeatherBaseURL == "" {
		c.WeatherBaseURL = d.WeatherBaseURL
	}
	if c.CurrencyAPIURL == "" {
		c.CurrencyAPIURL = d.CurrencyAPIURL
	}
	if c.StockAPIURL == "" {
		c.StockAPIURL = d.StockAPIURL
	}
	if c.SearchAPIURL == "" {
		c.SearchAPIURL = d.SearchAPIURL
	}
	if c.SearchHTMLURL == "" {
		c.SearchHTMLURL = d.SearchHTMLURL
	}
	if c.SMTPHost == "" {
		c.SMTPHost = d.SMTPHost
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = d.SMTPPort
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = d.OpenAIModel
	}
	if c.HTTPClient == nil {
		c.HTTPClient = httpc.Client
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Mailer == nil {
		c.Mailer = &smtpMailer{
			host:     c.SMTPHost,
			port:     c.SMTPPort,
			user:     c.GmailUser,
			password: c.GmailAppPassword,
		}
	}
	return c
}
