package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/go-project-marketplace/config"
)

type Option func(*EmailData)

func WithIP(ip string) Option { return func(d *EmailData) { d.IP = ip } }

func WithLocation(loc string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(loc); s != "" {
			d.Location = s
		}
	}
}

func WithPurchasedAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.PurchasedAt = utc
		d.PurchasedAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithBuyer(name, email string) Option {
	return func(d *EmailData) {
		d.BuyerName = name
		d.BuyerEmail = email
	}
}

// WithProject sets the project reference and its link under AppURL.
func WithProject(id, title string) Option {
	return func(d *EmailData) {
		d.ProjectID = id
		d.ProjectTitle = title
		if d.AppURL != "" {
			d.ProjectURL = strings.TrimRight(d.AppURL, "/") + "/project/" + id
		}
	}
}

// WithAmount formats cents as a major-unit amount followed by the currency code.
func WithAmount(cents int64, currency string) Option {
	return func(d *EmailData) {
		d.Amount = fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
		AppURL:      cfg.AppURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

// NewProjectPurchasedData addresses the project author.
func NewProjectPurchasedData(cfg *config.Config, authorName, authorEmail string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ProjectPurchased, authorName, authorEmail, opts...))
}
