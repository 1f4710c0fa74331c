package templates

import (
	"context"
	"strings"
	"time"

	"github.com/rishusinha26/portfolio-backend/config"
)

// Option pattern
type Option func(*ContactData)

func WithIP(ip string) Option        { return func(d *ContactData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *ContactData) { d.UserAgent = ua } }
func WithReason(r string) Option     { return func(d *ContactData) { d.Reason = r } }
func WithMessageID(id string) Option { return func(d *ContactData) { d.MessageID = id } }

func WithTime(t time.Time) Option {
	return func(d *ContactData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func setLocation(d *ContactData, loc string) {
	if s := strings.TrimSpace(loc); s != "" {
		d.Location = s
	}
}

func WithLocation(loc string) Option {
	return func(d *ContactData) { setLocation(d, loc) }
}

// WithGeoFromIP resolves the submitter's location and, when the provider
// reports a timezone, the submission time in that zone.
func WithGeoFromIP(ctx context.Context, r GeoResolver, ip string) Option {
	return func(d *ContactData) {
		if r == nil || !PublicIP(ip) {
			return
		}
		g, err := r.Lookup(ctx, ip)
		if err != nil {
			return
		}
		setLocation(d, FormatGeo(g))
		if loc, err := time.LoadLocation(strings.TrimSpace(g.Timezone)); err == nil && g.Timezone != "" && !d.TimeAt.IsZero() {
			d.LocalTime = d.TimeAt.In(loc).Format("02 January 2006, 15:04 MST")
		}
	}
}

// NewContactData fills owner fields from config, then applies options.
func NewContactData(cfg *config.Config, name, email, subject, message string, opts ...Option) ContactData {
	d := ContactData{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,

		AppName:    cfg.AppName,
		OwnerName:  cfg.OwnerName,
		OwnerEmail: cfg.OperatorAddress(),
		OwnerPhone: cfg.OwnerPhone,
		OwnerTitle: cfg.OwnerTitle,
		SiteURL:    cfg.FrontendURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
