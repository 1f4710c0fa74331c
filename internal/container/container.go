package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/search"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/store"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
	"github.com/rishusinha26/portfolio-backend/pkg/identity"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
	mailtpl "github.com/rishusinha26/portfolio-backend/pkg/mailer/templates"
	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
)

// Container holds the constructed infrastructure shared by the router modules.
// Optional components are nil when their configuration is absent.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *store.Store

	Redis    *redis.Client
	Verifier identity.Verifier
	Mailer   mailer.Sender
	Files    *helpers.GCSStore
	Index    *search.ProjectIndex
	Alerts   *helpers.RabbitPublisher
	Geo      mailtpl.GeoResolver

	closers []func()
}

// New connects every configured dependency. Only the store is mandatory.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, Store: st}
	c.closers = append(c.closers, st.Close)

	c.initRedis(ctx)
	c.initIdentity(ctx)
	c.initMailer()
	c.initStorage(ctx)
	c.initSearch(ctx)
	c.initAlerts()
	if cfg.GeoLookupEnabled {
		c.Geo = &mailtpl.IPAPIResolver{Client: &http.Client{Timeout: 3 * time.Second}}
	}
	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func (c *Container) initRedis(ctx context.Context) {
	if c.Config.RedisAddr == "" || !c.Config.RateLimitEnabled {
		helpers.LogDisabled(c.Logger, "rate limiting", "REDIS_ADDR not set or RATE_LIMIT_ENABLED=false")
		metrics.SetDependencyEnabled("redis", false)
		return
	}
	rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := helpers.PingRedis(ctx, rdb, 3*time.Second); err != nil {
		// limiter fails open, keep the client so it recovers when redis does
		c.Logger.WithError(err).Warn("redis ping failed")
	}
	c.Redis = rdb
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	metrics.SetDependencyEnabled("redis", true)
}

func (c *Container) initIdentity(ctx context.Context) {
	switch c.Config.IdentityProvider {
	case "jwt":
		if c.Config.IdentityJWTSecret == "" {
			helpers.LogDisabled(c.Logger, "admin authentication", "IDENTITY_JWT_SECRET not set")
			break
		}
		c.Verifier = identity.NewJWTVerifier(c.Config.IdentityJWTSecret, 0)
	default:
		v, err := identity.NewFirebaseVerifier(ctx, identity.FirebaseCredentials{
			ProjectID:   c.Config.FirebaseProjectID,
			ClientEmail: c.Config.FirebaseClientEmail,
			PrivateKey:  c.Config.FirebasePrivateKey,
		})
		if err != nil {
			helpers.LogDisabled(c.Logger, "admin authentication", err.Error())
			break
		}
		c.Verifier = v
	}
	metrics.SetDependencyEnabled("identity", c.Verifier != nil)
}

func (c *Container) initMailer() {
	s, err := NewMailer(c.Config)
	if err != nil {
		helpers.LogDisabled(c.Logger, "email notifications", err.Error())
		metrics.SetDependencyEnabled("mail", false)
		return
	}
	c.Mailer = s
	c.Logger.WithField("provider", s.Provider()).Info("mail relay configured")
	metrics.SetDependencyEnabled("mail", true)
}

// NewMailer builds the relay selected by MAIL_PROVIDER.
func NewMailer(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.MailProvider {
	case "none", "":
		return nil, fmt.Errorf("%w: MAIL_PROVIDER=none", mailer.ErrNotConfigured)
	case "mailgun":
		mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		if err != nil {
			return nil, err
		}
		return mg, nil
	}
	smtpCfg := mailer.GmailConfig(cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPTimeout)
	if cfg.MailProvider != "gmail" {
		smtpCfg = mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Secure:   cfg.SMTPSecure,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			Timeout:  cfg.SMTPTimeout,
		}
	}
	s, err := mailer.NewSMTP(smtpCfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Container) initStorage(ctx context.Context) {
	if c.Config.GCSBucket == "" {
		helpers.LogDisabled(c.Logger, "file uploads", "GCS_BUCKET not set")
		metrics.SetDependencyEnabled("gcs", false)
		return
	}
	client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
	if err != nil {
		helpers.LogDisabled(c.Logger, "file uploads", err.Error())
		metrics.SetDependencyEnabled("gcs", false)
		return
	}
	c.Files = &helpers.GCSStore{Client: client, Bucket: c.Config.GCSBucket}
	c.closers = append(c.closers, func() { _ = c.Files.Close() })
	metrics.SetDependencyEnabled("gcs", true)
}

func (c *Container) initSearch(ctx context.Context) {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		helpers.LogDisabled(c.Logger, "project search", "ELASTICSEARCH_ADDRS not set")
		metrics.SetDependencyEnabled("elasticsearch", false)
		return
	}
	es, err := helpers.NewESClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		helpers.LogDisabled(c.Logger, "project search", err.Error())
		metrics.SetDependencyEnabled("elasticsearch", false)
		return
	}
	if err := helpers.PingES(ctx, es, 3*time.Second); err != nil {
		// writes stay best-effort and search answers 503 until the cluster is back
		c.Logger.WithError(err).Warn("elasticsearch ping failed")
	}
	c.Index = search.NewProjectIndex(es, c.Config.ESProjectsIndex)
	metrics.SetDependencyEnabled("elasticsearch", true)
}

func (c *Container) initAlerts() {
	if c.Config.RabbitMQURL == "" {
		helpers.LogDisabled(c.Logger, "delivery alerts", "RABBITMQ_URL not set")
		metrics.SetDependencyEnabled("rabbitmq", false)
		return
	}
	pub, err := helpers.NewRabbitPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQAlertQueue)
	if err != nil {
		helpers.LogDisabled(c.Logger, "delivery alerts", err.Error())
		metrics.SetDependencyEnabled("rabbitmq", false)
		return
	}
	c.Alerts = pub
	c.closers = append(c.closers, pub.Close)
	metrics.SetDependencyEnabled("rabbitmq", true)
}
