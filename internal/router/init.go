package router

import (
	"time"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/container"
	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
	"github.com/rishusinha26/portfolio-backend/internal/router/modules"
)

// Services are the application services behind the HTTP modules.
type Services struct {
	Submissions *application.SubmissionService
	Messages    *application.MessageService
	Projects    *application.ProjectService
	Experiences *application.ExperienceService
	Uploads     *application.UploadService
	Identity    *application.IdentityService
}

// BuildServices wires the application layer from the container. Optional
// components are only assigned when present so interface fields stay nil.
func BuildServices(c *container.Container) Services {
	cfg := c.Config
	st := c.Store

	notifier := application.NewContactNotifier(c.Mailer, cfg, c.Geo)
	submissions := application.NewSubmissionService(st.Messages, notifier, c.Logger)
	submissions.OperatorTimeout = cfg.OperatorNotifyTimeout
	submissions.ConfirmationTimeout = cfg.ConfirmationNotifyTimeout
	if c.Alerts != nil {
		submissions.Alerts = c.Alerts
	}

	projects := application.NewProjectService(st.Projects, c.Logger)
	if c.Index != nil {
		projects.Index = c.Index
	}

	var files application.ObjectStore
	if c.Files != nil {
		files = c.Files
	}

	return Services{
		Submissions: submissions,
		Messages:    application.NewMessageService(st.Messages),
		Projects:    projects,
		Experiences: application.NewExperienceService(st.Experiences),
		Uploads:     application.NewUploadService(files, cfg.UploadMaxBytes),
		Identity:    application.NewIdentityService(st.Users, c.Logger),
	}
}

// AdminRequestsPerMinute caps admin calls per signed-in user.
const AdminRequestsPerMinute = 30

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	svc := BuildServices(c)

	r.Use(middleware.RateLimit(c.Redis, middleware.RateRule{
		Max:     100,
		Window:  15 * time.Minute,
		Key:     middleware.KeyByIP("api"),
		Allow:   middleware.AllowPaths("/api/health"),
		Message: "Too many requests from this IP, please try again later.",
	}))

	gate := middleware.NewAdminGate(c.Verifier, svc.Identity, c.Logger)
	gate.Limit = middleware.RateLimit(c.Redis, middleware.RateRule{
		Max:     AdminRequestsPerMinute,
		Window:  time.Minute,
		Key:     middleware.KeyByUserID(),
		Message: "Too many admin requests, please slow down.",
	})

	r.Add(modules.NewSystemModule(handlers.NewSystemHandler(cfg.AppName, cfg.AppVersion)))
	r.Add(modules.NewContactModule(handlers.NewMessageHandler(svc.Submissions, svc.Messages, c.Logger), gate, c.Redis))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects), gate))
	r.Add(modules.NewExperienceModule(handlers.NewExperienceHandler(svc.Experiences), gate))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(svc.Uploads, cfg.UploadMaxBytes), gate))
	if cfg.MetricsEnabled {
		r.Add(modules.NewMetricsModule(c.Redis))
	}
}
