package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/coldpilot/coldpilot-backend/internal/config"
	"github.com/coldpilot/coldpilot-backend/internal/controller"
	"github.com/coldpilot/coldpilot-backend/internal/db"
	"github.com/coldpilot/coldpilot-backend/internal/logging"
	"github.com/coldpilot/coldpilot-backend/internal/mailer"
	"github.com/coldpilot/coldpilot-backend/internal/middleware"
	"github.com/coldpilot/coldpilot-backend/internal/queue"
	"github.com/coldpilot/coldpilot-backend/internal/repository"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	logging.Configure(cfg.Env)
	flushSentry := logging.InitSentry(cfg.SentryDSN, cfg.Env)
	defer flushSentry()

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	userRepo := &repository.UserRepository{DB: pool}
	campaignRepo := &repository.CampaignRepository{DB: pool}
	prospectRepo := &repository.ProspectRepository{DB: pool}
	approvalRepo := &repository.ApprovalRepository{DB: pool}
	emailRepo := &repository.GeneratedEmailRepository{DB: pool}
	analyticsRepo := &repository.AnalyticsRepository{DB: pool}

	// Dispatch queue: RabbitMQ when configured, otherwise an in-process
	// queue with an inline dispatcher so approvals still go out locally.
	var dispatchQueue queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer amqpQueue.Close()
		dispatchQueue = amqpQueue
	} else {
		logrus.Warn("AMQP_URL not set, dispatching in-process")
		memQueue := queue.NewInMemoryQueue()
		sender := mailer.NewResendSender(cfg.ResendAPIKey, cfg.SendFrom)
		dispatcher := service.NewDispatcher(emailRepo, nil, sender.Send)
		memQueue.Subscribe(service.DispatchTopic, func(payload any) error {
			id, ok := payload.(int)
			if !ok {
				logrus.Warnf("invalid dispatch payload type %T", payload)
				return nil
			}
			return dispatcher.Process(context.Background(), id)
		})
		dispatchQueue = memQueue
	}

	// Services
	authService := &service.AuthService{
		UserRepo:      userRepo,
		JWTSecret:     cfg.JWTSecret,
		TokenDuration: cfg.TokenDuration,
	}
	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		ProspectRepo: prospectRepo,
	}
	approvalService := &service.ApprovalService{
		ApprovalRepo: approvalRepo,
		Analytics:    analyticsRepo,
		Queue:        dispatchQueue,
	}

	// Controllers
	authController := &controller.AuthController{AuthService: authService}
	campaignController := &controller.CampaignController{CampaignService: campaignService}
	approvalController := &controller.ApprovalController{ApprovalService: approvalService}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger)

	// Public routes
	r.Post("/auth/signup", authController.Signup)
	r.Post("/auth/signin", authController.Signin)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(cfg.JWTSecret))

		// Approval queue
		r.Get("/approval-queue/counts", approvalController.GetQueueCounts)
		r.Get("/approval-queue/emails", approvalController.ListPendingEmails)
		r.Get("/approval-queue/replies", approvalController.ListPendingReplies)

		// Outreach email transitions
		r.Post("/emails/{id}/approve", approvalController.ApproveEmail)
		r.Post("/emails/{id}/reject", approvalController.RejectEmail)
		r.Post("/emails/bulk-approve", approvalController.BulkApproveEmails)
		r.Post("/emails/bulk-reject", approvalController.BulkRejectEmails)

		// Reply draft transitions
		r.Post("/replies/{id}/approve", approvalController.ApproveReplyDraft)
		r.Post("/replies/{id}/reject", approvalController.RejectReplyDraft)
		r.Post("/replies/bulk-approve", approvalController.BulkApproveReplyDrafts)
		r.Post("/replies/bulk-reject", approvalController.BulkRejectReplyDrafts)

		// Campaigns
		r.Post("/campaigns", campaignController.CreateCampaign)
		r.Get("/campaigns", campaignController.ListCampaigns)
		r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
		r.Patch("/campaigns/{id}", campaignController.UpdateCampaign)
		r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
		r.Get("/campaigns/{id}/prospects", campaignController.ListProspects)
		r.Post("/campaigns/{id}/prospects", campaignController.AddProspect)
	})

	logrus.Infof("server running on :%s", cfg.Port)
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
