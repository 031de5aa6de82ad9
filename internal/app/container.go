package app

import (
	"context"
	"log"
	"time"

	"talentflow/internal/config"
	"talentflow/internal/database"
	"talentflow/internal/database/migration"
	dbpostgres "talentflow/internal/database/postgres"
	"talentflow/internal/infrastructure/cache"
	"talentflow/internal/infrastructure/directory"
	"talentflow/internal/infrastructure/resumestore"
	"talentflow/internal/interview"
	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/repository"
	"talentflow/internal/usecase"
	"talentflow/internal/ws"

	"github.com/google/uuid"
)

// Container wires configuration into the live dependency graph: the
// database, the repositories, every usecase, and the session machinery.
type Container struct {
	Config config.Config
	DB     database.DB

	Requisitions usecase.RequisitionUsecase
	Applications usecase.ApplicationUsecase
	Scoring      usecase.ScoringUsecase
	Assessments  usecase.AssessmentUsecase
	Interviews   usecase.InterviewUsecase

	Sessions *interview.Manager
	Hub      *ws.Hub

	logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		db.Close()
		return nil, err
	}

	reqRepo := repository.NewPostgresRequisitionRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	asmRepo := repository.NewPostgresAssessmentRepository(db)
	slotRepo := repository.NewPostgresInterviewRepository(db)

	resumes := resumestore.NewStore(cfg.Resumes.Dir)
	scoreCache := cache.NewRedis(cache.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		TTL:      cfg.Redis.TTL,
	}, logger)

	var questions questiongen.Source = questiongen.NewBank(time.Now().UnixNano())
	if cfg.OpenAI.APIKey != "" {
		questions = questiongen.NewOpenAISource(cfg.OpenAI.APIKey, cfg.OpenAI.Model, questions, logger)
	}

	dir := directory.NewClient(cfg.Directory.BaseURL, logger)

	requisitions := usecase.NewRequisitionUsecase(reqRepo, logger)
	applications := usecase.NewApplicationUsecase(appRepo, reqRepo, cfg.Sourcing.Workers, logger)
	scoring := usecase.NewScoringUsecase(appRepo, reqRepo, resumes, scoreCache, logger)
	assessments := usecase.NewAssessmentUsecase(asmRepo, appRepo, reqRepo, questions, logger)
	interviews := usecase.NewInterviewUsecase(slotRepo, appRepo, dir, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	sessions := interview.NewManager(
		appRepo,
		reqRepo,
		questions,
		applications,
		&warningSink{slots: slotRepo},
		func() interview.SignalSource { return interview.RandomTicker{} },
		logger,
	)

	return &Container{
		Config:       cfg,
		DB:           db,
		Requisitions: requisitions,
		Applications: applications,
		Scoring:      scoring,
		Assessments:  assessments,
		Interviews:   interviews,
		Sessions:     sessions,
		Hub:          hub,
		logger:       logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Sessions != nil {
		c.Sessions.CloseAll()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// warningSink persists proctoring warnings through the interview
// repository.
type warningSink struct {
	slots repository.InterviewRepository
}

func (s *warningSink) Record(ctx context.Context, sessionID, applicationID uuid.UUID, w interview.Warning) error {
	return s.slots.RecordWarning(ctx, repository.InterviewWarning{
		ID:            uuid.New(),
		SessionID:     sessionID,
		ApplicationID: applicationID,
		Kind:          w.Kind,
		Message:       w.Message,
		RaisedAt:      w.At,
	})
}
