package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edutrack/apps/api/echo"
	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/auth"
	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/notification"
	"github.com/trezcool/edutrack/core/progress"
	"github.com/trezcool/edutrack/core/session"
	"github.com/trezcool/edutrack/core/standard"
	"github.com/trezcool/edutrack/core/user"
	"github.com/trezcool/edutrack/services/email"
	"github.com/trezcool/edutrack/services/logger"
	"github.com/trezcool/edutrack/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	defer logger.Close()

	// set up DB
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	usrRepo := inmemdb.NewUserRepository(db)
	lessonRepo := inmemdb.NewLessonRepository(db)

	// set up services
	mailSvc := emailsvc.NewService(logger, conf)
	notifSvc := notification.NewService(inmemdb.NewNotificationRepository(db))
	usrSvc := user.NewService(usrRepo, notifSvc, mailSvc, logger, conf)
	stdSvc := standard.NewService(inmemdb.NewStandardRepository(db))
	progressSvc := progress.NewService(inmemdb.NewProgressRepository(db), stdSvc, lessonRepo, usrSvc)
	lessonSvc := lesson.NewService(lessonRepo, usrSvc, progressSvc, logger)
	gate := auth.NewGate(session.NewRegistry(conf.Server.SessionLifetime), usrSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	cat, err := standard.ReadCatalogFile(conf.Standards.CatalogFile)
	if err != nil {
		logger.Fatal(fmt.Sprintf("reading standards catalog: %v", err), err)
	}
	loaded, err := stdSvc.LoadCatalog(cat)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading standards catalog: %v", err), err)
	}
	logger.Info(fmt.Sprintf("%d standards loaded", loaded))

	if err = seed(conf, usrSvc, notifSvc); err != nil {
		logger.Fatal(fmt.Sprintf("seeding users: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewInt("standards").Set(int64(loaded))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Gate:        gate,
			UserSvc:     usrSvc,
			StandardSvc: stdSvc,
			LessonSvc:   lessonSvc,
			ProgressSvc: progressSvc,
			NotifSvc:    notifSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
