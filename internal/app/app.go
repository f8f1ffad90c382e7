package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/cli"
	"gw-converter-cli/internal/config"
	"gw-converter-cli/internal/service"
	"gw-converter-cli/internal/session"
	"gw-converter-cli/internal/storage/local"
	"gw-converter-cli/pkg/logger"
)

type App struct {
	log     *slog.Logger
	logFile *os.File
	cfg     *config.Config

	store   *session.Store
	client  *api.HTTPClient
	journal *local.Journal

	authService     service.Auth
	currencyService service.Currency
	historyService  service.History

	shell *cli.Shell
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	loggerWithFile := logger.NewLoggerWithFile(cfg.LogFile)
	log := loggerWithFile.Logger
	log.Info("инициализация приложения", slog.String("base_url", cfg.API.BaseURL))

	store, err := session.NewStore(cfg.Session.TokenFile, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки сессии: %w", err)
	}

	// Перехватчик 401/403 сбрасывает сессию до того, как ошибка дойдёт до команды.
	onInvalidate := func() {
		if err := store.Clear(); err != nil {
			log.Error("не удалось сбросить сессию", slog.String("error", err.Error()))
		}
	}
	client := api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, store, onInvalidate, log)

	journal, err := local.NewJournal(cfg.History.JournalFile)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки локального журнала: %w", err)
	}

	return &App{
		log:     log,
		logFile: loggerWithFile.LogFile,
		cfg:     cfg,
		store:   store,
		client:  client,
		journal: journal,
	}, nil
}

func (a *App) BuildAuthLayer() {
	a.authService = service.NewAuthService(a.client, a.store, a.log)
	a.log.Info("слой 'auth' собран")
}

func (a *App) BuildConverterLayer() error {
	if a.authService == nil {
		err := errors.New("authService not initialized, call BuildAuthLayer first")
		a.log.Error(err.Error())
		return err
	}

	a.currencyService = service.NewCurrencyService(a.client, a.log)
	a.historyService = service.NewHistoryService(a.client, a.log)

	a.shell = cli.NewShell(
		a.authService,
		a.currencyService,
		a.historyService,
		a.store,
		a.journal,
		a.cfg.History.PageSize,
		os.Stdin,
		os.Stdout,
		a.log,
	)

	a.log.Info("слой 'converter' собран")
	return nil
}

func (a *App) Run() error {
	if a.shell == nil {
		return errors.New("shell not initialized, call BuildConverterLayer first")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info("оболочка запускается")
	a.shell.Run(ctx)

	a.log.Info("приложение останавливается")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("ошибка при закрытии файла логов: %w", err)
		}
	}
	return nil
}
