package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/config"
	"github.com/HaRin2806/nutribot-cli/internal/logging"
	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/store"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

const commandTimeout = 30 * time.Second

// runtime bundles everything a command needs: config, the API client, local
// persistence and the logger. Built once per invocation and closed on exit.
type runtime struct {
	cfg    config.Config
	api    *client.Client
	repo   store.Repository
	log    zerolog.Logger
	closer []func() error
}

func newRuntime() (*runtime, error) {
	configPath, err := config.ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rt := &runtime{cfg: cfg}

	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath, err = config.LogPath()
		if err != nil {
			return nil, err
		}
	}
	log, closeLog, err := logging.NewFile(logPath, cfg.Logging.Level)
	if err != nil {
		log = logging.Nop()
	} else {
		rt.closer = append(rt.closer, closeLog)
	}
	rt.log = log

	credsPath, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	prefsPath, err := config.PreferencesPath()
	if err != nil {
		return nil, err
	}
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	repo, err := store.OpenRepository(store.RepositoryPaths{
		CredentialsPath: credsPath,
		PreferencesPath: prefsPath,
		DBPath:          dbPath,
	}, cfg.Storage.Backend)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	rt.repo = repo
	rt.closer = append(rt.closer, repo.Close)

	api := client.New(cfg.Server.URL)
	if cfg.Server.TimeoutSeconds > 0 {
		api.SetTimeout(time.Duration(cfg.Server.TimeoutSeconds) * time.Second)
	}
	rt.api = api
	return rt, nil
}

func (rt *runtime) Close() {
	for i := len(rt.closer) - 1; i >= 0; i-- {
		if err := rt.closer[i](); err != nil {
			rt.log.Warn().Err(err).Msg("close failed")
		}
	}
}

// loadToken installs the stored token on the client without verifying it.
func (rt *runtime) loadToken(ctx context.Context) {
	creds, err := rt.repo.Credentials().Load(ctx)
	if err != nil || creds == nil {
		return
	}
	rt.api.SetToken(creds.Token)
}

// requireAuth loads the stored token and verifies it with the server. A
// missing or rejected token clears stored credentials.
func (rt *runtime) requireAuth(ctx context.Context) (*types.User, error) {
	rt.loadToken(ctx)
	if rt.api.Token() == "" {
		return nil, fmt.Errorf("not logged in; run 'nutribot login' first")
	}
	resp, err := rt.api.VerifyToken(ctx)
	if err != nil {
		if client.IsAuthError(err) {
			_ = rt.repo.Credentials().Clear(ctx)
			return nil, fmt.Errorf("session expired; run 'nutribot login' again")
		}
		return nil, err
	}
	return resp.User, nil
}

// newManager wires the session layer for a verified user, priming the age
// preference from local storage.
func (rt *runtime) newManager(ctx context.Context, user *types.User, prompter session.AgePrompter) *session.Manager {
	manager := session.NewManager(rt.api, rt.repo.Preferences(), prompter, rt.log)
	age, err := rt.repo.Preferences().Age(ctx)
	if err != nil {
		age = 0
	}
	manager.Start(user, age)
	return manager
}
