package commands

import (
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/searchcasa/scadmin/internal/config"
	"github.com/searchcasa/scadmin/internal/permission"
	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/session"
	"github.com/searchcasa/scadmin/pkg/api"
)

// app wires the pieces every command needs: configuration, the session
// store, the API client, and the permission set of the current session.
type app struct {
	cfg   *config.Config
	store session.Store
	auth  *api.AuthService
	admin *api.AdminService
	perms permission.Set

	closer io.Closer
}

// newApp builds the command wiring from the config file and the persisted
// session. Call Close when done.
func newApp() (*app, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		store, err := session.NewRedisStore(&redis.Options{
			Addr: cfg.Session.Redis.Addr,
			DB:   cfg.Session.Redis.DB,
		}, cfg.Profile)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.closer = store
	default:
		store, err := session.NewFileStore(cfg.Session.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	client, err := api.New(cfg.API.BaseURL, session.NewTokenSource(a.store))
	if err != nil {
		return nil, err
	}
	a.auth = api.NewAuthService(client)
	a.admin = api.NewAdminService(client)

	sess, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	a.perms = permission.NewSet(sess.Permissions)

	return a, nil
}

// Close releases the session store backend, if it holds a connection.
func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// language returns the effective language scope: the --language flag when
// set, the configured default otherwise.
func (a *app) language() string {
	if languageFlag != "" {
		return languageFlag
	}
	return a.cfg.Language
}

// requireLogin fails with guidance when no session is active.
func (a *app) requireLogin() error {
	sess, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !sess.Authenticated() {
		return printer.Error(
			"Not logged in",
			"This command needs an active session.",
			[]string{"Run 'scadmin login --email <email>' first"},
		)
	}
	return nil
}

// gated runs the action only when the session holds the permission. The
// gate decides between the action itself and the denial fallback; a denied
// action is never invoked.
func (a *app) gated(perm string, action func() error) error {
	run, ok := permission.Choose(a.perms, perm, action, false, nil)
	if !ok {
		return printer.Error(
			"Permission denied",
			fmt.Sprintf("Your session does not hold the %q permission.", perm),
			[]string{"Ask a platform administrator to grant it, then log in again"},
		)
	}
	return run()
}
