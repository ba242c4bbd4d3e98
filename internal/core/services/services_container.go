package services

import (
	portsrepo "github.com/groupsoftware/minhasfinancas/internal/core/ports/repositories"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Entry = NewEntryService(repos.EntryRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
