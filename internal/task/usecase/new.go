package usecase

import (
	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task"
	"vikunja-voice-assistant/internal/task/repository"
	pkgLog "vikunja-voice-assistant/pkg/log"
	"vikunja-voice-assistant/pkg/openai"
)

// UserProvider supplies the current assignable-user snapshot. Satisfied
// by the usercache Manager; calls must not block.
type UserProvider interface {
	CurrentUsers() []model.User
}

// Backend carries the credentials whose presence gates every resolution
// request. Values are checked per request, not at construction.
type Backend struct {
	VikunjaURL      string
	VikunjaAPIToken string
	OpenAIAPIKey    string
}

func (b Backend) complete() bool {
	return b.VikunjaURL != "" && b.VikunjaAPIToken != "" && b.OpenAIAPIKey != ""
}

type implUseCase struct {
	l        pkgLog.Logger
	llm      openai.IOpenAI
	repo     repository.VikunjaRepository
	users    UserProvider
	backend  Backend
	settings task.Settings
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	llm openai.IOpenAI,
	repo repository.VikunjaRepository,
	users UserProvider,
	backend Backend,
	settings task.Settings,
) task.UseCase {
	return &implUseCase{
		l:        l,
		llm:      llm,
		repo:     repo,
		users:    users,
		backend:  backend,
		settings: settings,
	}
}
