package todonext

import (
	"context"

	"github.com/colonyops/todonext/internal/core/doctor"
)

// DoctorService runs health checks on the todonext setup.
type DoctorService struct {
	app *App
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(app *App) *DoctorService {
	return &DoctorService{app: app}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.app.Config, configPath),
		doctor.NewListCheck(d.app.Store, autofix),
		doctor.NewArchiveCheck(d.app.archiveFiles, d.app.loadArchive),
		doctor.NewToolsCheck(d.app.Config.EditorCommand()),
	}
	return doctor.RunAll(ctx, checks)
}
