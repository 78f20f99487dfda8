package app

import (
	"github.com/doeshing/ivyrun/internal/application/doctor"
	"github.com/doeshing/ivyrun/internal/application/supervisor"
	"github.com/doeshing/ivyrun/internal/infrastructure/config"
	"github.com/doeshing/ivyrun/internal/infrastructure/history"
	"github.com/doeshing/ivyrun/internal/infrastructure/probe"
	"github.com/doeshing/ivyrun/internal/infrastructure/proc"
	"github.com/doeshing/ivyrun/internal/infrastructure/task"
	"github.com/doeshing/ivyrun/internal/pkg/logger"
	"github.com/doeshing/ivyrun/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Supervisor     *supervisor.Service
	DoctorService  *doctor.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	HistoryStore   *history.SQLiteStore
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. configPath overrides
// the default config location when non-empty.
func BuildContainer(configPath string, verbose bool) *Container {
	cfgLoader := config.NewFileLoader(configPath)
	log := logger.NewStd(verbose)
	historyStore := history.NewSQLiteStore()

	supervisorService := &supervisor.Service{
		ConfigProvider: cfgLoader,
		Launcher:       proc.NewExecLauncher(log),
		Probes:         probe.NewFactory(),
		Runner:         task.NewLocalRunner(),
		History:        historyStore,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider:   cfgLoader,
		History:          historyStore,
		HistoryAvailable: historyStore.Available,
	}

	return &Container{
		Supervisor:     supervisorService,
		DoctorService:  doctorService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		HistoryStore:   historyStore,
		Logger:         log,
	}
}
