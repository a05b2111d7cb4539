// Package wire provides dependency injection for the freightdesk
// application. It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	cliadapter "github.com/example/freightdesk/internal/adapters/cli"
	"github.com/example/freightdesk/internal/adapters/sqlite"
	"github.com/example/freightdesk/internal/app"
	"github.com/example/freightdesk/internal/config"
	"github.com/example/freightdesk/internal/core/editlock"
	"github.com/example/freightdesk/internal/db"
	"github.com/example/freightdesk/internal/identity"
	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/ports/secondary"
)

var (
	cfg             *config.Config
	sessions        *identity.Manager
	lockManager     *editlock.Manager
	shipmentService primary.ShipmentService
	ruleService     primary.CommissionRuleService
	reportService   primary.ReportService
	userService     primary.UserService
	auditService    primary.AuditService
	once            sync.Once
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Sessions returns the singleton session manager used by the login,
// logout and whoami commands.
func Sessions() *identity.Manager {
	once.Do(initServices)
	return sessions
}

// LockManager returns the singleton edit lock manager.
func LockManager() *editlock.Manager {
	once.Do(initServices)
	return lockManager
}

// ShipmentService returns the singleton ShipmentService instance.
func ShipmentService() primary.ShipmentService {
	once.Do(initServices)
	return shipmentService
}

// RuleService returns the singleton CommissionRuleService instance.
func RuleService() primary.CommissionRuleService {
	once.Do(initServices)
	return ruleService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// AuditService returns the singleton AuditService instance.
func AuditService() primary.AuditService {
	once.Do(initServices)
	return auditService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	shipmentRepo := sqlite.NewShipmentRepository(database)
	ruleRepo := sqlite.NewCommissionRuleRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	auditLog := sqlite.NewAuditLog(database)

	// Locks live in the database so exclusion holds across terminals.
	lockManager = editlock.NewManager(sqlite.NewLockStore(database))

	sessions = identity.NewManager(cfg.Home, time.Duration(cfg.SessionTTLHours)*time.Hour)
	var who secondary.IdentityProvider = sessions

	// Services (primary ports implementation)
	shipmentService = app.NewShipmentService(shipmentRepo, lockManager, who, auditLog)
	ruleService = app.NewCommissionRuleService(ruleRepo, settingsRepo, who, auditLog)
	reportService = app.NewReportService(shipmentRepo, ruleRepo, userRepo, settingsRepo)
	userService = app.NewUserService(userRepo, who, auditLog)
	auditService = app.NewAuditService(auditLog)
}

// ShipmentAdapter returns a new ShipmentAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ShipmentAdapter() *cliadapter.ShipmentAdapter {
	return ShipmentAdapterWithOutput(os.Stdout)
}

// ShipmentAdapterWithOutput returns a new ShipmentAdapter writing to
// the given output. This variant allows testing or alternate output
// destinations.
func ShipmentAdapterWithOutput(out io.Writer) *cliadapter.ShipmentAdapter {
	once.Do(initServices)
	return cliadapter.NewShipmentAdapter(shipmentService, out)
}

// RuleAdapter returns a new RuleAdapter writing to stdout.
func RuleAdapter() *cliadapter.RuleAdapter {
	once.Do(initServices)
	return cliadapter.NewRuleAdapter(ruleService, os.Stdout)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(reportService, os.Stdout)
}

// UserAdapter returns a new UserAdapter writing to stdout.
func UserAdapter() *cliadapter.UserAdapter {
	once.Do(initServices)
	return cliadapter.NewUserAdapter(userService, os.Stdout)
}

// AuditAdapter returns a new AuditAdapter writing to stdout.
func AuditAdapter() *cliadapter.AuditAdapter {
	once.Do(initServices)
	return cliadapter.NewAuditAdapter(auditService, os.Stdout)
}
