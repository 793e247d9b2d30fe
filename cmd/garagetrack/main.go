package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourorg/garagetrack/internal/auth"
	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/passhash"
	"github.com/yourorg/garagetrack/internal/repository"
	"github.com/yourorg/garagetrack/internal/service"
	"github.com/yourorg/garagetrack/internal/task"
	"github.com/yourorg/garagetrack/pkg/config"
	"github.com/yourorg/garagetrack/pkg/database"
	"github.com/yourorg/garagetrack/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "customer":
		handleCustomer(args)
	case "vehicle":
		handleVehicle(args)
	case "maint":
		handleMaintenance(args)
	case "db":
		handleDB(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// app wires the core together for one CLI invocation.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	pool     *database.ConnectionPool
	session  *auth.Session
	tokens   *auth.TokenManager
	runner   *task.Runner
	authSvc  *service.AuthService
	custSvc  *service.CustomerService
	vehSvc   *service.VehicleService
	maintSvc *service.MaintenanceService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger(cfg.LogLevel)

	pool, err := database.NewConnectionPool(context.Background(), &cfg.DB, log)
	if err != nil {
		return nil, err
	}

	var hasher passhash.Hasher = passhash.NewBcrypt(cfg.BcryptCost)
	if cfg.AllowLegacyPasswords {
		hasher = passhash.NewLegacyFallback(hasher, log)
	}

	db := pool.GetDB()
	userRepo := repository.NewPostgresUserRepository(db, log)
	regRepo := repository.NewPostgresRegistrationRepository(db, log)

	a := &app{
		cfg:      cfg,
		log:      log,
		pool:     pool,
		session:  auth.NewSession(),
		tokens:   auth.NewTokenManager(cfg.SessionSecret, "garagetrack", cfg.SessionTTL),
		runner:   task.NewRunner(log),
		authSvc:  service.NewAuthService(userRepo, regRepo, hasher, log),
		custSvc:  service.NewCustomerService(repository.NewPostgresCustomerRepository(db, log), log),
		vehSvc:   service.NewVehicleService(repository.NewPostgresVehicleRepository(db, log), log),
		maintSvc: service.NewMaintenanceService(repository.NewPostgresMaintenanceRepository(db, log), log),
	}
	a.restoreSession()
	return a, nil
}

func (a *app) close() {
	a.runner.Wait()
	a.pool.Close()
}

// run executes one unit of work off the calling goroutine and waits for its
// single terminal result, mirroring how a form action disables its button
// until the background task finishes.
func (a *app) run(name string, work func() error) error {
	errCh := make(chan error, 1)
	if !a.runner.Go(name, work, func(err error) { errCh <- err }) {
		return errors.New("İşlem devam ediyor.")
	}
	return <-errCh
}

func (a *app) restoreSession() {
	data, err := os.ReadFile(tokenFile())
	if err != nil {
		return
	}
	id, err := a.tokens.Verify(strings.TrimSpace(string(data)))
	if err != nil {
		a.log.Warn("stored session token rejected", slog.String("error", err.Error()))
		return
	}
	a.session.Set(id)
}

func (a *app) tenantID() (int64, error) {
	return a.session.TenantID()
}

// Auth commands

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: garagetrack auth <register|login|logout|who>")
		return
	}
	switch args[0] {
	case "register":
		registerTenant(args[1:])
	case "login":
		login(args[1:])
	case "logout":
		logout()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func registerTenant(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	company := fs.String("company", "", "company name")
	name := fs.String("name", "", "administrator full name")
	email := fs.String("email", "", "administrator email")
	password := fs.String("password", "", "administrator password")
	fs.Parse(args)

	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	var tenantID int64
	err = a.run("register", func() error {
		var err error
		tenantID, err = a.authSvc.RegisterTenantAndAdmin(*company, *name, *email, *password)
		return err
	})
	if err != nil {
		fmt.Printf("✗ Kayıt başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Firma kaydedildi. Tenant ID=%d\n", tenantID)
	fmt.Printf("  Giriş: garagetrack auth login -tenant %d -email %s -password ...\n", tenantID, *email)
}

func login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	tenant := fs.Int64("tenant", 0, "tenant id")
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if *tenant == 0 {
		fmt.Println("Error: tenant id is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	var identity auth.Identity
	err = a.run("login", func() error {
		var err error
		identity, err = a.authSvc.Login(*tenant, *email, *password)
		return err
	})
	if err != nil {
		fmt.Printf("✗ Giriş başarısız: %v\n", err)
		os.Exit(1)
	}

	a.session.Set(identity)
	token, err := a.tokens.Issue(identity)
	if err != nil {
		fmt.Printf("✗ Oturum kaydedilemedi: %v\n", err)
		os.Exit(1)
	}
	if err := saveToken(token); err != nil {
		fmt.Printf("✗ Oturum kaydedilemedi: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Giriş yapıldı: %s (tenant %d, rol %s)\n", identity.Email, identity.TenantID, identity.Role)
}

func logout() {
	os.Remove(tokenFile())
	fmt.Println("✓ Çıkış yapıldı.")
}

func whoAmI() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	data, err := os.ReadFile(tokenFile())
	if err != nil {
		fmt.Println("Oturum yok.")
		return
	}
	tokens := auth.NewTokenManager(cfg.SessionSecret, "garagetrack", cfg.SessionTTL)
	id, err := tokens.Verify(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Println("Oturum geçersiz. Lütfen tekrar giriş yapın.")
		return
	}
	fmt.Printf("✓ %s (tenant %d, rol %s)\n", id.Email, id.TenantID, id.Role)
}

// Customer commands

func handleCustomer(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: garagetrack customer <list|add|update|delete>")
		return
	}
	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	switch args[0] {
	case "list":
		listCustomers(a, args[1:])
	case "add":
		addCustomer(a, args[1:])
	case "update":
		updateCustomer(a, args[1:])
	case "delete":
		deleteCustomer(a, args[1:])
	default:
		fmt.Printf("unknown customer command: %s\n", args[0])
	}
}

func listCustomers(a *app, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "search text")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}

	var customers []*domain.Customer
	err = a.run("customer list", func() error {
		var err error
		customers, err = a.custSvc.List(tenantID)
		return err
	})
	if err != nil {
		fatal(err)
	}
	customers = a.custSvc.Filter(customers, *q)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAD\tSOYAD\tTELEFON\tE-POSTA")
	for _, c := range customers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, deref(c.Phone), deref(c.Email))
	}
	w.Flush()
}

func addCustomer(a *app, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone")
	email := fs.String("email", "", "email")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}

	c := &domain.Customer{
		FirstName: *first,
		LastName:  *last,
		Phone:     optional(*phone),
		Email:     optional(*email),
	}
	var id int64
	err = a.run("customer add", func() error {
		var err error
		id, err = a.custSvc.Create(tenantID, c)
		return err
	})
	if err != nil {
		fmt.Printf("✗ Ekleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Eklendi. ID=%d\n", id)
}

func updateCustomer(a *app, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "customer id")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone")
	email := fs.String("email", "", "email")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}

	c := &domain.Customer{
		ID:        *id,
		FirstName: *first,
		LastName:  *last,
		Phone:     optional(*phone),
		Email:     optional(*email),
	}
	err = a.run("customer update", func() error {
		return a.custSvc.Update(tenantID, c)
	})
	if err != nil {
		fmt.Printf("✗ Güncelleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Güncellendi.")
}

func deleteCustomer(a *app, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "customer id")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	err = a.run("customer delete", func() error {
		return a.custSvc.Delete(tenantID, *id)
	})
	if err != nil {
		fmt.Printf("✗ Silme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Silindi.")
}

// Vehicle commands

func handleVehicle(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: garagetrack vehicle <list|add|update|delete>")
		return
	}
	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	switch args[0] {
	case "list":
		listVehicles(a, args[1:])
	case "add":
		addVehicle(a, args[1:])
	case "update":
		updateVehicle(a, args[1:])
	case "delete":
		deleteVehicle(a, args[1:])
	default:
		fmt.Printf("unknown vehicle command: %s\n", args[0])
	}
}

func vehicleFlags(fs *flag.FlagSet) (plate, vin, make, model, colour, status, notes, serviceDate *string, year *int, km, customer *int64) {
	plate = fs.String("plate", "", "plate number")
	vin = fs.String("vin", "", "VIN")
	make = fs.String("make", "", "make")
	model = fs.String("model", "", "model")
	year = fs.Int("year", 0, "model year (0 = unknown)")
	colour = fs.String("colour", "", "colour")
	km = fs.Int64("km", 0, "current odometer (km)")
	status = fs.String("status", string(domain.VehicleActive), "status (ACTIVE|IN_SERVICE|ASSIGNED|INACTIVE)")
	notes = fs.String("notes", "", "free-text notes")
	serviceDate = fs.String("service-date", "", "service entry date (YYYY-MM-DD)")
	customer = fs.Int64("customer", 0, "customer id (0 = none)")
	return
}

func vehicleFromFlags(plate, vin, make, model, colour, status, notes, serviceDate string, year int, km, customer int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		PlateNo:   plate,
		VinNo:     optional(vin),
		Make:      make,
		Model:     model,
		ModelYear: year,
		Colour:    optional(colour),
		CurrentKM: km,
		Status:    domain.VehicleStatus(status),
		Notes:     optional(notes),
	}
	if customer != 0 {
		v.CustomerID = &customer
	}
	if serviceDate != "" {
		d, err := time.Parse("2006-01-02", serviceDate)
		if err != nil {
			return nil, domain.E(domain.ErrValidation, "Servis giriş tarihi geçersiz.")
		}
		v.ServiceEntryDate = &d
	}
	return v, nil
}

func listVehicles(a *app, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "search text")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}

	var vehicles []*domain.Vehicle
	err = a.run("vehicle list", func() error {
		var err error
		vehicles, err = a.vehSvc.List(tenantID)
		return err
	})
	if err != nil {
		fatal(err)
	}
	vehicles = a.vehSvc.Filter(vehicles, *q)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAKA\tMARKA\tMODEL\tYIL\tKM\tDURUM")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n", v.ID, v.PlateNo, v.Make, v.Model, v.ModelYear, v.CurrentKM, v.Status)
	}
	w.Flush()
}

func addVehicle(a *app, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	plate, vin, make, model, colour, status, notes, serviceDate, year, km, customer := vehicleFlags(fs)
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	v, err := vehicleFromFlags(*plate, *vin, *make, *model, *colour, *status, *notes, *serviceDate, *year, *km, *customer)
	if err != nil {
		fmt.Printf("✗ Ekleme başarısız: %v\n", err)
		os.Exit(1)
	}

	var id int64
	err = a.run("vehicle add", func() error {
		var err error
		id, err = a.vehSvc.Create(tenantID, v)
		return err
	})
	if err != nil {
		fmt.Printf("✗ Ekleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Eklendi. ID=%d PublicID=%s\n", id, v.PublicID)
}

func updateVehicle(a *app, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "vehicle id")
	plate, vin, make, model, colour, status, notes, serviceDate, year, km, customer := vehicleFlags(fs)
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	v, err := vehicleFromFlags(*plate, *vin, *make, *model, *colour, *status, *notes, *serviceDate, *year, *km, *customer)
	if err != nil {
		fmt.Printf("✗ Güncelleme başarısız: %v\n", err)
		os.Exit(1)
	}
	v.ID = *id

	err = a.run("vehicle update", func() error {
		return a.vehSvc.Update(tenantID, v)
	})
	if err != nil {
		fmt.Printf("✗ Güncelleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Güncellendi.")
}

func deleteVehicle(a *app, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "vehicle id")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	err = a.run("vehicle delete", func() error {
		return a.vehSvc.Delete(tenantID, *id)
	})
	if err != nil {
		fmt.Printf("✗ Silme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Silindi.")
}

// Maintenance commands

func handleMaintenance(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: garagetrack maint <list|add|update|delete>")
		return
	}
	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	switch args[0] {
	case "list":
		listMaintenance(a, args[1:])
	case "add":
		addMaintenance(a, args[1:])
	case "update":
		updateMaintenance(a, args[1:])
	case "delete":
		deleteMaintenance(a, args[1:])
	default:
		fmt.Printf("unknown maint command: %s\n", args[0])
	}
}

func listMaintenance(a *app, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	vehicleID := fs.Int64("vehicle", 0, "vehicle id (0 = all)")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}

	var records []*domain.Maintenance
	err = a.run("maint list", func() error {
		var err error
		if *vehicleID != 0 {
			records, err = a.maintSvc.History(tenantID, *vehicleID)
		} else {
			records, err = a.maintSvc.List(tenantID)
		}
		return err
	})
	if err != nil {
		fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARAÇ\tTARİH\tTÜR\tKM\tMALİYET")
	for _, m := range records {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n", m.ID, m.VehicleID, m.Date.Format("2006-01-02"), m.Type, m.OdometerKM, m.Cost.StringFixed(2))
	}
	w.Flush()
}

func maintenanceFromFlags(vehicle int64, date, typ, desc, cost string, km int) (*domain.Maintenance, error) {
	m := &domain.Maintenance{
		VehicleID:   vehicle,
		Type:        typ,
		OdometerKM:  km,
		Description: optional(desc),
		Cost:        decimal.Zero,
	}
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, domain.E(domain.ErrValidation, "Bakım tarihi geçersiz.")
		}
		m.Date = d
	}
	if cost != "" {
		c, err := decimal.NewFromString(cost)
		if err != nil {
			return nil, domain.E(domain.ErrValidation, "Maliyet geçersiz.")
		}
		m.Cost = c
	}
	return m, nil
}

func addMaintenance(a *app, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	vehicle := fs.Int64("vehicle", 0, "vehicle id")
	date := fs.String("date", "", "service date (YYYY-MM-DD)")
	typ := fs.String("type", "", "maintenance type")
	km := fs.Int("km", 0, "odometer at service time")
	desc := fs.String("desc", "", "description")
	cost := fs.String("cost", "", "cost (decimal)")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	m, err := maintenanceFromFlags(*vehicle, *date, *typ, *desc, *cost, *km)
	if err != nil {
		fmt.Printf("✗ Ekleme başarısız: %v\n", err)
		os.Exit(1)
	}

	var id int64
	err = a.run("maint add", func() error {
		var err error
		id, err = a.maintSvc.Create(tenantID, m)
		return err
	})
	if err != nil {
		fmt.Printf("✗ Ekleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Eklendi. ID=%d\n", id)
}

func updateMaintenance(a *app, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "maintenance id")
	vehicle := fs.Int64("vehicle", 0, "vehicle id")
	date := fs.String("date", "", "service date (YYYY-MM-DD)")
	typ := fs.String("type", "", "maintenance type")
	km := fs.Int("km", 0, "odometer at service time")
	desc := fs.String("desc", "", "description")
	cost := fs.String("cost", "", "cost (decimal)")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	m, err := maintenanceFromFlags(*vehicle, *date, *typ, *desc, *cost, *km)
	if err != nil {
		fmt.Printf("✗ Güncelleme başarısız: %v\n", err)
		os.Exit(1)
	}
	m.ID = *id

	err = a.run("maint update", func() error {
		return a.maintSvc.Update(tenantID, m)
	})
	if err != nil {
		fmt.Printf("✗ Güncelleme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Güncellendi.")
}

func deleteMaintenance(a *app, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "maintenance id")
	fs.Parse(args)

	tenantID, err := a.tenantID()
	if err != nil {
		fatal(err)
	}
	err = a.run("maint delete", func() error {
		return a.maintSvc.Delete(tenantID, *id)
	})
	if err != nil {
		fmt.Printf("✗ Silme başarısız: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Silindi.")
}

// DB commands

func handleDB(args []string) {
	if len(args) < 1 || args[0] != "ping" {
		fmt.Println("Usage: garagetrack db ping")
		return
	}
	a, err := newApp()
	if err != nil {
		fatal(err)
	}
	defer a.close()

	if err := a.pool.Ping(context.Background()); err != nil {
		fmt.Printf("✗ Veritabanına ulaşılamadı: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Veritabanı bağlantısı sağlıklı.")
}

// Helpers

func tokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = home
	}
	return filepath.Join(dir, "garagetrack", "session")
}

func saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(tokenFile()), 0700); err != nil {
		return err
	}
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`garagetrack - multi-tenant vehicle service tracking

Usage:
  garagetrack <command> [options]

Commands:
  auth      Authentication (register, login, logout, who)
  customer  Customer records (list, add, update, delete)
  vehicle   Vehicle records (list, add, update, delete)
  maint     Maintenance records (list, add, update, delete)
  db        Backing store checks (ping)
  help      Show this help message

Configuration (environment or .env):
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE, DB_DRIVER
  SESSION_SECRET, SESSION_TTL_HOURS, BCRYPT_COST, ALLOW_LEGACY_PASSWORDS, LOG_LEVEL

Examples:
  garagetrack auth register -company "Acme Garage" -name "Jane Doe" -email jane@acme.io -password secret1
  garagetrack auth login -tenant 1 -email jane@acme.io -password secret1
  garagetrack vehicle add -plate "34ABC123" -make Renault -model Clio -year 2020 -km 45000
  garagetrack maint add -vehicle 1 -date 2025-06-01 -type "Yağ değişimi" -km 46000 -cost 1500.00
`)
}
