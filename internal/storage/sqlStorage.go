package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/config"
	"github.com/fatali-fataliyev/event_finance/internal/contextutil"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/fatali-fataliyev/event_finance/logging"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// --- INIT START --- //

// InitMySQL creates the configured database when missing, connects to it and applies migrations.
func InitMySQL(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	dbname := parsed.DBName
	if dbname == "" {
		dbname = "event_finance"
	}
	parsed.DBName = ""
	parsed.ParseTime = true

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open(DriverMySQL, parsed.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %w", err)
	}
	defer adminDb.Close()

	connected := false
	for i := 0; i < 15; i++ {
		if err := adminDb.PingContext(ctx); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	createDbSql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
	if _, err := adminDb.ExecContext(ctx, createDbSql); err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	parsed.DBName = dbname
	logging.Logger.Info("Connecting to database...")
	db, err := sql.Open(DriverMySQL, parsed.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logging.Logger.Info("Connected to database successfully")

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// OpenSQLite opens (or creates) a SQLite database file and applies migrations.
// ":memory:" gives a private database for tests.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	migrationFiles, err := getMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to get migration files: %w", err)
	}

	lastAppliedMigration, err := getLastAppliedMigration(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration name: %w", err)
	}

	newMigrations := filterNewMigrations(migrationFiles, lastAppliedMigration)
	if len(newMigrations) == 0 {
		logging.Logger.Info("no new migration")
		return nil
	}

	for _, migrationFile := range newMigrations {
		logging.Logger.Info("applying migration: ", migrationFile)
		migrationContent, err := migrationFS.ReadFile(path.Join("migrations", migrationFile))
		if err != nil {
			return fmt.Errorf("failed to read this '%s' migration file, error: %w", migrationFile, err)
		}
		if err := applyMigration(ctx, db, migrationFile, string(migrationContent)); err != nil {
			return fmt.Errorf("failed to apply this '%s' migration file, error: %w", migrationFile, err)
		}
	}

	logging.Logger.Info("all migrations applied successfully")
	return nil
}

func getMigrationFiles() ([]string, error) {
	files, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, err
	}

	var migrationFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	sort.Strings(migrationFiles)
	return migrationFiles, nil
}

func getLastAppliedMigration(ctx context.Context, db *sql.DB) (string, error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS migration (
        migration_name VARCHAR(255) NOT NULL PRIMARY KEY,
        applied_at VARCHAR(40) NOT NULL
    );`)
	if err != nil {
		return "", err
	}

	var lastMigration string
	err = db.QueryRowContext(ctx, "SELECT migration_name FROM migration ORDER BY migration_name DESC LIMIT 1").Scan(&lastMigration)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return lastMigration, err
}

func filterNewMigrations(all []string, lastApplied string) []string {
	if lastApplied == "" {
		return all
	}

	var result []string
	for _, migration := range all {
		if migration > lastApplied {
			result = append(result, migration)
		}
	}
	return result
}

func applyMigration(ctx context.Context, db *sql.DB, name, sqlContent string) error {
	txn, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for _, statement := range strings.Split(sqlContent, ";") {
		trimmedStmt := strings.TrimSpace(statement)
		if trimmedStmt == "" {
			continue
		}
		if _, err := txn.ExecContext(ctx, trimmedStmt); err != nil {
			txn.Rollback()
			return fmt.Errorf("migration statement failed: %w\nStatement: %s", err, trimmedStmt)
		}
	}

	if _, err := txn.ExecContext(ctx, "INSERT INTO migration (migration_name, applied_at) VALUES (?, ?)", name, formatTime(time.Now())); err != nil {
		txn.Rollback()
		return fmt.Errorf("failed to record migration name: %w", err)
	}

	return txn.Commit()
}

// --- INIT END --- //

// SQLStorage persists event finances through database/sql. The same queries run on MySQL and SQLite.
type SQLStorage struct {
	db     *sql.DB
	driver string
}

func NewSQLStorage(db *sql.DB, driver string) *SQLStorage {
	return &SQLStorage{db: db, driver: driver}
}

func (s *SQLStorage) GetStorageType() string {
	return s.driver
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func unavailable(ctx context.Context, function string, action string, err error) error {
	logging.Logger.Errorf("[TraceID=%s] | failed to %s in Storage.%s() function | Error: %v", contextutil.TraceIDFromContext(ctx), action, function, err)
	return appErrors.New(appErrors.ErrStorageUnavailable, "failed to %s, try again later", action)
}

func corrupted(ctx context.Context, function string, err error) error {
	logging.Logger.Errorf("[TraceID=%s] | failed to decode stored record in Storage.%s() function | Error: %v", contextutil.TraceIDFromContext(ctx), function, err)
	return appErrors.New(appErrors.ErrInternal, "stored record is unreadable")
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// withTx runs fn in one transaction so every mutating call is a single atomic write.
func (s *SQLStorage) withTx(ctx context.Context, function string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(ctx, function, "start SQL transaction", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable(ctx, function, "commit SQL transaction", err)
	}
	return nil
}

// ---- FUNDRAISING ---- //

func (s *SQLStorage) SaveFundraising(ctx context.Context, f finance.EventFundraising) error {
	return s.withTx(ctx, "SaveFundraising", func(tx *sql.Tx) error {
		return saveFundraising(ctx, tx, "SaveFundraising", f)
	})
}

func saveFundraising(ctx context.Context, tx execer, function string, f finance.EventFundraising) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM fundraising WHERE event_id = ?;", f.EventID); err != nil {
		return unavailable(ctx, function, "replace fundraising", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM fundraising_method WHERE event_id = ?;", f.EventID); err != nil {
		return unavailable(ctx, function, "replace fundraising methods", err)
	}

	query := "INSERT INTO fundraising (event_id, target_amount, current_amount, currency, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?);"
	_, err := tx.ExecContext(ctx, query, f.EventID, f.TargetAmount.String(), f.CurrentAmount.String(), f.Currency, formatTime(f.CreatedAt), formatTime(f.UpdatedAt))
	if err != nil {
		return unavailable(ctx, function, "save fundraising", err)
	}

	methodQuery := "INSERT INTO fundraising_method (event_id, method, amount, percentage, sort_order) VALUES (?, ?, ?, ?, ?);"
	for i, m := range f.FundraisingMethods {
		if _, err := tx.ExecContext(ctx, methodQuery, f.EventID, string(m.Method), m.Amount.String(), m.Percentage, i); err != nil {
			return unavailable(ctx, function, "save fundraising method", err)
		}
	}
	return nil
}

func (s *SQLStorage) GetFundraising(ctx context.Context, eventID string) (finance.EventFundraising, error) {
	query := "SELECT event_id, target_amount, current_amount, currency, created_at, updated_at FROM fundraising WHERE event_id = ?;"
	var row dbFundraising
	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&row.EventID, &row.TargetAmount, &row.CurrentAmount, &row.Currency, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.EventFundraising{}, appErrors.New(appErrors.ErrNotFound, "fundraising for event '%s' not found", eventID)
		}
		return finance.EventFundraising{}, unavailable(ctx, "GetFundraising", "get fundraising", err)
	}

	methods, err := s.getMethods(ctx, eventID)
	if err != nil {
		return finance.EventFundraising{}, err
	}

	f, err := row.toModel(methods)
	if err != nil {
		return finance.EventFundraising{}, corrupted(ctx, "GetFundraising", err)
	}
	return f, nil
}

func (s *SQLStorage) getMethods(ctx context.Context, eventID string) ([]dbMethod, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT method, amount, percentage FROM fundraising_method WHERE event_id = ? ORDER BY sort_order;", eventID)
	if err != nil {
		return nil, unavailable(ctx, "getMethods", "get fundraising methods", err)
	}
	defer rows.Close()

	var methods []dbMethod
	for rows.Next() {
		var m dbMethod
		if err := rows.Scan(&m.Method, &m.Amount, &m.Percentage); err != nil {
			return nil, unavailable(ctx, "getMethods", "scan fundraising method", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "getMethods", "iterate fundraising methods", err)
	}
	return methods, nil
}

func (s *SQLStorage) RecordDonation(ctx context.Context, d finance.DonationRecord, f finance.EventFundraising) error {
	return s.withTx(ctx, "RecordDonation", func(tx *sql.Tx) error {
		query := "INSERT INTO donation (id, event_id, donor_name, amount, currency, method, is_anonymous, message, received_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);"
		_, err := tx.ExecContext(ctx, query, d.ID, d.EventID, d.DonorName, d.Amount.String(), d.Currency, string(d.Method), d.IsAnonymous, d.Message, formatTime(d.ReceivedAt))
		if err != nil {
			if isDuplicate(err) {
				return appErrors.New(appErrors.ErrConflict, "donation '%s' already recorded", d.ID)
			}
			return unavailable(ctx, "RecordDonation", "save donation", err)
		}
		return saveFundraising(ctx, tx, "RecordDonation", f)
	})
}

func (s *SQLStorage) GetDonations(ctx context.Context, eventID string) ([]finance.DonationRecord, error) {
	query := "SELECT id, event_id, donor_name, amount, currency, method, is_anonymous, message, received_at FROM donation WHERE event_id = ? ORDER BY received_at;"
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, unavailable(ctx, "GetDonations", "get donations", err)
	}
	defer rows.Close()

	donations := []finance.DonationRecord{}
	for rows.Next() {
		var row dbDonation
		if err := rows.Scan(&row.ID, &row.EventID, &row.DonorName, &row.Amount, &row.Currency, &row.Method, &row.IsAnonymous, &row.Message, &row.ReceivedAt); err != nil {
			return nil, unavailable(ctx, "GetDonations", "scan donation", err)
		}
		d, err := row.toModel()
		if err != nil {
			return nil, corrupted(ctx, "GetDonations", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "GetDonations", "iterate donations", err)
	}
	return donations, nil
}

// ---- BUDGET ---- //

// SaveBudget replaces the budget row together with all of its categories and items.
func (s *SQLStorage) SaveBudget(ctx context.Context, b finance.EventBudget) error {
	return s.withTx(ctx, "SaveBudget", func(tx *sql.Tx) error {
		for _, table := range []string{"event_budget", "budget_category", "budget_category_item"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE event_id = ?;", b.EventID); err != nil {
				return unavailable(ctx, "SaveBudget", "replace "+table, err)
			}
		}

		var approvedDate *string
		if b.ApprovedDate != nil {
			formatted := formatTime(*b.ApprovedDate)
			approvedDate = &formatted
		}

		query := `INSERT INTO event_budget (event_id, total_budget, currency, contingency_amount, contingency_percentage, approval_status,
			approved_by, approved_date, rejected_by, rejection_reason, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
		_, err := tx.ExecContext(ctx, query, b.EventID, b.TotalBudget.String(), b.Currency, b.Contingency.Amount.String(), b.Contingency.Percentage,
			string(b.ApprovalStatus), b.ApprovedBy, approvedDate, b.RejectedBy, b.RejectionReason, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
		if err != nil {
			return unavailable(ctx, "SaveBudget", "save budget", err)
		}

		categoryQuery := "INSERT INTO budget_category (event_id, id, name, description, priority, allocated_amount, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?);"
		itemQuery := "INSERT INTO budget_category_item (id, event_id, category_id, name, quantity, unit, estimated_cost, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?, ?);"
		for i, c := range b.Categories {
			_, err := tx.ExecContext(ctx, categoryQuery, b.EventID, c.ID, c.Name, c.Description, string(c.Priority), c.AllocatedAmount.String(), i)
			if err != nil {
				if isDuplicate(err) {
					return appErrors.New(appErrors.ErrConflict, "category '%s' already exists", c.ID)
				}
				return unavailable(ctx, "SaveBudget", "save budget category", err)
			}
			for j, item := range c.Items {
				_, err := tx.ExecContext(ctx, itemQuery, item.ID, b.EventID, c.ID, item.Name, item.Quantity.String(), item.Unit, item.EstimatedCost.String(), j)
				if err != nil {
					return unavailable(ctx, "SaveBudget", "save category item", err)
				}
			}
		}
		return nil
	})
}

func (s *SQLStorage) GetBudget(ctx context.Context, eventID string) (finance.EventBudget, error) {
	query := `SELECT event_id, total_budget, currency, contingency_amount, contingency_percentage, approval_status,
		approved_by, approved_date, rejected_by, rejection_reason, created_at, updated_at FROM event_budget WHERE event_id = ?;`
	var row dbBudget
	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&row.EventID, &row.TotalBudget, &row.Currency, &row.ContingencyAmount, &row.ContingencyPercentage,
		&row.ApprovalStatus, &row.ApprovedBy, &row.ApprovedDate, &row.RejectedBy, &row.RejectionReason, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.EventBudget{}, appErrors.New(appErrors.ErrNotFound, "budget for event '%s' not found", eventID)
		}
		return finance.EventBudget{}, unavailable(ctx, "GetBudget", "get budget", err)
	}

	budget, err := row.toModel()
	if err != nil {
		return finance.EventBudget{}, corrupted(ctx, "GetBudget", err)
	}

	categories, err := s.getCategories(ctx, eventID)
	if err != nil {
		return finance.EventBudget{}, err
	}
	items, err := s.getItems(ctx, eventID)
	if err != nil {
		return finance.EventBudget{}, err
	}

	for _, c := range categories {
		category, err := c.toModel()
		if err != nil {
			return finance.EventBudget{}, corrupted(ctx, "GetBudget", err)
		}
		for _, i := range items {
			if i.CategoryID != c.ID {
				continue
			}
			item, err := i.toModel()
			if err != nil {
				return finance.EventBudget{}, corrupted(ctx, "GetBudget", err)
			}
			category.Items = append(category.Items, item)
		}
		budget.Categories = append(budget.Categories, category)
	}
	return budget, nil
}

func (s *SQLStorage) getCategories(ctx context.Context, eventID string) ([]dbCategory, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description, priority, allocated_amount FROM budget_category WHERE event_id = ? ORDER BY sort_order;", eventID)
	if err != nil {
		return nil, unavailable(ctx, "getCategories", "get budget categories", err)
	}
	defer rows.Close()

	var categories []dbCategory
	for rows.Next() {
		var c dbCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Priority, &c.AllocatedAmount); err != nil {
			return nil, unavailable(ctx, "getCategories", "scan budget category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "getCategories", "iterate budget categories", err)
	}
	return categories, nil
}

func (s *SQLStorage) getItems(ctx context.Context, eventID string) ([]dbCategoryItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, category_id, name, quantity, unit, estimated_cost FROM budget_category_item WHERE event_id = ? ORDER BY sort_order;", eventID)
	if err != nil {
		return nil, unavailable(ctx, "getItems", "get category items", err)
	}
	defer rows.Close()

	var items []dbCategoryItem
	for rows.Next() {
		var i dbCategoryItem
		if err := rows.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Quantity, &i.Unit, &i.EstimatedCost); err != nil {
			return nil, unavailable(ctx, "getItems", "scan category item", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "getItems", "iterate category items", err)
	}
	return items, nil
}

// ---- EXPENDITURES ---- //

const expenditureColumns = `id, event_id, budget_category_id, amount, currency, description, spent_on, payment_method,
	vendor, receipt_number, approved_by, status, tags, created_at, updated_at`

func (s *SQLStorage) SaveExpenditure(ctx context.Context, e finance.EventExpenditure) error {
	row, err := newDBExpenditure(e)
	if err != nil {
		return appErrors.New(appErrors.ErrInvalidInput, "%v", err)
	}

	return s.withTx(ctx, "SaveExpenditure", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenditure WHERE id = ?;", row.ID); err != nil {
			return unavailable(ctx, "SaveExpenditure", "replace expenditure", err)
		}
		query := "INSERT INTO expenditure (" + expenditureColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);"
		_, err := tx.ExecContext(ctx, query, row.ID, row.EventID, row.BudgetCategoryID, row.Amount, row.Currency, row.Description, row.SpentOn,
			row.PaymentMethod, row.Vendor, row.ReceiptNumber, row.ApprovedBy, row.Status, row.Tags, row.CreatedAt, row.UpdatedAt)
		if err != nil {
			return unavailable(ctx, "SaveExpenditure", "save expenditure", err)
		}
		return nil
	})
}

func scanExpenditure(scan func(dest ...any) error) (dbExpenditure, error) {
	var row dbExpenditure
	err := scan(&row.ID, &row.EventID, &row.BudgetCategoryID, &row.Amount, &row.Currency, &row.Description, &row.SpentOn,
		&row.PaymentMethod, &row.Vendor, &row.ReceiptNumber, &row.ApprovedBy, &row.Status, &row.Tags, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

func (s *SQLStorage) GetExpenditure(ctx context.Context, eventID string, expenditureID string) (finance.EventExpenditure, error) {
	query := "SELECT " + expenditureColumns + " FROM expenditure WHERE event_id = ? AND id = ?;"
	row, err := scanExpenditure(s.db.QueryRowContext(ctx, query, eventID, expenditureID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.EventExpenditure{}, appErrors.New(appErrors.ErrNotFound, "expenditure '%s' not found", expenditureID)
		}
		return finance.EventExpenditure{}, unavailable(ctx, "GetExpenditure", "get expenditure", err)
	}

	e, err := row.toModel()
	if err != nil {
		return finance.EventExpenditure{}, corrupted(ctx, "GetExpenditure", err)
	}
	return e, nil
}

func (s *SQLStorage) GetExpenditures(ctx context.Context, eventID string) ([]finance.EventExpenditure, error) {
	query := "SELECT " + expenditureColumns + " FROM expenditure WHERE event_id = ? ORDER BY spent_on, created_at;"
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, unavailable(ctx, "GetExpenditures", "get expenditures", err)
	}
	defer rows.Close()

	expenditures := []finance.EventExpenditure{}
	for rows.Next() {
		row, err := scanExpenditure(rows.Scan)
		if err != nil {
			return nil, unavailable(ctx, "GetExpenditures", "scan expenditure", err)
		}
		e, err := row.toModel()
		if err != nil {
			return nil, corrupted(ctx, "GetExpenditures", err)
		}
		expenditures = append(expenditures, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "GetExpenditures", "iterate expenditures", err)
	}
	return expenditures, nil
}

// ---- EVENT ---- //

func (s *SQLStorage) DeleteEventFinances(ctx context.Context, eventID string) error {
	return s.withTx(ctx, "DeleteEventFinances", func(tx *sql.Tx) error {
		tables := []string{"fundraising", "fundraising_method", "donation", "event_budget", "budget_category", "budget_category_item", "expenditure"}
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE event_id = ?;", eventID); err != nil {
				return unavailable(ctx, "DeleteEventFinances", "delete "+table, err)
			}
		}
		return nil
	})
}
