package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"order-forecast/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// Open DSN mariadb:// or mysql:// → MySQL driver format. The second result is the
// DSN with its password masked, for logging.
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, redact(mysqlDSN), nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

var passwordRe = regexp.MustCompile(`^([^:@/]+):[^@]*@`)

func redact(dsn string) string {
	return passwordRe.ReplaceAllString(dsn, "$1:***@")
}

// FetchObserver receives the size and latency of each snapshot pull.
type FetchObserver interface {
	ObserveFetch(query string, rows int, d time.Duration)
}

// Options tune the snapshot queries.
type Options struct {
	Years           int    // trailing window, default 7
	ExcludeCustomer string // internal account left out of every pull
	SiteAliases     models.SiteAliases
	Observer        FetchObserver
	Logger          *slog.Logger
}

// Store reads order and despatch snapshots from the ERP database.
type Store struct {
	db   *sql.DB
	opts Options
}

func NewStore(db *sql.DB, opts Options) *Store {
	if opts.Years <= 0 {
		opts.Years = 7
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{db: db, opts: opts}
}

// ItemCosts loads AUD cost per each, preferring the average price over the list price.
// Items with neither are absent.
func (s *Store) ItemCosts(ctx context.Context) (models.CostTable, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, itemCostsQuery)
	if err != nil {
		return nil, fmt.Errorf("item costs: %w", err)
	}
	defer rows.Close()

	costs := models.CostTable{}
	for rows.Next() {
		var (
			code        string
			avg, listed decimal.NullDecimal
		)
		if err := rows.Scan(&code, &avg, &listed); err != nil {
			return nil, fmt.Errorf("item costs: %w", err)
		}
		switch {
		case avg.Valid && !avg.Decimal.IsZero():
			costs[code] = avg.Decimal
		case listed.Valid && !listed.Decimal.IsZero():
			costs[code] = listed.Decimal
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item costs: %w", err)
	}
	s.observe("item_costs", len(costs), start)
	return costs, nil
}

// OrderLines pulls open, uncancelled order lines required within the trailing window.
// With dollars set, quantities are AUD values and uncosted items are dropped.
func (s *Store) OrderLines(ctx context.Context, dollars bool) ([]models.TransactionRecord, error) {
	costs, err := s.ItemCosts(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, orderLinesQuery, s.opts.Years, s.opts.ExcludeCustomer)
	if err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}
	defer rows.Close()

	var out []models.TransactionRecord
	read := 0
	for rows.Next() {
		read++
		var row models.RawOrderRow
		if err := rows.Scan(&row.ItemCode, &row.CustomerCode, &row.QtyOrdered, &row.ConversionUnits, &row.DateRequired, &row.SiteName); err != nil {
			return nil, fmt.Errorf("order lines: %w", err)
		}
		rec, ok, err := models.NewOrderRecord(row, costs, s.opts.SiteAliases, dollars)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}

	s.opts.Logger.Debug("order lines loaded", "rows", read, "kept", len(out), "dollars", dollars)
	s.observe("order_lines", read, start)
	return out, nil
}

// DespatchLines pulls despatched lines processed within the trailing window, newest first.
func (s *Store) DespatchLines(ctx context.Context) ([]models.TransactionRecord, error) {
	costs, err := s.ItemCosts(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, despatchLinesQuery, s.opts.Years, s.opts.ExcludeCustomer)
	if err != nil {
		return nil, fmt.Errorf("despatch lines: %w", err)
	}
	defer rows.Close()

	var out []models.TransactionRecord
	for rows.Next() {
		var (
			row                                                 models.RawDespatchRow
			required, territory, category, itemType, parentName sql.NullString
		)
		if err := rows.Scan(&row.ProcessedDate, &row.ItemCode, &row.CustomerCode, &row.QtyEach, &row.SiteName,
			&required, &row.DespatchNo, &territory, &category, &itemType, &parentName); err != nil {
			return nil, fmt.Errorf("despatch lines: %w", err)
		}
		row.DateRequired = required.String
		row.SalesTerritory = territory.String
		row.Category = category.String
		row.ItemType = itemType.String
		row.ParentCategory = parentName.String

		rec, err := models.NewDespatchRecord(row, costs, s.opts.SiteAliases)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("despatch lines: %w", err)
	}

	s.opts.Logger.Debug("despatch lines loaded", "rows", len(out))
	s.observe("despatch_lines", len(out), start)
	return out, nil
}

// OrdersPlacedToday totals eaches (or AUD) on order lines created today.
func (s *Store) OrdersPlacedToday(ctx context.Context, dollars bool) (float64, error) {
	q := ordersPlacedTodayQuery
	if dollars {
		q = ordersPlacedTodayValueQuery
	}
	var total sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, q, s.opts.ExcludeCustomer).Scan(&total); err != nil {
		return 0, fmt.Errorf("orders placed today: %w", err)
	}
	return total.Float64, nil
}

// ItemCodes lists the distinct items ordered within the trailing window.
func (s *Store) ItemCodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, itemCodesQuery, s.opts.Years)
	if err != nil {
		return nil, fmt.Errorf("item codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("item codes: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (s *Store) observe(query string, rows int, start time.Time) {
	if s.opts.Observer != nil {
		s.opts.Observer.ObserveFetch(query, rows, time.Since(start))
	}
}
