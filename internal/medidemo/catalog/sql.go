package catalog

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
)

// DrugTable is the table the SQL drug source reads and WriteSQL seeds.
const DrugTable = "medidemo_drug"

const selectDrugs = `SELECT drug_key, brand_name, generic_name, manufacturer, purpose, dosage, warnings, side_effects
FROM ` + DrugTable + `
ORDER BY position`

// Open connects to the drug source and verifies it answers a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s drug source: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s drug source: %w", driver, err)
	}
	return db, nil
}

// LoadDrugsSQL reads the drug dictionary from DrugTable in position order.
func LoadDrugsSQL(ctx context.Context, db *sql.DB) ([]config.DrugSpec, error) {
	rows, err := db.QueryContext(ctx, selectDrugs)
	if err != nil {
		return nil, fmt.Errorf("query drugs: %w", err)
	}
	defer rows.Close()

	var drugs []config.DrugSpec
	for rows.Next() {
		var d config.DrugSpec
		if err := rows.Scan(&d.Key, &d.BrandName, &d.GenericName, &d.Manufacturer,
			&d.Purpose, &d.Dosage, &d.Warnings, &d.SideEffects); err != nil {
			return nil, fmt.Errorf("scan drug row %d: %w", len(drugs), err)
		}
		drugs = append(drugs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drugs: %w", err)
	}

	if err := config.ValidateDrugs(drugs); err != nil {
		return nil, fmt.Errorf("drug source: %w", err)
	}
	logger.L().Debugw("Loaded drugs from database", "count", len(drugs))
	return drugs, nil
}

// sqlEscape quotes s for a single-quoted literal. MySQL's default sql_mode
// also treats backslash as an escape character.
func sqlEscape(s, dialect string) string {
	if dialect == "mysql" {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return strings.ReplaceAll(s, "'", "''")
}

// WriteSQL emits DDL and INSERT statements that seed DrugTable with drugs.
// dialect is "postgres" or "mysql".
func WriteSQL(w io.Writer, drugs []config.DrugSpec, dialect string) error {
	var textType, tail string
	switch dialect {
	case "postgres":
		textType = "TEXT"
	case "mysql":
		textType = "VARCHAR(512)"
		tail = " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	default:
		return fmt.Errorf("unsupported SQL dialect %q (want postgres or mysql)", dialect)
	}

	bw := bufio.NewWriter(w)
	if dialect == "postgres" {
		fmt.Fprintf(bw, "-- Generated SQL for PostgreSQL\n")
		fmt.Fprintf(bw, "-- Import with: psql -U <user> -d <database> -f <file>\n\n")
	} else {
		fmt.Fprintf(bw, "-- Generated SQL for MySQL\n")
		fmt.Fprintf(bw, "-- Import with: mysql -u <user> -p <database> < <file>\n\n")
	}

	fmt.Fprintf(bw, "DROP TABLE IF EXISTS %s;\n", DrugTable)
	fmt.Fprintf(bw, `CREATE TABLE %[1]s (
    position INT NOT NULL,
    drug_key VARCHAR(128) PRIMARY KEY,
    brand_name %[2]s NOT NULL,
    generic_name %[2]s NOT NULL,
    manufacturer %[2]s NOT NULL,
    purpose %[2]s NOT NULL,
    dosage %[2]s NOT NULL,
    warnings %[2]s NOT NULL,
    side_effects %[2]s NOT NULL
)%[3]s;
`, DrugTable, textType, tail)
	fmt.Fprintln(bw)

	esc := func(v string) string { return sqlEscape(v, dialect) }
	for i, d := range drugs {
		fmt.Fprintf(bw,
			"INSERT INTO %s (position, drug_key, brand_name, generic_name, manufacturer, purpose, dosage, warnings, side_effects) "+
				"VALUES (%d,'%s','%s','%s','%s','%s','%s','%s','%s');\n",
			DrugTable, i,
			esc(strings.ToLower(strings.TrimSpace(d.Key))),
			esc(d.BrandName), esc(d.GenericName), esc(d.Manufacturer),
			esc(d.Purpose), esc(d.Dosage), esc(d.Warnings), esc(d.SideEffects),
		)
	}
	fmt.Fprintf(bw, "\n-- Inserted %d drugs\n", len(drugs))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write SQL: %w", err)
	}
	logger.L().Debugw("Wrote drug seed SQL", "dialect", dialect, "drugs", len(drugs))
	return nil
}
