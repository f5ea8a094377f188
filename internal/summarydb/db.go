// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summarydb archives throughput summary tables in a SQL
// database so runs can be compared later.
package summarydb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"text/template"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
)

// ErrNotFound is returned by Summary when no run has the label.
var ErrNotFound = errors.New("no archived run with that label")

// DB is an archive of summary tables. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertRun *sql.Stmt
	insertRow *sql.Stmt
}

// OpenSQL opens an archive backed by a SQL database. The parameters
// are the same as the parameters for sql.Open. Only mysql and sqlite3
// are explicitly supported; other engines receive MySQL syntax.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255) NOT NULL,
	Dims VARCHAR(255) NOT NULL
);
CREATE TABLE IF NOT EXISTS SummaryRows (
	RunID BIGINT UNSIGNED,
	RowID BIGINT UNSIGNED,
	K0 BIGINT, K1 BIGINT, K2 BIGINT, K3 BIGINT,
	Count BIGINT NOT NULL,
	TPS DOUBLE NOT NULL,
	TPSStdDev DOUBLE NOT NULL,
	TPSMin DOUBLE NOT NULL,
	TPSMax DOUBLE NOT NULL,
	TPSMedian DOUBLE NOT NULL,
	TotalRequests DOUBLE NOT NULL,
	Successful DOUBLE NOT NULL,
	AvgLatencyMs DOUBLE NOT NULL,
	SuccessRate DOUBLE,
	PRIMARY KEY (RunID, RowID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsLabel ON Runs(Label);
{{end}}
`))

// createTables creates any missing tables. driverName selects the
// correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, Dims) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRow, err = db.sql.Prepare(`INSERT INTO SummaryRows(RunID, RowID, K0, K1, K2, K3,
		Count, TPS, TPSStdDev, TPSMin, TPSMax, TPSMedian, TotalRequests, Successful, AvgLatencyMs, SuccessRate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// InsertSummary archives s under label in a single transaction and
// returns the new run's ID. Keys must consist of integer values.
func (db *DB) InsertSummary(ctx context.Context, label string, s *benchagg.Summary) (id int64, err error) {
	for _, d := range s.Dims {
		if strings.Contains(d, ",") {
			return 0, fmt.Errorf("archive %s: dimension name %q contains a comma", label, d)
		}
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, label, strings.Join(s.Dims, ","))
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ins := tx.StmtContext(ctx, db.insertRow)
	for i, r := range s.Rows {
		if r.Key.Len() != len(s.Dims) {
			return 0, fmt.Errorf("archive %s: row %s has %d values for %d dimensions", label, r.Key, r.Key.Len(), len(s.Dims))
		}
		var ks [benchagg.MaxDims]sql.NullInt64
		for j, v := range r.Key.Values() {
			if v.Str != "" {
				return 0, fmt.Errorf("archive %s: dimension %s is not numeric", label, s.Dims[j])
			}
			ks[j] = sql.NullInt64{Int64: int64(v.Num), Valid: true}
		}
		rate := sql.NullFloat64{Float64: r.SuccessRate, Valid: !math.IsNaN(r.SuccessRate)}
		_, err = ins.ExecContext(ctx, id, i, ks[0], ks[1], ks[2], ks[3],
			r.TPS.Count, r.TPS.Mean, r.TPS.StdDev, r.TPS.Min, r.TPS.Max, r.TPS.Median,
			r.TotalRequests, r.Successful, r.AvgLatencyMs, rate)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Summary returns the most recently archived summary with the given
// label, with rows in ascending key order.
func (db *DB) Summary(ctx context.Context, label string) (*benchagg.Summary, error) {
	var (
		id   int64
		dims string
	)
	err := db.sql.QueryRowContext(ctx, "SELECT RunID, Dims FROM Runs WHERE Label = ? ORDER BY RunID DESC LIMIT 1", label).Scan(&id, &dims)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, label)
	} else if err != nil {
		return nil, err
	}
	s := &benchagg.Summary{}
	if dims != "" {
		s.Dims = strings.Split(dims, ",")
	}

	rows, err := db.sql.QueryContext(ctx, `SELECT K0, K1, K2, K3,
		Count, TPS, TPSStdDev, TPSMin, TPSMax, TPSMedian, TotalRequests, Successful, AvgLatencyMs, SuccessRate
		FROM SummaryRows WHERE RunID = ? ORDER BY RowID`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ks   [benchagg.MaxDims]sql.NullInt64
			r    benchagg.SummaryRow
			rate sql.NullFloat64
		)
		err := rows.Scan(&ks[0], &ks[1], &ks[2], &ks[3],
			&r.TPS.Count, &r.TPS.Mean, &r.TPS.StdDev, &r.TPS.Min, &r.TPS.Max, &r.TPS.Median,
			&r.TotalRequests, &r.Successful, &r.AvgLatencyMs, &rate)
		if err != nil {
			return nil, err
		}
		var ns []int
		for _, k := range ks[:len(s.Dims)] {
			ns = append(ns, int(k.Int64))
		}
		r.Key = benchagg.IntKey(ns...)
		r.SuccessRate = math.NaN()
		if rate.Valid {
			r.SuccessRate = rate.Float64
		}
		s.Rows = append(s.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Rows, func(i, j int) bool { return s.Rows[i].Key.Less(s.Rows[j].Key) })
	return s, nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertRow.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
