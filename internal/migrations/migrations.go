// Package migrations applies the embedded catalog schema with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

const migrationDir = "sql"

// Direction selects which way Run moves the schema
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStatus Direction = "status"
)

// ParseDirection validates a direction flag value
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown, DirectionStatus:
		return d, nil
	default:
		return "", fmt.Errorf("unknown migration direction %q, expected up, down or status", s)
	}
}

// Run applies the embedded migrations to db in direction d
func Run(ctx context.Context, db *sql.DB, d Direction, log *zap.Logger) error {
	goose.SetLogger(&logger{sugar: log.Sugar()})
	goose.SetBaseFS(migrationFiles)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch d {
	case DirectionUp:
		return goose.UpContext(ctx, db, migrationDir)
	case DirectionDown:
		return goose.DownContext(ctx, db, migrationDir)
	case DirectionStatus:
		return goose.StatusContext(ctx, db, migrationDir)
	default:
		return fmt.Errorf("unknown migration direction %q", d)
	}
}

// logger implements goose.Logger on top of zap
type logger struct {
	sugar *zap.SugaredLogger
}

func (l *logger) Printf(format string, v ...interface{}) { l.sugar.Infof(format, v...) }
func (l *logger) Fatalf(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }
