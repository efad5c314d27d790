package schema

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Tables whose identifier columns get a backing sequence. Compile-time
// constants; never interpolate caller input into the DDL below.
var sequenceTables = []string{"departments", "jobs", "hired_employees"}

// SequenceBootstrapper positions an auto-increment sequence behind each
// table's id column after a bulk load inserted rows with explicit
// identifiers. The start value is always computed from the live max(id),
// never from a hardcoded literal, so the procedure is self-correcting and
// independent of migration size.
//
// The whole run happens in a single transaction: reading max(id) and
// advancing the sequence must not interleave with application inserts.
type SequenceBootstrapper struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSequenceBootstrapper(db *sql.DB, logger ...*zap.Logger) *SequenceBootstrapper {
	l := zap.L().Named("schema.sequence")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schema.sequence")
	}
	return &SequenceBootstrapper{db: db, logger: l}
}

// Run is idempotent: sequences are created only if missing, re-attaching
// the column default is a no-op, and setval on unchanged data yields the
// same sequence state. On an empty table the setval step is skipped and
// the sequence keeps its start value, so the first application insert
// receives id 1.
func (b *SequenceBootstrapper) Run(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range sequenceTables {
		if err := b.bootstrapTable(ctx, tx, table); err != nil {
			return fmt.Errorf("bootstrap sequence for %s: %w", table, err)
		}
	}

	return tx.Commit()
}

func (b *SequenceBootstrapper) bootstrapTable(ctx context.Context, tx *sql.Tx, table string) error {
	seq := table + "_id_seq"

	var maxID int64
	if err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) FROM %s`, table),
	).Scan(&maxID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(
		`CREATE SEQUENCE IF NOT EXISTS %s START WITH %d OWNED BY %s.id`,
		seq, maxID+1, table,
	)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s ALTER COLUMN id SET DEFAULT nextval('%s')`,
		table, seq,
	)); err != nil {
		return err
	}

	if maxID == 0 {
		// Empty table: nothing to advance past. The sequence keeps its
		// start value.
		b.logger.Warn("table is empty, sequence left at start value",
			zap.String("table", table),
			zap.String("sequence", seq),
		)
		return nil
	}

	// Authoritative correction: the next nextval() is maxID+1 regardless
	// of what START WITH was created with on an earlier run.
	if _, err := tx.ExecContext(ctx, `SELECT setval($1, $2)`, seq, maxID); err != nil {
		return err
	}

	b.logger.Info("sequence bootstrapped",
		zap.String("table", table),
		zap.String("sequence", seq),
		zap.Int64("current_value", maxID),
	)

	return nil
}
