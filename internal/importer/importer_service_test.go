package importer_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/importer"
	importerMock "github.com/davbarrer/reporting-pipeline-gb/internal/importer/mock"
	"github.com/davbarrer/reporting-pipeline-gb/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeStore struct {
	objects map[string][]byte
	uploads map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: make(map[string][]byte),
		uploads: make(map[string][]byte),
	}
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func expectSequenceBootstrap(mock sqlmock.Sqlmock, maxIDs map[string]int64) {
	mock.ExpectBegin()
	for _, table := range []string{"departments", "jobs", "hired_employees"} {
		seq := table + "_id_seq"
		maxID := maxIDs[table]

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(id), 0) FROM ` + table)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(maxID))
		mock.ExpectExec(`CREATE SEQUENCE IF NOT EXISTS ` + seq).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`ALTER TABLE ` + table + ` ALTER COLUMN id SET DEFAULT`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		if maxID > 0 {
			mock.ExpectExec(regexp.QuoteMeta(`SELECT setval($1, $2)`)).
				WithArgs(seq, maxID).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
	}
	mock.ExpectCommit()
}

func TestImporterService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("migrates all files, bootstraps sequences, uploads rejection log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		store := newFakeStore()
		store.objects["departments.csv"] = []byte("1,Product Management\n2,Sales\n")
		store.objects["jobs.csv"] = []byte("1,Recruiter\n2,\n")
		store.objects["hired_employees.csv"] = []byte(
			"1,Harold Vogt,2021-11-07T02:48:42Z,1,1\n",
		)

		repo := importerMock.NewMockRepository(ctrl)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		expectSequenceBootstrap(sqlMock, map[string]int64{
			"departments":     2,
			"jobs":            1,
			"hired_employees": 1,
		})

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().
			InsertBatch(ctx, "departments", gomock.Len(2)).
			Return(nil)
		repo.EXPECT().
			InsertBatch(ctx, "jobs", gomock.Len(1)).
			Return(nil)
		repo.EXPECT().
			InsertBatch(ctx, "hired_employees", gomock.Len(1)).
			Return(nil)

		svc := importer.NewService(db, repo, store,
			schema.NewSequenceBootstrapper(db, zap.NewNop()), zap.NewNop())

		summaries, err := svc.Run(ctx)

		assert.NoError(t, err)
		assert.Len(t, summaries, 3)
		assert.Equal(t, 2, summaries[0].Inserted)
		assert.Equal(t, 1, summaries[1].Inserted)
		assert.Equal(t, 1, summaries[1].Rejected)

		log, ok := store.uploads["logs/failed_records.log"]
		assert.True(t, ok)
		assert.Contains(t, string(log), "jobs")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("missing csv aborts before any insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		store := newFakeStore() // no objects at all
		repo := importerMock.NewMockRepository(ctrl)

		svc := importer.NewService(db, repo, store,
			schema.NewSequenceBootstrapper(db, zap.NewNop()), zap.NewNop())

		_, err := svc.Run(ctx)

		assert.ErrorContains(t, err, "departments.csv")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("clean run skips the rejection log upload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		store := newFakeStore()
		store.objects["departments.csv"] = []byte("1,Sales\n")
		store.objects["jobs.csv"] = []byte("1,Recruiter\n")
		store.objects["hired_employees.csv"] = []byte(
			"1,Ty Hofer,2021-05-30T05:43:46Z,1,1\n",
		)

		repo := importerMock.NewMockRepository(ctrl)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		expectSequenceBootstrap(sqlMock, map[string]int64{
			"departments":     1,
			"jobs":            1,
			"hired_employees": 1,
		})

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().InsertBatch(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(3)

		svc := importer.NewService(db, repo, store,
			schema.NewSequenceBootstrapper(db, zap.NewNop()), zap.NewNop())

		_, err := svc.Run(ctx)

		assert.NoError(t, err)
		assert.Empty(t, store.uploads)
	})
}
