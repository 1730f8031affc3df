package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/intent"
	"github.com/poiesic/satchel/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days int) *time.Time {
	t := core.CalendarDay(testNow).AddDate(0, 0, days)
	return &t
}

func ptr[T any](v T) *T { return &v }

func setupStore(t *testing.T) (*Store, storage.MaterialRepository, storage.StudentRepository) {
	t.Helper()
	materialRepo, studentRepo, store, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, materialRepo, studentRepo
}

func seed(t *testing.T, materialRepo storage.MaterialRepository, studentRepo storage.StudentRepository) []*core.Material {
	t.Helper()
	ctx := context.Background()
	_, err := studentRepo.AddStudents(ctx, &core.Student{ID: "s1", Name: "Ada"}, &core.Student{ID: "s2", Name: "Grace"})
	require.NoError(t, err)

	done := testNow.Add(-24 * time.Hour)
	added, err := materialRepo.AddMaterials(ctx,
		&core.Material{StudentID: "s1", Title: "Math worksheet: fractions", ContentType: core.ContentTypeWorksheet, DueDate: dueIn(-3)},
		&core.Material{StudentID: "s1", Title: "Math worksheet: decimals", ContentType: core.ContentTypeWorksheet, DueDate: dueIn(2)},
		&core.Material{StudentID: "s1", Title: "Science quiz", ContentType: core.ContentTypeQuiz, CompletedAt: &done, GradeValue: ptr(6.0), GradeMaxValue: ptr(10.0)},
		&core.Material{StudentID: "s1", Title: "Spelling quiz", ContentType: core.ContentTypeQuiz, CompletedAt: &done, GradeValue: ptr(9.0), GradeMaxValue: ptr(10.0)},
		&core.Material{StudentID: "s1", Title: "History quiz", ContentType: core.ContentTypeQuiz, CompletedAt: &done, GradeValue: ptr(1.0), GradeMaxValue: ptr(0.0)},
		&core.Material{StudentID: "s1", Title: "Fractions lesson", ContentType: core.ContentTypeLesson, IsPrimaryLesson: ptr(true),
			Content: &core.LessonContent{Summary: "Adding fractions with unlike denominators", Keywords: []string{"fractions"}}},
		&core.Material{StudentID: "s2", Title: "Math worksheet: not mine", ContentType: core.ContentTypeWorksheet, DueDate: dueIn(-1)},
	)
	require.NoError(t, err)
	return added
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "satchel.db")

	store, err := Open(dsn)
	require.NoError(t, err)
	materialRepo, studentRepo := NewRepositories(store)
	_, err = studentRepo.AddStudents(ctx, &core.Student{ID: "s1"})
	require.NoError(t, err)
	added, err := materialRepo.AddMaterials(ctx, &core.Material{StudentID: "s1", Title: "Notes", ContentType: core.ContentTypeNotes})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dsn)
	require.NoError(t, err)
	defer store.Close()
	materialRepo, _ = NewRepositories(store)
	got, err := materialRepo.GetMaterial(ctx, added[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Notes", got.Title)
}

func TestStore_Close(t *testing.T) {
	store, materialRepo, studentRepo := setupStore(t)
	require.NoError(t, store.Close())
	assert.True(t, store.IsClosed())
	assert.NoError(t, store.Close(), "second close is a no-op")

	ctx := context.Background()
	_, err := materialRepo.GetMaterial(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = studentRepo.ResolveScope(ctx, "s1")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestMaterialRepository_RoundTrip(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	added := seed(t, materialRepo, studentRepo)

	for _, m := range added {
		assert.NotZero(t, m.ID)
	}

	got, err := materialRepo.GetMaterial(ctx, added[5].ID)
	require.NoError(t, err)
	assert.True(t, got.PrimaryLesson())
	require.NotNil(t, got.Content)
	assert.Equal(t, []string{"fractions"}, got.Content.Keywords)
	assert.Empty(t, got.Content.Tasks)

	got, err = materialRepo.GetMaterial(ctx, added[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.True(t, dueIn(-3).Equal(*got.DueDate))
	assert.Nil(t, got.Content)

	got, err = materialRepo.GetMaterial(ctx, added[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(testNow.Add(-24*time.Hour)))
	assert.True(t, core.IsLowScore(got))

	_, err = materialRepo.GetMaterial(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	many, err := materialRepo.GetMaterials(ctx, added[1].ID, 9999, added[0].ID)
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, added[1].ID, many[0].ID, "requested order is kept")
}

func TestMaterialRepository_HashedID(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	_, err := studentRepo.AddStudents(ctx, &core.Student{ID: "s1"})
	require.NoError(t, err)

	// High bit set: stored as a negative key.
	id := core.ID(1<<63 + 42)
	_, err = materialRepo.AddMaterials(ctx,
		&core.Material{ID: id, StudentID: "s1", Title: "Hashed", ContentType: core.ContentTypeNotes},
		&core.Material{ID: 7, StudentID: "s1", Title: "Small", ContentType: core.ContentTypeNotes},
	)
	require.NoError(t, err)

	scope, err := studentRepo.ResolveScope(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []core.ID{7, id}, scope.MaterialIDs)

	found, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{Scope: scope, Limit: 1})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, core.ID(7), found[0].ID)
}

func TestMaterialRepository_LimitKeepsOverdue(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	_, err := studentRepo.AddStudents(ctx, &core.Student{ID: "s1"})
	require.NoError(t, err)

	late := core.ID(1<<63 + 9)
	_, err = materialRepo.AddMaterials(ctx,
		&core.Material{ID: 3, StudentID: "s1", Title: "Done quiz", ContentType: core.ContentTypeQuiz, DueDate: dueIn(-5), CompletedAt: ptr(testNow)},
		&core.Material{ID: 5, StudentID: "s1", Title: "Notes", ContentType: core.ContentTypeNotes},
		&core.Material{ID: 8, StudentID: "s1", Title: "Next week", ContentType: core.ContentTypeWorksheet, DueDate: dueIn(6)},
		&core.Material{ID: late, StudentID: "s1", Title: "Late worksheet", ContentType: core.ContentTypeWorksheet, DueDate: dueIn(-2)},
	)
	require.NoError(t, err)

	scope, err := studentRepo.ResolveScope(ctx, "s1")
	require.NoError(t, err)
	found, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{Scope: scope, Limit: 3})
	require.NoError(t, err)

	ids := make([]core.ID, 0, len(found))
	for _, m := range found {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []core.ID{late, 8, 3}, ids)
}

func TestMaterialRepository_UpdateAndDelete(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	added := seed(t, materialRepo, studentRepo)

	m := added[1]
	inserted := m.InsertedAt
	done := testNow
	m.CompletedAt = &done
	_, err := materialRepo.UpdateMaterials(ctx, m)
	require.NoError(t, err)
	assert.True(t, inserted.Equal(m.InsertedAt))

	got, err := materialRepo.GetMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.CompletedAt)

	_, err = materialRepo.UpdateMaterials(ctx, &core.Material{ID: 9999, StudentID: "s1", Title: "x", ContentType: core.ContentTypeOther})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, materialRepo.DeleteMaterials(ctx, m.ID))
	_, err = materialRepo.GetMaterial(ctx, m.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, materialRepo.DeleteMaterials(ctx, m.ID), storage.ErrNotFound)
}

func TestMaterialRepository_UnparsableDueDay(t *testing.T) {
	store, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	added := seed(t, materialRepo, studentRepo)

	require.NoError(t, store.db.Model(&materialRow{}).Where("id = ?", rowKey(added[0].ID)).Update("due_day", "next week").Error)

	got, err := materialRepo.GetMaterial(ctx, added[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.False(t, core.IsOverdue(got, testNow))
}

func TestMaterialRepository_FindMaterials(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	added := seed(t, materialRepo, studentRepo)

	scope, err := studentRepo.ResolveScope(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, scope.MaterialIDs, 6)

	find := func(t *testing.T, c filter.Criteria) []core.ID {
		t.Helper()
		found, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{Scope: scope, Criteria: c})
		require.NoError(t, err)
		ids := make([]core.ID, 0, len(found))
		for _, m := range found {
			ids = append(ids, m.ID)
		}
		return ids
	}

	t.Run("content type", func(t *testing.T) {
		c := filter.Criteria{ContentTypes: []core.ContentType{core.ContentTypeLesson}}
		assert.Equal(t, []core.ID{added[5].ID}, find(t, c))
	})

	t.Run("incomplete", func(t *testing.T) {
		assert.Equal(t, []core.ID{added[0].ID, added[1].ID, added[5].ID}, find(t, filter.Criteria{RequireIncomplete: true}))
	})

	t.Run("both completion flags", func(t *testing.T) {
		assert.Empty(t, find(t, filter.Criteria{RequireIncomplete: true, RequireCompleted: true}))
	})

	t.Run("due range", func(t *testing.T) {
		assert.Equal(t, []core.ID{added[1].ID}, find(t, filter.Criteria{DueFrom: dueIn(0), DueTo: dueIn(3)}))
		assert.Equal(t, []core.ID{added[0].ID}, find(t, filter.Criteria{DueTo: dueIn(-1)}))
	})

	t.Run("grade ratio skips zero max", func(t *testing.T) {
		assert.Equal(t, []core.ID{added[2].ID}, find(t, filter.Criteria{MaxGradeRatio: ptr(core.LowScoreThreshold)}))
	})

	t.Run("nil scope", func(t *testing.T) {
		_, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{})
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})

	t.Run("empty scope", func(t *testing.T) {
		found, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{Scope: &core.Scope{StudentID: "s1"}})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestMaterialRepository_PushdownEquivalence(t *testing.T) {
	_, materialRepo, studentRepo := setupStore(t)
	ctx := context.Background()
	seed(t, materialRepo, studentRepo)

	scope, err := studentRepo.ResolveScope(ctx, "s1")
	require.NoError(t, err)
	all, err := materialRepo.GetMaterials(ctx, scope.MaterialIDs...)
	require.NoError(t, err)

	queries := []string{
		"overdue math worksheets",
		"math homework due soon",
		"quizzes with low scores",
		"help me understand fractions",
		"what did I finish",
		"anything",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			full := filter.Build(intent.Classify(q), testNow)
			pushed, residual := full.Split(materialRepo.Pushdown())

			found, err := materialRepo.FindMaterials(ctx, storage.MaterialQuery{Scope: scope, Criteria: pushed})
			require.NoError(t, err)
			assert.Equal(t, full.Filter(all), residual.Filter(found))
		})
	}
}

func TestStudentRepository(t *testing.T) {
	_, _, studentRepo := setupStore(t)
	ctx := context.Background()

	_, err := studentRepo.AddStudents(ctx, &core.Student{ID: "s1", Name: "Ada", GradeLevel: 5})
	require.NoError(t, err)
	_, err = studentRepo.AddStudents(ctx, &core.Student{ID: "s1", Name: "Ada L.", GradeLevel: 6})
	require.NoError(t, err, "adding again replaces")

	got, err := studentRepo.GetStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, 6, got.GradeLevel)

	_, err = studentRepo.GetStudent(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = studentRepo.ResolveScope(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = studentRepo.AddStudents(ctx, &core.Student{})
	assert.ErrorIs(t, err, core.ErrInvalidStudent)
}
