package names_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/service/names"
)

func setupService(t *testing.T) *names.Service {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(&db.BabyName{}))
	_, err = db.SeedBabyNames(database)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return names.NewService(app.New(database, nil, logger))
}

// Unisex names are folded into both gendered filters, so the boy and girl
// lists together count them twice relative to the full catalog.
func TestGenderFilterCardinality(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	all, _, err := svc.List(ctx, "all", nil, 0)
	require.NoError(t, err)
	boys, _, err := svc.List(ctx, db.GenderBoy, nil, 0)
	require.NoError(t, err)
	girls, _, err := svc.List(ctx, db.GenderGirl, nil, 0)
	require.NoError(t, err)

	unisex := 0
	for _, n := range all {
		if n.Gender == db.GenderUnisex {
			unisex++
		}
	}
	require.Greater(t, unisex, 0)
	assert.Equal(t, len(all)+unisex, len(boys)+len(girls))

	for _, n := range boys {
		assert.Contains(t, []string{db.GenderBoy, db.GenderUnisex}, n.Gender)
	}
}

func TestEmptyFilterMeansAll(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	all, _, err := svc.List(ctx, "all", nil, 0)
	require.NoError(t, err)
	implicit, _, err := svc.List(ctx, "", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, len(all), len(implicit))
}

func TestInvalidGenderRejected(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, _, err := svc.List(ctx, "robot", nil, 0)
	assert.Equal(t, svcErr.KindValidation, svcErr.KindOf(err))
}

func TestMalformedPageTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	token := "%%not-base64"
	_, _, err := svc.List(ctx, "all", &token, 5)
	assert.Equal(t, svcErr.KindValidation, svcErr.KindOf(err))
}

// Paging must walk the full list exactly once, in order, then stop.
func TestPaginationWalksFullList(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	full, _, err := svc.List(ctx, "all", nil, 0)
	require.NoError(t, err)

	var paged []db.BabyName
	var token *string
	for {
		page, next, err := svc.List(ctx, "all", token, 10)
		require.NoError(t, err)
		require.LessOrEqual(t, len(page), 10)
		paged = append(paged, page...)
		if next == nil {
			break
		}
		token = next
	}

	require.Len(t, paged, len(full))
	for i := range full {
		assert.Equal(t, full[i].ID, paged[i].ID)
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	name, err := svc.Get(ctx, "emma")
	require.NoError(t, err)
	assert.Equal(t, "Emma", name.Name)
	assert.Equal(t, db.GenderGirl, name.Gender)

	_, err = svc.Get(ctx, "no-such-name")
	assert.True(t, svcErr.IsNotFound(err))
}
