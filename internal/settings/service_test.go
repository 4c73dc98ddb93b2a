package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniview/aniview/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *testutil.TestDB) {
	t.Helper()
	tdb := testutil.NewTestDB(t)
	t.Cleanup(tdb.Close)
	return NewService(tdb.Conn, tdb.Logger), tdb
}

func TestShowOnlyJapanese_Default(t *testing.T) {
	service, _ := newTestService(t)
	assert.False(t, service.ShowOnlyJapanese(context.Background()))
}

func TestSetShowOnlyJapanese(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.SetShowOnlyJapanese(ctx, true))
	assert.True(t, service.ShowOnlyJapanese(ctx))

	require.NoError(t, service.SetShowOnlyJapanese(ctx, false))
	assert.False(t, service.ShowOnlyJapanese(ctx))
}

func TestShowOnlyJapanese_UnparsableValue(t *testing.T) {
	service, tdb := newTestService(t)
	ctx := context.Background()

	_, err := tdb.Conn.ExecContext(ctx,
		"INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		KeyShowOnlyJapanese, "yes")
	require.NoError(t, err)

	assert.False(t, service.ShowOnlyJapanese(ctx))
}

func TestDisplaySettings_RoundTrip(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, DefaultDisplaySettings(), service.GetDisplaySettings(ctx))

	require.NoError(t, service.SetDisplaySettings(ctx, DisplaySettings{ShowOnlyJapanese: true}))
	assert.True(t, service.GetDisplaySettings(ctx).ShowOnlyJapanese)
}

func TestSettings_PersistAcrossReopen(t *testing.T) {
	service, tdb := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.SetShowOnlyJapanese(ctx, true))

	tdb.Reopen(t)
	service = NewService(tdb.Conn, tdb.Logger)

	assert.True(t, service.ShowOnlyJapanese(ctx))
}
