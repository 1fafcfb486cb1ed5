package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateConfigs_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := uuid.New()
	defer func() {
		_, _ = db.pool.Exec(ctx, `DELETE FROM template_configs WHERE user_id = $1`, userID)
	}()

	doc, err := db.GetTemplateConfig(ctx, userID, "modern")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, db.PutTemplateConfig(ctx, userID, "modern", []byte(`{"fontScaleLevel":1}`)))
	require.NoError(t, db.PutTemplateConfig(ctx, userID, "modern", []byte(`{"fontScaleLevel":2}`)))
	require.NoError(t, db.PutTemplateConfig(ctx, userID, "classic", []byte(`{"fontScaleLevel":0}`)))

	doc, err = db.GetTemplateConfig(ctx, userID, "modern")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fontScaleLevel":2}`, string(doc))

	records, err := db.ListTemplateConfigs(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "classic", records[0].Variant)
	assert.Equal(t, "modern", records[1].Variant)
	assert.JSONEq(t, `{"fontScaleLevel":2}`, string(records[1].Document))
}
