package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationService_PutCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage(nil)
	svc := NewIntegrationService(st, nil)

	first, err := svc.Put(ctx, nil, "imgbb", "api_key", "v1")
	require.NoError(t, err)
	assert.True(t, first.Enabled)

	second, err := svc.Put(ctx, nil, "imgbb", "api_key", "v2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "v2", second.Value)

	all, err := st.GetIntegrationSettings(ctx, "imgbb")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	logs, err := st.GetActivityLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, common.ActionSettingChange, logs[0].Action)
	assert.Equal(t, "imgbb/api_key", *logs[0].ResourceID)
}

func TestIntegrationService_Validation(t *testing.T) {
	svc := NewIntegrationService(storage.NewMemoryStorage(nil), nil)

	_, err := svc.Put(context.Background(), nil, "", "k", "v")
	assert.True(t, errors.Is(err, common.ErrorValidation))

	_, err = svc.Put(context.Background(), nil, "discord", "", "v")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestIntegrationService_ValuesAndDisable(t *testing.T) {
	ctx := context.Background()
	svc := NewIntegrationService(storage.NewMemoryStorage(nil), nil)

	_, err := svc.Put(ctx, nil, "airtable", "base_id", "app123")
	require.NoError(t, err)
	_, err = svc.Put(ctx, nil, "airtable", "api_key", "key123")
	require.NoError(t, err)
	_, err = svc.Put(ctx, nil, "discord", "webhook", "https://hook")
	require.NoError(t, err)

	values, err := svc.Values(ctx, "airtable")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"base_id": "app123", "api_key": "key123"}, values)

	ok, err := svc.Disable(ctx, nil, "airtable", "api_key")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Disable(ctx, nil, "airtable", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	values, err = svc.Values(ctx, "airtable")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"base_id": "app123"}, values)

	_, err = svc.Put(ctx, nil, "airtable", "api_key", "key456")
	require.NoError(t, err)
	values, err = svc.Values(ctx, "airtable")
	require.NoError(t, err)
	assert.Equal(t, "key456", values["api_key"])
}
