package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gatehouse/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsCoverSchema(t *testing.T) {
	// migrating every model into a fresh database flushes out broken tags
	testutils.SetupTestDB(t, Models()...)
}

func TestAppStartStop(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.Server.Port = "18973"

	application := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, application.Start(ctx))
	defer application.Stop()

	// the server comes up asynchronously
	baseURL := fmt.Sprintf("http://%s:%s", cfg.Server.Host, cfg.Server.Port)
	var resp *http.Response
	var err error
	for range 20 {
		resp, err = http.Get(baseURL + "/openapi.json")
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "3.0.3", decoded["openapi"])
}
