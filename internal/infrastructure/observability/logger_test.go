package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
)

func TestInitLogger_StampsServiceFields(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	observability.InitLogger(observability.LogOptions{
		Service:    "hbnb-web",
		Version:    "1.2.3",
		Env:        "production",
		Level:      "debug",
		APIBaseURL: "http://api.local/api/v1",
		Out:        &buf,
	})

	request := log.Logger.With().Str("request_id", "abc").Logger()
	ctx := observability.WithLogger(context.Background(), request)
	observability.LoggerFromContext(ctx).Debug().Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hbnb-web", line["service"])
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "http://api.local/api/v1", line["api"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "debug", line["level"])
}

func TestLoggerFromContext_FallsBackToGlobal(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	observability.LoggerFromContext(context.Background()).Info().Msg("plain")
	assert.Contains(t, buf.String(), `"message":"plain"`)
}
