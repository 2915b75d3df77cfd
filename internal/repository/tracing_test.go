package repository

import (
	"context"
	"testing"

	"commons/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRepository_SpansEachCall(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("repository-test")
	t.Cleanup(func() {
		observability.Tracer = prev
		_ = tp.Shutdown(context.Background())
	})

	repo := newTestRepo(t)
	g := seedGroup(t, repo, nil)
	_, err := repo.GetGroup(context.Background(), g.ID)
	require.NoError(t, err)
	_, err = repo.GetMembership(context.Background(), g.ID, 2)
	require.NoError(t, err)

	tables := map[string]string{}
	for _, s := range sr.Ended() {
		for _, kv := range s.Attributes() {
			if kv.Key == attribute.Key("db.table") {
				tables[s.Name()] = kv.Value.AsString()
			}
		}
	}
	assert.Equal(t, "groups", tables["repository.CreateGroup"])
	assert.Equal(t, "groups", tables["repository.GetGroup"])
	assert.Equal(t, "group_memberships", tables["repository.GetMembership"])
}
