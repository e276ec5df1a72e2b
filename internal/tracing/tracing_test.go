package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/internal/utils"
)

func TestInitJaeger_EndpointSelection(t *testing.T) {
	cfg := initJaeger(&JaegerConfig{ServiceName: "webmail", AgentHost: "jaeger", AgentPort: "6831", SamplerType: "const", SamplerParam: 1})
	assert.True(t, cfg.Disabled)
	assert.Equal(t, "jaeger:6831", cfg.Reporter.LocalAgentHostPort)
	assert.Empty(t, cfg.Reporter.CollectorEndpoint)

	cfg = initJaeger(&JaegerConfig{Endpoint: "http://collector:14268/api/traces", Enabled: true})
	assert.False(t, cfg.Disabled)
	assert.Equal(t, "http://collector:14268/api/traces", cfg.Reporter.CollectorEndpoint)
	assert.Empty(t, cfg.Reporter.LocalAgentHostPort)
}

func TestInitGlobalTracer_Disabled(t *testing.T) {
	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()

	closer, err := InitGlobalTracer(&JaegerConfig{ServiceName: "webmail", SamplerType: "const", SamplerParam: 1}, appLogger)
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}

func TestSetDefaultServiceSpanTags(t *testing.T) {
	tracer := mocktracer.New()
	span := tracer.StartSpan("op").(*mocktracer.MockSpan)

	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{RequestId: "req-1", UserId: "42"})
	SetDefaultServiceSpanTags(ctx, span)
	TagEntity(span, "m1")

	tags := span.Tags()
	assert.Equal(t, "req-1", tags[SpanTagRequestId])
	assert.Equal(t, "42", tags[SpanTagUserId])
	assert.Equal(t, SpanTagComponentService, tags[SpanTagComponent])
	assert.Equal(t, "m1", tags[SpanTagEntityId])
}

func TestTraceErr(t *testing.T) {
	tracer := mocktracer.New()
	span := tracer.StartSpan("op").(*mocktracer.MockSpan)

	TraceErr(span, nil)
	assert.Nil(t, span.Tag("error"))

	TraceErr(span, assert.AnError)
	assert.Equal(t, true, span.Tag("error"))
}

func TestRecoveryWithJaeger_RePanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := mocktracer.New()

	r := gin.New()
	r.Use(gin.Recovery(), RecoveryWithJaeger(tracer))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "panic-recovery", spans[0].OperationName)
	assert.Equal(t, true, spans[0].Tag("error"))
}
