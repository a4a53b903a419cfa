package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/metrics"
)

// MetricsTracer implements pgx.QueryTracer to collect database metrics
type MetricsTracer struct{}

var _ pgx.QueryTracer = (*MetricsTracer)(nil)

type queryContextKey struct{}

type queryContext struct {
	startTime time.Time
	queryName string
}

// TraceQueryStart is called at the start of a query
func (t *MetricsTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	queryName := extractQueryName(data.SQL)
	qctx := queryContext{
		startTime: time.Now(),
		queryName: queryName,
	}
	return context.WithValue(ctx, queryContextKey{}, qctx)
}

// TraceQueryEnd is called at the end of a query
func (t *MetricsTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	qctx, ok := ctx.Value(queryContextKey{}).(queryContext)
	if !ok {
		return
	}

	duration := time.Since(qctx.startTime).Seconds()

	metrics.DBQueryDuration.WithLabelValues(qctx.queryName).Observe(duration)

	if data.Err != nil {
		metrics.DBErrorsTotal.WithLabelValues(qctx.queryName).Inc()
	}
}

// extractQueryName extracts a simplified query name from SQL for metric labels
// This prevents high cardinality by grouping similar queries
func extractQueryName(sql string) string {
	sql = strings.TrimSpace(sql)
	if len(sql) == 0 {
		return "unknown"
	}

	// Extract first word (SELECT, INSERT, UPDATE, DELETE, etc.)
	for i, c := range sql {
		if c == ' ' || c == '\n' || c == '\t' {
			if i > 0 {
				return sql[:i]
			}
			break
		}
	}

	if len(sql) > 20 {
		return sql[:20]
	}
	return sql
}
