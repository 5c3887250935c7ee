// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordEntityCreated(kind string)
	RecordEntityDeleted(kind string)
	RecordCascadeDelete(cleanups int)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	entityCreated   *prometheus.CounterVec
	entityDeleted   *prometheus.CounterVec
	cascadeDeletes  prometheus.Counter
	cascadeCleanups prometheus.Counter
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entityCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialman_entity_created_total",
			Help: "エンティティ種別ごとの作成数",
		}, []string{"kind"}),
		entityDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialman_entity_deleted_total",
			Help: "エンティティ種別ごとの削除数",
		}, []string{"kind"}),
		cascadeDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialman_cascade_delete_total",
			Help: "ユーザー削除によるカスケード削除の実行数",
		}),
		cascadeCleanups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialman_cascade_cleanup_ops_total",
			Help: "カスケード削除で実行された従属レコードのクリーンアップ操作数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialman_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "socialman_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.entityCreated,
		c.entityDeleted,
		c.cascadeDeletes,
		c.cascadeCleanups,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordEntityCreated はエンティティの作成を記録する。
func (c *Collector) RecordEntityCreated(kind string) {
	c.entityCreated.WithLabelValues(kind).Inc()
}

// RecordEntityDeleted はエンティティの削除を記録する。
func (c *Collector) RecordEntityDeleted(kind string) {
	c.entityDeleted.WithLabelValues(kind).Inc()
}

// RecordCascadeDelete はカスケード削除の実行とクリーンアップ操作数を記録する。
func (c *Collector) RecordCascadeDelete(cleanups int) {
	c.cascadeDeletes.Inc()
	c.cascadeCleanups.Add(float64(cleanups))
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
