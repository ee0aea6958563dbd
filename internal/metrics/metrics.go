package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Storefront 店铺会话指标，nil 接收者安全
type Storefront struct {
	apiRequests      *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
	promoValidations *prometheus.CounterVec
	promoStale       prometheus.Counter
	cartMutations    *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	ordersPlaced     *prometheus.CounterVec
}

// New 在指定 registerer 上注册指标，reg 为 nil 时返回空实现
func New(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	m := &Storefront{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Remote API calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Remote API call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		promoValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_validations_total",
			Help:      "Promo code validations by resulting status.",
		}, []string{"trigger", "status"}),
		promoStale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_validations_stale_total",
			Help:      "Promo validation responses discarded because the cart moved on.",
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart reducer actions applied.",
		}, []string{"action"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiDuration,
		m.promoValidations,
		m.promoStale,
		m.cartMutations,
		m.activeSessions,
		m.ordersPlaced,
	)
	return m
}

// ObserveAPICall 记录一次远端调用
func (m *Storefront) ObserveAPICall(endpoint, outcome string, duration time.Duration) {
	if m == nil || m.apiRequests == nil {
		return
	}
	endpoint = normalizeLabel(endpoint)
	m.apiRequests.WithLabelValues(endpoint, normalizeLabel(outcome)).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncPromoValidation 记录优惠码校验结果
func (m *Storefront) IncPromoValidation(trigger, status string) {
	if m == nil || m.promoValidations == nil {
		return
	}
	m.promoValidations.WithLabelValues(normalizeLabel(trigger), normalizeLabel(status)).Inc()
}

// IncPromoStale 记录被丢弃的过期校验结果
func (m *Storefront) IncPromoStale() {
	if m == nil || m.promoStale == nil {
		return
	}
	m.promoStale.Inc()
}

// IncCartMutation 记录购物车变更
func (m *Storefront) IncCartMutation(action string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(action)).Inc()
}

// SetActiveSessions 更新在线会话数
func (m *Storefront) SetActiveSessions(n int) {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

// IncOrder 记录下单结果
func (m *Storefront) IncOrder(outcome string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// Handler 暴露 Prometheus 文本格式
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
