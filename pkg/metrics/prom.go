package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// PromObserver records resolver events in Prometheus metrics.
type PromObserver struct {
	resolved  *prometheus.CounterVec
	fallbacks prometheus.Counter
}

var _ resolver.Observer = (*PromObserver)(nil)

// NewPromObserver registers field metrics on the provided registerer. If reg
// is nil, the default registerer is used. Collectors that are already
// registered are reused.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	resolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "formfield_fields_resolved_total",
		Help: "Total number of fields resolved, composite children included",
	}, []string{"skin", "kind"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "formfield_kind_fallbacks_total",
		Help: "Total number of unknown kind codes rendered as text",
	})

	var err error
	if resolved, err = register(reg, resolved); err != nil {
		return nil, err
	}
	if fallbacks, err = register(reg, fallbacks); err != nil {
		return nil, err
	}
	return &PromObserver{resolved: resolved, fallbacks: fallbacks}, nil
}

// FieldResolved increments the resolved counter.
func (o *PromObserver) FieldResolved(skin string, kind field.Kind) {
	o.resolved.WithLabelValues(skin, string(kind)).Inc()
}

// KindFallback increments the fallback counter. The code is not used as a
// label since it comes from callers and is unbounded.
func (o *PromObserver) KindFallback(int) {
	o.fallbacks.Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return collector, nil
}
