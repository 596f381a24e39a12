package scoring

import (
	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// Enricher scores a freshly loaded dataset.
type Enricher struct {
	cache    *Cache
	onScored func()
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithCache memoizes breakdowns in c.
func WithCache(c *Cache) Option {
	return func(e *Enricher) {
		e.cache = c
	}
}

// WithProgress calls fn after each tenant is scored.
func WithProgress(fn func()) Option {
	return func(e *Enricher) {
		e.onScored = fn
	}
}

// NewEnricher creates an enricher with the given options.
func NewEnricher(opts ...Option) *Enricher {
	e := &Enricher{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich attaches score, category and age group to every tenant.
// Input order is preserved and recorded in ScoredTenant.Index.
func (e *Enricher) Enrich(tenants []model.Tenant) []model.ScoredTenant {
	scored := make([]model.ScoredTenant, len(tenants))
	for i := range tenants {
		t := tenants[i]
		if t.DamageToProperty == "" {
			t.DamageToProperty = model.NotAvailable
		}

		hash := t.Hash()
		var breakdown model.Breakdown
		if e.cache != nil {
			breakdown = e.cache.Lookup(hash, &t)
		} else {
			breakdown = Calculate(&t)
		}

		score := clamp(breakdown.Total())
		scored[i] = model.ScoredTenant{
			Tenant:    t,
			Hash:      hash,
			Score:     score,
			Category:  Categorize(score),
			AgeGroup:  AgeGroupFor(t.Age),
			Breakdown: breakdown,
			Index:     i,
		}

		if e.onScored != nil {
			e.onScored()
		}
	}
	return scored
}

// Enrich scores tenants without memoization.
func Enrich(tenants []model.Tenant) []model.ScoredTenant {
	return NewEnricher().Enrich(tenants)
}
