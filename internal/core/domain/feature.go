package domain

// FeatureKey names a fine-grained capability gated independently of routes.
type FeatureKey string

const (
	FeatureBillingView      FeatureKey = "billing_view"
	FeatureBillingCreate    FeatureKey = "billing_create"
	FeatureBillingPayment   FeatureKey = "billing_payment"
	FeatureFinancialStats   FeatureKey = "financial_stats"
	FeatureMedicalDiagnosis FeatureKey = "medical_diagnosis"
	FeatureProductsPricing  FeatureKey = "products_pricing"
)

// Features returns every known feature key in a stable order.
func Features() []FeatureKey {
	return []FeatureKey{
		FeatureBillingView,
		FeatureBillingCreate,
		FeatureBillingPayment,
		FeatureFinancialStats,
		FeatureMedicalDiagnosis,
		FeatureProductsPricing,
	}
}

// Known reports whether f belongs to the closed feature set.
func (f FeatureKey) Known() bool {
	for _, k := range Features() {
		if k == f {
			return true
		}
	}
	return false
}
