package valueobject

// Labels used when no rule matches.
const (
	DefaultCategory   = "Outros"
	UndefinedSentinel = "❗Definir"
)

// Classification is the (category, cost center, department) triple assigned to a transaction.
type Classification struct {
	Category   string `yaml:"category"`
	CostCenter string `yaml:"cost_center"`
	Department string `yaml:"department"`
}

// Unclassified returns the default classification for transactions no rule matches.
func Unclassified() Classification {
	return Classification{
		Category:   DefaultCategory,
		CostCenter: UndefinedSentinel,
		Department: UndefinedSentinel,
	}
}

// NeedsDefinition reports whether a cost center or department still carries the sentinel.
func NeedsDefinition(costCenter, department string) bool {
	return costCenter == UndefinedSentinel || department == UndefinedSentinel
}

// ClassificationRule maps a keyword to a classification.
type ClassificationRule struct {
	Keyword        string `yaml:"keyword"`
	Classification `yaml:",inline"`
}

// RuleTable is an ordered list of rules; earlier rules win.
type RuleTable []ClassificationRule

// DefaultRuleTable returns the built-in rule table used when no rule file is configured.
func DefaultRuleTable() RuleTable {
	finance := func(category string) Classification {
		return Classification{Category: category, CostCenter: "Financeiro", Department: "Administrativo"}
	}
	logistics := func(category string) Classification {
		return Classification{Category: category, CostCenter: "Logística", Department: "Operacional"}
	}

	return RuleTable{
		{Keyword: "PIX", Classification: finance("Transferência")},
		{Keyword: "BOLETO", Classification: finance("Pagamento")},
		{Keyword: "TED", Classification: finance("Transferência")},
		{Keyword: "DOC", Classification: finance("Transferência")},
		{Keyword: "NU PAGAMENTOS", Classification: finance("Recebimento")},
		{Keyword: "PAG*", Classification: finance("Cartão de Crédito")},
		{Keyword: "UBER", Classification: logistics("Transporte")},
		{Keyword: "GOL", Classification: logistics("Viagem")},
		{Keyword: "LATAM", Classification: logistics("Viagem")},
		{Keyword: "99", Classification: logistics("Transporte")},
	}
}

// Categories returns the distinct categories of the table in order, followed by the default.
func (t RuleTable) Categories() []string {
	return t.distinct(func(c Classification) string { return c.Category }, DefaultCategory)
}

// CostCenters returns the distinct cost centers of the table in order.
func (t RuleTable) CostCenters() []string {
	return t.distinct(func(c Classification) string { return c.CostCenter }, "")
}

// Departments returns the distinct departments of the table in order.
func (t RuleTable) Departments() []string {
	return t.distinct(func(c Classification) string { return c.Department }, "")
}

func (t RuleTable) distinct(field func(Classification) string, extra string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0, len(t)+1)
	for _, rule := range t {
		v := field(rule.Classification)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	if extra != "" && !seen[extra] {
		values = append(values, extra)
	}
	return values
}
