package engine

// fallbackRule maps one category to the lowercase keywords that imply it.
type fallbackRule struct {
	category string
	keywords []string
}

// fallbackRules is the built-in keyword table consulted when no user rule
// matches. Scanned in order; the first category with a matching keyword
// wins. Note the "deposit" keyword classifies as revenue regardless of
// sign, so a negative-amount line containing "deposit" (a security-deposit
// payment, say) still lands in Gross Receipts; a user rule with a negative
// direction is the intended override.
var fallbackRules = []fallbackRule{
	{"Gross Receipts", []string{"deposit", "payroll", "payment received", "invoice", "refund"}},
	{"Car and Truck Expenses", []string{"fuel", "gas", "shell", "chevron", "exxon", "mobil", "parking", "toll", "car wash", "autozone"}},
	{"Meals", []string{"restaurant", "starbucks", "coffee", "cafe", "pizza", "burger", "diner", "doordash", "grubhub", "chipotle", "mcdonald"}},
	{"Office Expenses", []string{"staples", "office depot", "usps", "fedex", "ups store", "amazon"}},
	{"Utilities", []string{"electric", "water", "internet", "comcast", "verizon", "at&t", "t-mobile", "utility"}},
	{"Supplies", []string{"home depot", "lowes", "supply", "supplies"}},
	{"Insurance", []string{"insurance", "geico", "allstate", "progressive"}},
	{"Rent or Lease", []string{"rent", "lease"}},
	{"Taxes and Licenses", []string{"irs", "tax payment", "license"}},
	{"Bank Charges", []string{"service charge", "overdraft", "atm fee", "monthly fee", "wire fee"}},
}
