package app

// bankingKnowledge is the curated knowledge base backing general support
// answers. Topic words are the match keys.
var bankingKnowledge = []KnowledgeEntry{
	{
		Category:     "account_services",
		Topic:        "Account Balance Inquiry",
		Information:  "Check your current account balance and recent transactions.",
		Steps:        []string{"Verify identity", "Access account information", "Display balance"},
		Requirements: []string{"Valid ID", "Security verification"},
	},
	{
		Category:     "account_services",
		Topic:        "Account Statements",
		Information:  "View and download monthly account statements.",
		Steps:        []string{"Log in to account", "Navigate to statements", "Select date range", "Download PDF"},
		Requirements: []string{"Account access", "Identity verification"},
	},
	{
		Category:     "account_services",
		Topic:        "Update Contact Information",
		Information:  "Change your address, phone number, or email address.",
		Steps:        []string{"Verify identity", "Provide new information", "Confirm changes"},
		Requirements: []string{"Identity verification", "Valid contact details"},
	},
	{
		Category:     "transactions",
		Topic:        "Transfer Funds",
		Information:  "Transfer money between your accounts or to external accounts.",
		Steps:        []string{"Verify identity", "Select accounts", "Enter amount", "Confirm transfer"},
		Requirements: []string{"Sufficient funds", "Valid recipient account"},
	},
	{
		Category:     "transactions",
		Topic:        "Transaction History",
		Information:  "View your recent transaction history and details.",
		Steps:        []string{"Access account", "Select date range", "View transactions"},
		Requirements: []string{"Account access"},
	},
	{
		Category:     "transactions",
		Topic:        "Stop Payment",
		Information:  "Stop payment on a check or recurring transaction.",
		Steps:        []string{"Provide check/transaction details", "Pay stop payment fee", "Confirm request"},
		Requirements: []string{"Valid reason", "Transaction details", "Fee payment"},
	},
	{
		Category:     "security",
		Topic:        "Password Reset",
		Information:  "Reset your online banking password securely.",
		Steps:        []string{"Verify identity", "Set new password", "Confirm changes"},
		Requirements: []string{"Identity verification", "Strong password"},
	},
	{
		Category:     "security",
		Topic:        "Account Security",
		Information:  "Information about keeping your account secure.",
		Steps:        []string{"Use strong passwords", "Monitor statements", "Report suspicious activity"},
		Requirements: []string{"Regular monitoring", "Secure practices"},
	},
	{
		Category:     "security",
		Topic:        "Fraud Reporting",
		Information:  "Report suspected fraudulent activity on your account.",
		Steps:        []string{"Contact bank immediately", "Provide transaction details", "Complete fraud affidavit"},
		Requirements: []string{"Immediate action", "Documentation"},
	},
	{
		Category:     "general",
		Topic:        "Branch Locations",
		Information:  "Find branches and ATM locations near you.",
		Steps:        []string{"Use branch locator", "Check hours", "Plan visit"},
		Requirements: []string{"Location information"},
	},
	{
		Category:     "general",
		Topic:        "Contact Information",
		Information:  "Get contact information for different banking services.",
		Steps:        []string{"Select service type", "Choose contact method"},
		Requirements: []string{"Service identification"},
	},
	{
		Category:    "general",
		Topic:       "Banking Hours",
		Information: "Bank operating hours and holiday schedule.",
		Steps:       []string{"Check regular hours", "Verify holiday schedule"},
	},
}
